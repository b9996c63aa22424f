package dto

import (
	"time"

	"github.com/google/uuid"
)

// RowResult is one outcome entry of a group import. Several entries may share
// a RowNumber when member-level steps fail independently.
type RowResult struct {
	RowNumber int        `json:"row_number"`
	OK        bool       `json:"ok"`
	Detail    string     `json:"detail"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
}

// GroupImportResponse is the response for a group import run
type GroupImportResponse struct {
	DryRun     bool        `json:"dry_run"`
	TotalFilas int         `json:"total_filas"`
	Exitosos   int         `json:"exitosos"`
	Fallidos   int         `json:"fallidos"`
	Resultados []RowResult `json:"resultados"`
	ArchivoKey string      `json:"archivo_key,omitempty"`
}

type CatalogItemDTO struct {
	ID     uuid.UUID `json:"id"`
	Nombre string    `json:"nombre"`
	Activa *bool     `json:"activa,omitempty"`
}

type GrupoMiembroDTO struct {
	UsuarioID uuid.UUID `json:"usuario_id"`
	Nombre    string    `json:"nombre"`
	Apellido  string    `json:"apellido"`
	Rol       string    `json:"rol"`
	CreatedAt time.Time `json:"created_at"`
}
