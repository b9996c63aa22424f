package service

import (
	"github.com/global-ministries/global-connect-sub001/internal/dto"
	"github.com/google/uuid"
)

// Resultados accumulates row outcomes in the order they happen.
type Resultados struct {
	items []dto.RowResult
}

func (r *Resultados) Exito(fila int, detalle string, grupoID *uuid.UUID) {
	r.items = append(r.items, dto.RowResult{
		RowNumber: fila,
		OK:        true,
		Detail:    detalle,
		GroupID:   grupoID,
	})
}

func (r *Resultados) Fallo(fila int, detalle string) {
	r.items = append(r.items, dto.RowResult{
		RowNumber: fila,
		OK:        false,
		Detail:    detalle,
	})
}

func (r *Resultados) Lista() []dto.RowResult {
	if r.items == nil {
		return []dto.RowResult{}
	}
	return r.items
}

func (r *Resultados) Exitosos() int {
	n := 0
	for _, it := range r.items {
		if it.OK {
			n++
		}
	}
	return n
}

func (r *Resultados) Fallidos() int {
	return len(r.items) - r.Exitosos()
}
