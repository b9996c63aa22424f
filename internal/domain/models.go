package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RolGrupo is the role a person holds inside a group.
type RolGrupo string

const (
	RolGrupoLider   RolGrupo = "Líder"
	RolGrupoMiembro RolGrupo = "Miembro"
)

// System role keys.
const (
	RolClaveAdmin           = "admin"
	RolClaveDirectorGeneral = "director-general"
	RolClaveDirectorEtapa   = "director-etapa"
	RolClaveLider           = "lider"
	RolClaveMiembro         = "miembro"
)

// Base model with soft delete
type BaseModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"-"`
}

// Usuario is a person record. Imported persons only carry the two name fields.
type Usuario struct {
	BaseModel
	Nombre   string  `gorm:"type:varchar(100);not null;index:idx_usuario_nombre_apellido" json:"nombre"`
	Apellido string  `gorm:"type:varchar(100);not null;index:idx_usuario_nombre_apellido" json:"apellido"`
	Email    *string `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Telefono *string `gorm:"type:varchar(30)" json:"telefono,omitempty"`
	FotoURL  *string `gorm:"type:text" json:"foto_url,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }

// RolSistema - global role catalog, looked up by Clave
type RolSistema struct {
	BaseModel
	Clave  string `gorm:"type:varchar(50);not null;uniqueIndex" json:"clave"`
	Nombre string `gorm:"type:varchar(100);not null" json:"nombre"`
}

func (RolSistema) TableName() string { return "roles_sistema" }

// UsuarioRol - junction table for usuarios and roles_sistema
type UsuarioRol struct {
	UsuarioID uuid.UUID   `gorm:"type:uuid;primaryKey" json:"usuario_id"`
	RolID     uuid.UUID   `gorm:"type:uuid;primaryKey" json:"rol_id"`
	CreatedAt time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Rol       *RolSistema `gorm:"foreignKey:RolID" json:"rol,omitempty"`
}

func (UsuarioRol) TableName() string { return "usuario_roles" }

// Temporada (season)
type Temporada struct {
	BaseModel
	Nombre string `gorm:"type:varchar(100);not null;uniqueIndex" json:"nombre"`
	Activa bool   `gorm:"not null;default:false" json:"activa"`
}

func (Temporada) TableName() string { return "temporadas" }

// Segmento groups several grupos, e.g. by age band.
type Segmento struct {
	BaseModel
	Nombre string `gorm:"type:varchar(100);not null;uniqueIndex" json:"nombre"`
}

func (Segmento) TableName() string { return "segmentos" }

// SegmentoDirector grants a usuario authority over one segmento.
type SegmentoDirector struct {
	SegmentoID uuid.UUID `gorm:"type:uuid;primaryKey" json:"segmento_id"`
	UsuarioID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"usuario_id"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (SegmentoDirector) TableName() string { return "segmento_directores" }

// Grupo
type Grupo struct {
	BaseModel
	Nombre      string     `gorm:"type:varchar(150);not null" json:"nombre"`
	SegmentoID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"segmento_id"`
	TemporadaID uuid.UUID  `gorm:"type:uuid;not null;index" json:"temporada_id"`
	Activo      bool       `gorm:"not null;default:true" json:"activo"`
	Segmento    *Segmento  `gorm:"foreignKey:SegmentoID" json:"segmento,omitempty"`
	Temporada   *Temporada `gorm:"foreignKey:TemporadaID" json:"temporada,omitempty"`
}

func (Grupo) TableName() string { return "grupos" }

// GrupoMiembro is the (grupo, usuario, rol) membership tuple.
type GrupoMiembro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GrupoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grupo_usuario" json:"grupo_id"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grupo_usuario" json:"usuario_id"`
	Rol       RolGrupo  `gorm:"type:varchar(20);not null" json:"rol"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	Usuario   *Usuario  `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
}

func (GrupoMiembro) TableName() string { return "grupo_miembros" }

// AllModels lists every table managed by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&Usuario{},
		&RolSistema{},
		&UsuarioRol{},
		&Temporada{},
		&Segmento{},
		&SegmentoDirector{},
		&Grupo{},
		&GrupoMiembro{},
	}
}

// UUID auto-generation hooks

func setUUIDIfEmpty(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&b.ID)
	return nil
}

func (m *GrupoMiembro) BeforeCreate(tx *gorm.DB) error {
	setUUIDIfEmpty(&m.ID)
	return nil
}
