package repository

import (
	"context"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GrupoRepository struct {
	db *gorm.DB
}

func NewGrupoRepository(db *gorm.DB) *GrupoRepository {
	return &GrupoRepository{db: db}
}

// Create always inserts a new grupo; names are not deduplicated.
func (r *GrupoRepository) Create(ctx context.Context, grupo *domain.Grupo) error {
	return r.db.WithContext(ctx).Create(grupo).Error
}

func (r *GrupoRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Grupo, error) {
	var grupo domain.Grupo
	err := r.db.WithContext(ctx).Preload("Segmento").Preload("Temporada").
		Where("id = ? AND deleted_at IS NULL", id).First(&grupo).Error
	if err != nil {
		return nil, err
	}
	return &grupo, nil
}

// Members
func (r *GrupoRepository) AddMiembro(ctx context.Context, grupoID, usuarioID uuid.UUID, rol domain.RolGrupo) error {
	return r.db.WithContext(ctx).Create(&domain.GrupoMiembro{
		GrupoID:   grupoID,
		UsuarioID: usuarioID,
		Rol:       rol,
	}).Error
}

func (r *GrupoRepository) ListMiembros(ctx context.Context, grupoID uuid.UUID) ([]domain.GrupoMiembro, error) {
	var miembros []domain.GrupoMiembro
	err := r.db.WithContext(ctx).Preload("Usuario").
		Where("grupo_id = ?", grupoID).
		Order("created_at ASC").
		Find(&miembros).Error
	return miembros, err
}

// Delete hard-deletes the grupo together with its memberships.
func (r *GrupoRepository) Delete(ctx context.Context, grupoID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("grupo_id = ?", grupoID).Delete(&domain.GrupoMiembro{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", grupoID).Delete(&domain.Grupo{}).Error
	})
}
