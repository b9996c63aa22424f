package repository

import (
	"context"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Temporadas
func (r *CatalogRepository) CreateTemporada(ctx context.Context, t *domain.Temporada) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *CatalogRepository) ListTemporadas(ctx context.Context) ([]domain.Temporada, error) {
	var temporadas []domain.Temporada
	err := r.db.WithContext(ctx).Where("deleted_at IS NULL").Order("nombre ASC").Find(&temporadas).Error
	return temporadas, err
}

// Segmentos
func (r *CatalogRepository) CreateSegmento(ctx context.Context, s *domain.Segmento) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogRepository) ListSegmentos(ctx context.Context) ([]domain.Segmento, error) {
	var segmentos []domain.Segmento
	err := r.db.WithContext(ctx).Where("deleted_at IS NULL").Order("nombre ASC").Find(&segmentos).Error
	return segmentos, err
}

func (r *CatalogRepository) AddSegmentoDirector(ctx context.Context, segmentoID, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&domain.SegmentoDirector{
		SegmentoID: segmentoID,
		UsuarioID:  usuarioID,
	}).Error
}
