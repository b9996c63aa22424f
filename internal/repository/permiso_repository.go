package repository

import (
	"context"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// globalRoles may create groups in any segment.
var globalRoles = []string{domain.RolClaveAdmin, domain.RolClaveDirectorGeneral}

type PermisoRepository struct {
	db *gorm.DB
}

func NewPermisoRepository(db *gorm.DB) *PermisoRepository {
	return &PermisoRepository{db: db}
}

// PuedeCrearGrupoEnSegmento reports whether the usuario holds a global role
// or directs the given segmento.
func (r *PermisoRepository) PuedeCrearGrupoEnSegmento(ctx context.Context, usuarioID, segmentoID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("usuario_roles").
		Joins("JOIN roles_sistema ON roles_sistema.id = usuario_roles.rol_id").
		Where("usuario_roles.usuario_id = ? AND roles_sistema.clave IN ? AND roles_sistema.deleted_at IS NULL", usuarioID, globalRoles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).Model(&domain.SegmentoDirector{}).
		Where("segmento_id = ? AND usuario_id = ?", segmentoID, usuarioID).
		Count(&count).Error
	return count > 0, err
}
