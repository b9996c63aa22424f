package repository

import (
	"context"

	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Usuario, error) {
	var usuario domain.Usuario
	err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// FindByNombreApellido returns at most one usuario matching both names
// case-insensitively, or nil when none exists. With several matches the
// first one the database returns wins.
func (r *UsuarioRepository) FindByNombreApellido(ctx context.Context, nombre, apellido string) (*domain.Usuario, error) {
	var usuarios []domain.Usuario
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) = LOWER(?) AND LOWER(apellido) = LOWER(?) AND deleted_at IS NULL", nombre, apellido).
		Limit(1).
		Find(&usuarios).Error
	if err != nil {
		return nil, err
	}
	if len(usuarios) == 0 {
		return nil, nil
	}
	return &usuarios[0], nil
}

// Roles
func (r *UsuarioRepository) FindRolByClave(ctx context.Context, clave string) (*domain.RolSistema, error) {
	var rol domain.RolSistema
	err := r.db.WithContext(ctx).Where("clave = ? AND deleted_at IS NULL", clave).First(&rol).Error
	if err != nil {
		return nil, err
	}
	return &rol, nil
}

func (r *UsuarioRepository) AssignRol(ctx context.Context, usuarioID, rolID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&domain.UsuarioRol{
		UsuarioID: usuarioID,
		RolID:     rolID,
	}).Error
}

func (r *UsuarioRepository) GetRolClaves(ctx context.Context, usuarioID uuid.UUID) ([]string, error) {
	var claves []string
	err := r.db.WithContext(ctx).Table("usuario_roles").
		Select("roles_sistema.clave").
		Joins("JOIN roles_sistema ON roles_sistema.id = usuario_roles.rol_id").
		Where("usuario_roles.usuario_id = ? AND roles_sistema.deleted_at IS NULL", usuarioID).
		Pluck("roles_sistema.clave", &claves).Error
	return claves, err
}

// Delete hard-deletes the usuario along with its roles and memberships.
func (r *UsuarioRepository) Delete(ctx context.Context, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("usuario_id = ?", usuarioID).Delete(&domain.GrupoMiembro{}).Error; err != nil {
			return err
		}
		if err := tx.Where("usuario_id = ?", usuarioID).Delete(&domain.UsuarioRol{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", usuarioID).Delete(&domain.Usuario{}).Error
	})
}
