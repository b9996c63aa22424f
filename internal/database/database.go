package database

import (
	"fmt"

	"github.com/global-ministries/global-connect-sub001/internal/config"
	"github.com/global-ministries/global-connect-sub001/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.App.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates every table the backend owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(domain.AllModels()...)
}

// SeedRoles inserts the system role catalog, leaving existing rows untouched.
func SeedRoles(db *gorm.DB) error {
	roles := []domain.RolSistema{
		{Clave: domain.RolClaveAdmin, Nombre: "Administrador"},
		{Clave: domain.RolClaveDirectorGeneral, Nombre: "Director General"},
		{Clave: domain.RolClaveDirectorEtapa, Nombre: "Director de Etapa"},
		{Clave: domain.RolClaveLider, Nombre: "Líder"},
		{Clave: domain.RolClaveMiembro, Nombre: "Miembro"},
	}

	for i := range roles {
		var count int64
		if err := db.Model(&domain.RolSistema{}).Where("clave = ?", roles[i].Clave).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&roles[i]).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", roles[i].Clave, err)
		}
	}
	return nil
}
