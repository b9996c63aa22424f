package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "globalconnect", cfg.JWT.Issuer)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, int64(5242880), cfg.Import.MaxFileSize)
	assert.Equal(t, "miembro", cfg.Import.DefaultRoleKey)
	assert.Equal(t, 2*time.Minute, cfg.Import.Timeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("IMPORT_MAX_FILE_SIZE", "1024")
	t.Setenv("IMPORT_DEFAULT_ROLE_KEY", "invitado")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("IMPORT_TIMEOUT", "30s")
	t.Setenv("CORS_ORIGINS", " https://a.example.com/ ,,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1024), cfg.Import.MaxFileSize)
	assert.Equal(t, "invitado", cfg.Import.DefaultRoleKey)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 30*time.Second, cfg.Import.Timeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.Origins)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "gc", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=gc sslmode=disable", c.DSN())
}
