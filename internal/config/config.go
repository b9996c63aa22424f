package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Import   ImportConfig
}

type AppConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port string `env:"APP_PORT" envDefault:"8080"`
	URL  string `env:"APP_URL" envDefault:"http://localhost:8080"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"globalconnect"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"globalconnect"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// MinIOConfig is optional: an empty Endpoint disables upload archiving.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"globalconnect"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

type JWTConfig struct {
	Secret       string        `env:"JWT_SECRET"`
	Issuer       string        `env:"JWT_ISSUER" envDefault:"globalconnect"`
	AccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"1h"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
}

type ImportConfig struct {
	MaxFileSize    int64         `env:"IMPORT_MAX_FILE_SIZE" envDefault:"5242880"`
	DefaultRoleKey string        `env:"IMPORT_DEFAULT_ROLE_KEY" envDefault:"miembro"`
	Timeout        time.Duration `env:"IMPORT_TIMEOUT" envDefault:"2m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	var origins []string
	for _, o := range cfg.CORS.Origins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORS.Origins = origins

	if cfg.IsProduction() && cfg.JWT.Secret == "" {
		return nil, errors.New("JWT secret must be configured in production environment")
	}

	return cfg, nil
}

// DSN builds the postgres connection string for gorm.
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" sslmode=" + c.SSLMode
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
