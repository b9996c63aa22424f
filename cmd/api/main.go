package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/global-ministries/global-connect-sub001/internal/auth"
	"github.com/global-ministries/global-connect-sub001/internal/config"
	"github.com/global-ministries/global-connect-sub001/internal/database"
	"github.com/global-ministries/global-connect-sub001/internal/dto"
	"github.com/global-ministries/global-connect-sub001/internal/handler"
	"github.com/global-ministries/global-connect-sub001/internal/middleware"
	"github.com/global-ministries/global-connect-sub001/internal/repository"
	"github.com/global-ministries/global-connect-sub001/internal/service"
	"github.com/global-ministries/global-connect-sub001/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync() //nolint:errcheck

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}
	if err := database.SeedRoles(db); err != nil {
		logger.Fatal("failed to seed roles", zap.Error(err))
	}

	// Optional import archive
	var archiver handler.ImportArchiver
	if cfg.MinIO.Endpoint != "" {
		minioClient, err := storage.NewMinIOClient(cfg, logger)
		if err != nil {
			logger.Fatal("failed to connect to MinIO", zap.Error(err))
		}
		archiver = minioClient
	} else {
		logger.Info("MINIO_ENDPOINT not set, import files will not be archived")
	}

	jwtService := auth.NewJWTService(cfg)

	// Repositories
	catalogRepo := repository.NewCatalogRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	grupoRepo := repository.NewGrupoRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)

	importService := service.NewGrupoImportService(
		catalogRepo,
		permisoRepo,
		grupoRepo,
		usuarioRepo,
		cfg.Import.DefaultRoleKey,
		logger.Named("import"),
	)

	importHandler := handler.NewImportHandler(importService, archiver, cfg.Import.MaxFileSize, cfg.Import.Timeout, logger.Named("http"))
	catalogHandler := handler.NewCatalogHandler(catalogRepo, grupoRepo)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Import.MaxFileSize) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse("INTERNAL_ERROR", err.Error()))
		},
	})

	// cancelled on shutdown so running imports compensate their current row
	baseCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	app.Use(recover.New())
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(baseCtx)
		return c.Next()
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.Origins, ","),
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(app.Group("/api/v1"), authMiddleware.Required(), importHandler, catalogHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("gracefully shutting down")
		cancelRequests()
		_ = app.Shutdown()
	}()

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	logger.Info("server starting", zap.String("port", port), zap.String("env", cfg.App.Env))
	if err := app.Listen(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
