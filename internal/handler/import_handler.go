package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/global-ministries/global-connect-sub001/internal/dto"
	"github.com/global-ministries/global-connect-sub001/internal/middleware"
	"github.com/global-ministries/global-connect-sub001/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportArchiver stores a copy of an uploaded import file.
type ImportArchiver interface {
	ArchiveImport(ctx context.Context, actorID uuid.UUID, filename, contentType string, data []byte) (string, error)
}

type ImportHandler struct {
	importService *service.GrupoImportService
	archiver      ImportArchiver
	maxFileSize   int64
	timeout       time.Duration
	logger        *zap.Logger
}

// NewImportHandler wires the group import endpoint. archiver may be nil; a
// zero timeout leaves the run bounded only by the request context.
func NewImportHandler(importService *service.GrupoImportService, archiver ImportArchiver, maxFileSize int64, timeout time.Duration, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{
		importService: importService,
		archiver:      archiver,
		maxFileSize:   maxFileSize,
		timeout:       timeout,
		logger:        logger,
	}
}

// ImportGrupos handles group import from CSV/XLSX
func (h *ImportHandler) ImportGrupos(c *fiber.Ctx) error {
	actorID := middleware.GetUserID(c)
	if actorID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("UNAUTHORIZED", "Usuario no autenticado"))
	}

	dryRun := c.FormValue("dry_run") == "true"

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_FILE", "Archivo no encontrado"))
	}

	if h.maxFileSize > 0 && file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("FILE_TOO_LARGE", "El archivo excede el tamaño máximo permitido"))
	}

	filename := strings.ToLower(file.Filename)
	isCSV := strings.HasSuffix(filename, ".csv")
	isXLSX := strings.HasSuffix(filename, ".xlsx")
	if !isCSV && !isXLSX {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_FILE_TYPE", "El archivo debe ser CSV o XLSX"))
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "No se pudo abrir el archivo"))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "No se pudo leer el archivo"))
	}

	var filas service.Filas
	if isCSV {
		filas = service.ParseCSV(string(data))
	} else {
		filas, err = service.ParseXLSX(bytes.NewReader(data))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_FILE", "No se pudo leer el archivo XLSX"))
		}
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var archivoKey string
	if h.archiver != nil && !dryRun && filas.Len() > 0 {
		archivoKey, err = h.archiver.ArchiveImport(ctx, *actorID, file.Filename, file.Header.Get("Content-Type"), data)
		if err != nil {
			h.logger.Warn("import file not archived", zap.String("file", file.Filename), zap.Error(err))
		}
	}

	res, err := h.importService.Importar(ctx, *actorID, filas, service.ImportOptions{DryRun: dryRun})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAutenticado):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse("UNAUTHORIZED", "Usuario no autenticado"))
		case errors.Is(err, service.ErrArchivoVacio):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("EMPTY_FILE", "El archivo no tiene datos"))
		case errors.Is(err, service.ErrInterrumpido):
			h.logger.Warn("group import interrupted", zap.Int("results", len(res.Lista())), zap.Error(err))
			// rows before the interruption are committed; report them
			resp := dto.ErrorResponse("IMPORT_INTERRUPTED", "Importación interrumpida")
			resp.Data = importResponse(filas, res, dryRun, archivoKey)
			return c.Status(fiber.StatusRequestTimeout).JSON(resp)
		case errors.Is(err, service.ErrCatalogo):
			h.logger.Error("catalog preload failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("CATALOG_ERROR", "No se pudieron cargar temporadas y segmentos"))
		default:
			h.logger.Error("group import failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Error en la importación"))
		}
	}

	h.logger.Info("group import completed",
		zap.String("actor", actorID.String()),
		zap.String("role", middleware.GetUserRole(c)),
		zap.String("file", file.Filename),
		zap.Bool("dry_run", dryRun),
	)

	message := "Importación finalizada"
	if dryRun {
		message = "Simulación finalizada"
	}

	return c.JSON(dto.SuccessResponse(importResponse(filas, res, dryRun, archivoKey), message))
}

func importResponse(filas service.Filas, res *service.Resultados, dryRun bool, archivoKey string) dto.GroupImportResponse {
	return dto.GroupImportResponse{
		DryRun:     dryRun,
		TotalFilas: filas.Len(),
		Exitosos:   res.Exitosos(),
		Fallidos:   res.Fallidos(),
		Resultados: res.Lista(),
		ArchivoKey: archivoKey,
	}
}

// DownloadTemplate returns a sample CSV template
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=plantilla_import_grupos.csv")

	template := "nombre_grupo,segmento,temporada,miembros\n"
	template += "Grupo Esperanza,Jóvenes,2025,Ana Gómez|Líder; Juan Pérez\n"
	template += "Grupo Fe,Adultos,2025,Luis Díaz|Líder; María José Rivas; Pedro Soto\n"
	template += ",Jóvenes,2025,Carla Méndez\n"

	return c.SendString(template)
}
