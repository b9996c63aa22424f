package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the import and catalog endpoints under api. Only
// /health is public.
func RegisterRoutes(api fiber.Router, authRequired fiber.Handler, importHandler *ImportHandler, catalogHandler *CatalogHandler) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Catalogs
	api.Get("/temporadas", authRequired, catalogHandler.ListTemporadas)
	api.Get("/segmentos", authRequired, catalogHandler.ListSegmentos)

	// Grupos
	grupoRoutes := api.Group("/grupos", authRequired)
	grupoRoutes.Post("/import", importHandler.ImportGrupos)
	grupoRoutes.Get("/import/template", importHandler.DownloadTemplate)
	grupoRoutes.Get("/:id/miembros", catalogHandler.ListGrupoMiembros)
}
