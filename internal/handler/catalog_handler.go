package handler

import (
	"github.com/global-ministries/global-connect-sub001/internal/dto"
	"github.com/global-ministries/global-connect-sub001/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogRepo *repository.CatalogRepository
	grupoRepo   *repository.GrupoRepository
}

func NewCatalogHandler(catalogRepo *repository.CatalogRepository, grupoRepo *repository.GrupoRepository) *CatalogHandler {
	return &CatalogHandler{
		catalogRepo: catalogRepo,
		grupoRepo:   grupoRepo,
	}
}

func (h *CatalogHandler) ListTemporadas(c *fiber.Ctx) error {
	temporadas, err := h.catalogRepo.ListTemporadas(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Error al obtener las temporadas"))
	}

	result := make([]dto.CatalogItemDTO, 0, len(temporadas))
	for _, t := range temporadas {
		activa := t.Activa
		result = append(result, dto.CatalogItemDTO{ID: t.ID, Nombre: t.Nombre, Activa: &activa})
	}

	return c.JSON(dto.SuccessResponse(result, ""))
}

func (h *CatalogHandler) ListSegmentos(c *fiber.Ctx) error {
	segmentos, err := h.catalogRepo.ListSegmentos(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Error al obtener los segmentos"))
	}

	result := make([]dto.CatalogItemDTO, 0, len(segmentos))
	for _, s := range segmentos {
		result = append(result, dto.CatalogItemDTO{ID: s.ID, Nombre: s.Nombre})
	}

	return c.JSON(dto.SuccessResponse(result, ""))
}

func (h *CatalogHandler) ListGrupoMiembros(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("VALIDATION_ERROR", "ID inválido"))
	}

	if _, err := h.grupoRepo.FindByID(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Grupo no encontrado"))
	}

	miembros, err := h.grupoRepo.ListMiembros(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse("INTERNAL_ERROR", "Error al obtener los miembros"))
	}

	result := make([]dto.GrupoMiembroDTO, 0, len(miembros))
	for _, m := range miembros {
		item := dto.GrupoMiembroDTO{
			UsuarioID: m.UsuarioID,
			Rol:       string(m.Rol),
			CreatedAt: m.CreatedAt,
		}
		if m.Usuario != nil {
			item.Nombre = m.Usuario.Nombre
			item.Apellido = m.Usuario.Apellido
		}
		result = append(result, item)
	}

	return c.JSON(dto.SuccessResponse(result, ""))
}
