package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/application/usecase"
	"github.com/tu-usuario/mobilia-api/internal/domain"
)

// CategoryHandler maneja las categorías del catálogo. Lectura pública; escritura admin.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear categoría (admin)
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CategoryRequest  true  "categoría"
// @Success      201  {object}  dto.CategoryResponse
// @Router       /api/admin/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.uc.Create(in)
	if err != nil {
		return respondCategoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// Update godoc
// @Summary      Actualizar categoría (admin)
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "category id"
// @Param        body  body  dto.CategoryRequest  true  "campos a modificar"
// @Success      200  {object}  dto.CategoryResponse
// @Router       /api/admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondCategoryError(c, err)
	}
	return c.JSON(category)
}

// Delete godoc
// @Summary      Eliminar categoría (admin)
// @Tags         categories
// @Security     BearerAuth
// @Param        id  path  string  true  "category id"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondCategoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondCategoryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre de categoría requerido"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la categoría tiene productos"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "categoría duplicada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
