package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/application/usecase"
	"github.com/tu-usuario/mobilia-api/internal/domain"
)

// MaterialHandler maneja el inventario de materias primas (solo admin).
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Crear materia prima (admin)
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateMaterialRequest  true  "materia prima"
// @Success      201  {object}  dto.MaterialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Create(in)
	if err != nil {
		return respondMaterialError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// List godoc
// @Summary      Listar materias primas (admin)
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "máximo por página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/admin/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// ListLow godoc
// @Summary      Materiales bajo umbral de reposición (admin)
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/admin/materials/low [get]
func (h *MaterialHandler) ListLow(c *fiber.Ctx) error {
	list, err := h.uc.ListLow()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Detalle de una materia prima (admin)
// @Tags         materials
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "material id"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondMaterialError(c, err)
	}
	return c.JSON(material)
}

// Update godoc
// @Summary      Actualizar materia prima (admin)
// @Tags         materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "material id"
// @Param        body  body  dto.UpdateMaterialRequest  true  "campos a modificar"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondMaterialError(c, err)
	}
	return c.JSON(material)
}

// Delete godoc
// @Summary      Eliminar materia prima (admin)
// @Tags         materials
// @Security     BearerAuth
// @Param        id  path  string  true  "material id"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondMaterialError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondMaterialError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de la materia prima inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "materia prima no encontrada"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la materia prima está en la receta de algún producto"})
	}
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "materia prima duplicada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
