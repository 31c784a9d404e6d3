package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/application/usecase"
	"github.com/tu-usuario/mobilia-api/internal/domain"
)

// CartHandler maneja el carrito del usuario autenticado.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Ver el carrito
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.uc.List(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cart)
}

// Add godoc
// @Summary      Agregar producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddCartLineRequest  true  "producto, cantidad, customizaciones"
// @Success      201  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddCartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cart, err := h.uc.Add(GetUserID(c), in)
	if err != nil {
		return respondCartError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// UpdateLine godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "line id"
// @Param        body  body  dto.UpdateCartLineRequest  true  "cantidad"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [put]
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	var in dto.UpdateCartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cart, err := h.uc.UpdateQuantity(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondCartError(c, err)
	}
	return c.JSON(cart)
}

// RemoveLine godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "line id"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{id} [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	cart, err := h.uc.Remove(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondCartError(c, err)
	}
	return c.JSON(cart)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func respondCartError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "producto y cantidad positiva requeridos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto, material o línea no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
