package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mobilia-api/internal/application/checkout"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/application/usecase"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
	"github.com/tu-usuario/mobilia-api/internal/infrastructure/pdf"
)

// OrderHandler maneja pedidos del usuario autenticado: checkout, lectura,
// cancelación y comprobante PDF.
type OrderHandler struct {
	placeOrder  *checkout.PlaceOrderUseCase
	cancelOrder *checkout.CancelOrderUseCase
	orderUC     *usecase.OrderUseCase
	userRepo    repository.UserRepository
	receipts    *pdf.ReceiptGenerator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	placeOrder *checkout.PlaceOrderUseCase,
	cancelOrder *checkout.CancelOrderUseCase,
	orderUC *usecase.OrderUseCase,
	userRepo repository.UserRepository,
	receipts *pdf.ReceiptGenerator,
) *OrderHandler {
	return &OrderHandler{
		placeOrder:  placeOrder,
		cancelOrder: cancelOrder,
		orderUC:     orderUC,
		userRepo:    userRepo,
		receipts:    receipts,
	}
}

// Place godoc
// @Summary      Realizar pedido desde el carrito (todo o nada)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PlaceOrderRequest  true  "dirección, pago y método de entrega"
// @Success      201  {object}  dto.PlaceOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, message, err := h.placeOrder.PlaceOrder(c.Context(), GetUserID(c), checkout.PlaceOrderInput{
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		DeliveryMethod:  in.DeliveryMethod,
	})
	if err != nil {
		var insErr *domain.InsufficientStockError
		if errors.As(err, &insErr) {
			// El error nombra producto y material corto: el cliente sabe qué quitar.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insErr.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "carrito vacío o datos de entrega inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "algún producto del carrito ya no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PlaceOrderResponse{
		Order:   *usecase.ToOrderResponse(order),
		Message: message,
	})
}

// List godoc
// @Summary      Listar mis pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.orderUC.ListByUser(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(orders)
}

// Stats godoc
// @Summary      Conteo de mis pedidos por estado
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.OrderStatsResponse
// @Router       /api/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.orderUC.Stats(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}

// GetByID godoc
// @Summary      Detalle de un pedido mío
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "order id"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.orderUC.GetByID(c.Params("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(order)
}

// Cancel godoc
// @Summary      Cancelar un pedido pending/processing y restaurar inventario
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "order id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "estado no cancelable"
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	message, err := h.cancelOrder.CancelOrder(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el pedido ya fue enviado, entregado o cancelado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de pedido requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// Receipt godoc
// @Summary      Comprobante PDF de un pedido mío
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "order id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	userID := GetUserID(c)
	order, err := h.orderUC.GetEntity(c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	user, err := h.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "usuario no disponible"})
	}
	pdfBytes, err := h.receipts.GenerateOrderReceipt(order, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="pedido-`+order.ID+`.pdf"`)
	return c.Send(pdfBytes)
}
