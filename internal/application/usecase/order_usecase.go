package usecase

import (
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// OrderUseCase lado de lectura de pedidos: listados, detalle y estadísticas.
// La creación y la cancelación viven en el paquete checkout (transaccionales).
type OrderUseCase struct {
	repo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

// ListByUser lista los pedidos del usuario, más reciente primero.
func (uc *OrderUseCase) ListByUser(userID string) ([]*dto.OrderResponse, error) {
	orders, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out, nil
}

// GetByID obtiene un pedido del usuario con sus líneas. Un pedido ajeno se
// comporta como inexistente.
func (uc *OrderUseCase) GetByID(orderID, userID string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return ToOrderResponse(order), nil
}

// GetEntity obtiene el pedido como entidad (para el recibo PDF).
func (uc *OrderUseCase) GetEntity(orderID, userID string) (*entity.Order, error) {
	order, err := uc.repo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// Stats devuelve el conteo de pedidos del usuario por estado.
func (uc *OrderUseCase) Stats(userID string) (*dto.OrderStatsResponse, error) {
	counts, err := uc.repo.CountByStatus(userID)
	if err != nil {
		return nil, err
	}
	stats := &dto.OrderStatsResponse{
		Pending:    counts[entity.OrderStatusPending],
		Processing: counts[entity.OrderStatusProcessing],
		Shipped:    counts[entity.OrderStatusShipped],
		Delivered:  counts[entity.OrderStatusDelivered],
		Cancelled:  counts[entity.OrderStatusCancelled],
	}
	stats.Total = stats.Pending + stats.Processing + stats.Shipped + stats.Delivered + stats.Cancelled
	return stats, nil
}

// ToOrderResponse mapea la entidad al DTO de respuesta. Exportado porque el
// handler del checkout también lo usa para responder el pedido recién creado.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                 o.ID,
		Status:             o.Status,
		ShippingAddress:    o.ShippingAddress,
		PaymentMethod:      o.PaymentMethod,
		DeliveryMethod:     o.DeliveryMethod,
		Subtotal:           o.Subtotal,
		Shipping:           o.Shipping,
		Total:              o.Total,
		NeedsManufacturing: o.NeedsManufacturing,
		CreatedAt:          o.CreatedAt,
		Items:              []dto.OrderItemResponse{},
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Customizations: item.Customizations,
			Fulfillment:    item.Fulfillment,
		})
	}
	return resp
}
