package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/fulfillment"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
	"github.com/tu-usuario/mobilia-api/pkg/logger"
)

// Mensajes de cumplimiento para el usuario.
const (
	MessageOrderPlaced = "Pedido realizado con éxito."
	MessageMadeToOrder = "Pedido recibido: algunas piezas se fabrican bajo pedido, el tiempo de entrega será mayor."
)

// ShippingRates tabla de tarifas por método de entrega. Cualquier mapa
// positivo y monótono cumple el contrato; los valores vienen de configuración.
type ShippingRates struct {
	Standard decimal.Decimal
	Express  decimal.Decimal
	NextDay  decimal.Decimal
}

// RateFor devuelve la tarifa del método; ok=false si el método no existe.
func (r ShippingRates) RateFor(deliveryMethod string) (decimal.Decimal, bool) {
	switch deliveryMethod {
	case entity.DeliveryStandard:
		return r.Standard, true
	case entity.DeliveryExpress:
		return r.Express, true
	case entity.DeliveryNextDay:
		return r.NextDay, true
	}
	return decimal.Zero, false
}

// PlaceOrderInput entrada del checkout; las líneas salen del carrito del usuario.
type PlaceOrderInput struct {
	ShippingAddress json.RawMessage
	PaymentMethod   string
	DeliveryMethod  string
}

// PlaceOrderUseCase convierte el carrito del usuario en un pedido persistido
// con sus mutaciones de inventario, todo dentro de UNA transacción:
// o se crea el pedido completo (cabecera, líneas, consumos, descuentos de
// stock, carrito vacío) o no queda rastro de nada.
type PlaceOrderUseCase struct {
	txRunner TxRunner
	rates    ShippingRates
	log      *logger.Logger
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(txRunner TxRunner, rates ShippingRates, log *logger.Logger) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{txRunner: txRunner, rates: rates, log: log.WithComponent("checkout")}
}

// resolvedLine guarda la decisión tomada para una línea antes de aplicar
// mutaciones: primero se validan TODAS las líneas, después se escribe.
type resolvedLine struct {
	cartLine *entity.CartLine
	product  *entity.Product
	decision fulfillment.Decision
}

// PlaceOrder ejecuta el checkout del usuario.
//
// Dentro de la transacción: carga el carrito, bloquea producto+materiales por
// línea (FOR UPDATE), resuelve la ruta de cumplimiento, acumula totales con el
// precio vivo, persiste pedido/líneas/consumos, aplica los descuentos de stock
// (condicionales: jamás dejan un stock negativo) y vacía el carrito. Cualquier
// error revierte todo; una línea no disponible rechaza el carrito completo.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (*entity.Order, string, error) {
	if userID == "" {
		return nil, "", domain.ErrUnauthorized
	}
	if len(in.ShippingAddress) == 0 || in.PaymentMethod == "" {
		return nil, "", domain.ErrInvalidInput
	}
	shippingCost, ok := uc.rates.RateFor(in.DeliveryMethod)
	if !ok {
		return nil, "", domain.ErrInvalidInput
	}

	now := time.Now()
	var order *entity.Order

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		materialRepo repository.MaterialRepository,
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
	) error {
		lines, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrInvalidInput // carrito vacío
		}

		// 1) Resolver todas las líneas antes de escribir nada. Las lecturas van
		// dentro de la transacción y con bloqueo de fila, así dos checkouts
		// compitiendo por la última unidad no pueden ganar ambos.
		resolved := make([]resolvedLine, 0, len(lines))
		subtotal := decimal.Zero
		needsManufacturing := false

		for _, line := range lines {
			product, err := productRepo.GetWithBOMForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}

			decision := fulfillment.Resolve(product, line.Quantity)
			if decision.Path == fulfillment.PathUnavailable {
				insErr := &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
				}
				if decision.Shortage != nil {
					insErr.MaterialID = decision.Shortage.MaterialID
				}
				return insErr
			}
			if decision.Path == fulfillment.PathManufacture {
				needsManufacturing = true
			}

			// Precio vivo al momento del pedido, no el que el carrito recuerde.
			subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			resolved = append(resolved, resolvedLine{cartLine: line, product: product, decision: decision})
		}

		status := entity.OrderStatusPending
		if needsManufacturing {
			status = entity.OrderStatusProcessing
		}

		// 2) Cabecera del pedido.
		order = &entity.Order{
			ID:                 uuid.New().String(),
			UserID:             userID,
			Status:             status,
			ShippingAddress:    in.ShippingAddress,
			PaymentMethod:      in.PaymentMethod,
			DeliveryMethod:     in.DeliveryMethod,
			Subtotal:           subtotal,
			Shipping:           shippingCost,
			Total:              subtotal.Add(shippingCost),
			NeedsManufacturing: needsManufacturing,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// 3) Líneas, consumos y mutaciones de stock según la decisión.
		for _, r := range resolved {
			item := &entity.OrderItem{
				ID:             uuid.New().String(),
				OrderID:        order.ID,
				ProductID:      r.product.ID,
				ProductName:    r.product.Name,
				Quantity:       r.cartLine.Quantity,
				Price:          r.product.Price,
				Customizations: r.cartLine.Customizations,
			}

			switch r.decision.Path {
			case fulfillment.PathFromStock:
				item.Fulfillment = entity.FulfillmentFromStock
				if err := orderRepo.CreateItem(item); err != nil {
					return err
				}
				// El repo verifica stock >= cantidad en el UPDATE: si una carrera
				// se coló entre la resolución y la escritura, aborta todo.
				if err := productRepo.DecrementStock(r.product.ID, r.cartLine.Quantity); err != nil {
					return err
				}
			case fulfillment.PathManufacture:
				item.Fulfillment = entity.FulfillmentManufactured
				if err := orderRepo.CreateItem(item); err != nil {
					return err
				}
				for _, c := range r.decision.Consumptions {
					if err := orderRepo.CreateItemMaterial(&entity.OrderItemMaterial{
						OrderItemID:      item.ID,
						MaterialID:       c.MaterialID,
						QuantityConsumed: c.Quantity,
					}); err != nil {
						return err
					}
					if err := materialRepo.DecrementStock(c.MaterialID, c.Quantity); err != nil {
						return err
					}
					item.Materials = append(item.Materials, entity.OrderItemMaterial{
						OrderItemID:      item.ID,
						MaterialID:       c.MaterialID,
						QuantityConsumed: c.Quantity,
					})
				}
			}
			order.Items = append(order.Items, *item)
		}

		// 4) El carrito se vacía en el mismo commit: un crash después del commit
		// no puede dejar pedido y carrito inconsistentes.
		return cartRepo.Clear(userID)
	})
	if err != nil {
		return nil, "", err
	}

	uc.log.Info().
		Str("order_id", order.ID).
		Str("user_id", userID).
		Str("status", order.Status).
		Bool("needs_manufacturing", order.NeedsManufacturing).
		Str("total", order.Total.StringFixed(2)).
		Msg("pedido creado")

	message := MessageOrderPlaced
	if order.NeedsManufacturing {
		message = MessageMadeToOrder
	}
	return order, message, nil
}
