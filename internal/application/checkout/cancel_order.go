package checkout

import (
	"context"

	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
	"github.com/tu-usuario/mobilia-api/pkg/logger"
)

// MessageOrderCancelled mensaje de cancelación para el usuario.
const MessageOrderCancelled = "Pedido cancelado correctamente."

// CancelOrderUseCase cancela un pedido pending/processing y restaura el
// inventario revirtiendo la mutación REAL de cada línea: las que salieron de
// stock terminado devuelven unidades al producto; las fabricadas devuelven a
// cada material el consumo exacto registrado al crear el pedido.
type CancelOrderUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(txRunner TxRunner, log *logger.Logger) *CancelOrderUseCase {
	return &CancelOrderUseCase{txRunner: txRunner, log: log.WithComponent("checkout")}
}

// CancelOrder cancela el pedido del usuario. Estado + restauraciones van en la
// misma transacción: si una restauración falla, la cancelación completa se revierte.
// ErrNotFound si el pedido no existe o no es del usuario; ErrConflict si su
// estado no admite cancelación.
func (uc *CancelOrderUseCase) CancelOrder(ctx context.Context, orderID, userID string) (string, error) {
	if orderID == "" || userID == "" {
		return "", domain.ErrInvalidInput
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		materialRepo repository.MaterialRepository,
		orderRepo repository.OrderRepository,
		_ repository.CartRepository,
	) error {
		order, err := orderRepo.GetByIDAndUserForUpdate(orderID, userID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanCancel() {
			return domain.ErrConflict
		}

		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusCancelled); err != nil {
			return err
		}

		for _, item := range order.Items {
			switch item.Fulfillment {
			case entity.FulfillmentManufactured:
				for _, m := range item.Materials {
					if err := materialRepo.IncrementStock(m.MaterialID, m.QuantityConsumed); err != nil {
						return err
					}
				}
			default:
				// from_stock (y pedidos antiguos sin ruta registrada): devolver
				// las unidades al stock terminado del producto.
				if err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("user_id", userID).
		Msg("pedido cancelado, inventario restaurado")

	return MessageOrderCancelled, nil
}
