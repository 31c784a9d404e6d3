package checkout_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mobilia-api/internal/application/checkout"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
)

func newCancelOrderUC(store *memStore) *checkout.CancelOrderUseCase {
	return checkout.NewCancelOrderUseCase(&memTxRunner{store: store}, testLogger())
}

// seedOrder inserta un pedido ya persistido con sus líneas (como lo dejaría PlaceOrder).
func seedOrder(store *memStore, id, userID, status string, items ...entity.OrderItem) {
	for i := range items {
		items[i].OrderID = id
	}
	store.orders[id] = &entity.Order{
		ID:     id,
		UserID: userID,
		Status: status,
		Items:  items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario 5: pedido pending con línea de stock → cancelado, stock devuelto.
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_RestauraStockTerminado(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 3)
	seedOrder(store, "order-10", testUserID, entity.OrderStatusPending, entity.OrderItem{
		ID: "item-1", ProductID: "A", Quantity: 2, Fulfillment: entity.FulfillmentFromStock,
	})

	msg, err := newCancelOrderUC(store).CancelOrder(context.Background(), "order-10", testUserID)

	require.NoError(t, err)
	assert.Equal(t, checkout.MessageOrderCancelled, msg)
	assert.Equal(t, entity.OrderStatusCancelled, store.orders["order-10"].Status)
	assert.Equal(t, 5, store.products["A"].Stock, "devuelve exactamente la cantidad pedida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Línea fabricada: se devuelve el consumo real a los materiales, no al producto.
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_RestauraMaterialesConsumidos(t *testing.T) {
	store := newMemStore()
	addMaterial(store, "M", "Tela Lino", 4)
	addProduct(store, "B", "Sofá Oslo", 250, 1)
	seedOrder(store, "order-11", testUserID, entity.OrderStatusProcessing, entity.OrderItem{
		ID: "item-1", ProductID: "B", Quantity: 3, Fulfillment: entity.FulfillmentManufactured,
		Materials: []entity.OrderItemMaterial{
			{OrderItemID: "item-1", MaterialID: "M", QuantityConsumed: 6},
		},
	})

	_, err := newCancelOrderUC(store).CancelOrder(context.Background(), "order-11", testUserID)

	require.NoError(t, err)
	assert.Equal(t, 10, store.materials["M"].Stock, "4 + 6 consumidos al fabricar")
	assert.Equal(t, 1, store.products["B"].Stock, "el stock terminado no se infla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario 6: estados no cancelables.
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_EstadoNoCancelable(t *testing.T) {
	for _, status := range []string{
		entity.OrderStatusShipped,
		entity.OrderStatusDelivered,
		entity.OrderStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			store := newMemStore()
			addProduct(store, "A", "Mesa Roble", 100, 3)
			seedOrder(store, "order-12", testUserID, status, entity.OrderItem{
				ID: "item-1", ProductID: "A", Quantity: 2, Fulfillment: entity.FulfillmentFromStock,
			})

			_, err := newCancelOrderUC(store).CancelOrder(context.Background(), "order-12", testUserID)

			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, status, store.orders["order-12"].Status, "sin mutación de estado")
			assert.Equal(t, 3, store.products["A"].Stock, "sin mutación de stock")
		})
	}
}

// Un pedido ajeno se comporta como inexistente.
func TestCancelOrder_PedidoDeOtroUsuario(t *testing.T) {
	store := newMemStore()
	seedOrder(store, "order-13", "otro-usuario", entity.OrderStatusPending)

	_, err := newCancelOrderUC(store).CancelOrder(context.Background(), "order-13", testUserID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Si una restauración falla, la cancelación completa se revierte (mismo commit).
func TestCancelOrder_RollbackSiFallaRestauracion(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 3)
	addProduct(store, "Z", "Banco Taller", 60, 0)
	store.failProductIncrement = "Z"
	seedOrder(store, "order-14", testUserID, entity.OrderStatusPending,
		entity.OrderItem{ID: "item-1", ProductID: "A", Quantity: 2, Fulfillment: entity.FulfillmentFromStock},
		entity.OrderItem{ID: "item-2", ProductID: "Z", Quantity: 1, Fulfillment: entity.FulfillmentFromStock},
	)

	_, err := newCancelOrderUC(store).CancelOrder(context.Background(), "order-14", testUserID)

	require.Error(t, err)
	assert.Equal(t, entity.OrderStatusPending, store.orders["order-14"].Status, "el estado vuelve atrás")
	assert.Equal(t, 3, store.products["A"].Stock, "la restauración de A también se revierte")
}
