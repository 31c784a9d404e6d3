package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mobilia-api/internal/application/checkout"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
)

func newPlaceOrderUC(store *memStore) *checkout.PlaceOrderUseCase {
	return checkout.NewPlaceOrderUseCase(&memTxRunner{store: store}, testRates(), testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario 1: stock terminado suficiente → pending, descuenta producto.
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_DesdeStock(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 5)
	addCartLine(store, testUserID, "A", 2)

	order, msg, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.False(t, order.NeedsManufacturing)
	assert.Equal(t, checkout.MessageOrderPlaced, msg)
	assert.Equal(t, 3, store.products["A"].Stock, "el stock terminado baja exactamente la cantidad pedida")

	require.Len(t, order.Items, 1)
	assert.Equal(t, entity.FulfillmentFromStock, order.Items[0].Fulfillment)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(100)), "snapshot del precio unitario")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario 2: sin stock terminado pero con receta cubierta → processing,
// consume materiales y NO toca el stock terminado.
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_FabricaBajoPedido(t *testing.T) {
	store := newMemStore()
	addMaterial(store, "M", "Tela Lino", 10)
	addProduct(store, "B", "Sofá Oslo", 250, 1,
		entity.BOMEntry{ProductID: "B", MaterialID: "M", QuantityNeeded: 2})
	addCartLine(store, testUserID, "B", 3)

	order, msg, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
	assert.True(t, order.NeedsManufacturing)
	assert.Equal(t, checkout.MessageMadeToOrder, msg)

	assert.Equal(t, 4, store.materials["M"].Stock, "10 - 2×3 = 4")
	assert.Equal(t, 1, store.products["B"].Stock, "el stock terminado no se toca al fabricar")

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, entity.FulfillmentManufactured, item.Fulfillment)
	require.Len(t, item.Materials, 1)
	assert.Equal(t, "M", item.Materials[0].MaterialID)
	assert.Equal(t, 6, item.Materials[0].QuantityConsumed, "consumo exacto registrado para la cancelación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario 3: ni stock ni materiales → InsufficientStock con producto y
// material identificados; nada persiste.
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_MaterialInsuficiente(t *testing.T) {
	store := newMemStore()
	addMaterial(store, "N", "Roble Macizo", 3)
	addProduct(store, "C", "Biblioteca Alta", 400, 0,
		entity.BOMEntry{ProductID: "C", MaterialID: "N", QuantityNeeded: 5})
	addCartLine(store, testUserID, "C", 1)

	_, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, "C", insErr.ProductID)
	assert.Equal(t, "N", insErr.MaterialID, "el material corto se reporta, no se pierde")

	assert.Empty(t, store.orders, "sin pedido")
	assert.Equal(t, 3, store.materials["N"].Stock, "sin mutaciones de stock")
	assert.Len(t, store.cart[testUserID], 1, "el carrito queda intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario 4: carrito mixto, una línea imposible → todo o nada.
// La línea cumplible NO descuenta stock aunque individualmente pudiera.
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_TodoONadaEntreLineas(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 5)
	addProduct(store, "C", "Biblioteca Alta", 400, 0) // sin receta y sin stock
	addCartLine(store, testUserID, "A", 2)
	addCartLine(store, testUserID, "C", 1)

	_, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 5, store.products["A"].Stock, "rollback completo: A no se descuenta")
	assert.Empty(t, store.orders)
	assert.Len(t, store.cart[testUserID], 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y tarifas de envío
// ──────────────────────────────────────────────────────────────────────────────

// total == subtotal + shipping, con el precio vivo del producto.
func TestPlaceOrder_Totales(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 5)
	addProduct(store, "D", "Silla Viena", 45, 10)
	addCartLine(store, testUserID, "A", 2)
	addCartLine(store, testUserID, "D", 4)

	in := validInput()
	in.DeliveryMethod = entity.DeliveryExpress

	order, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, in)

	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(2*100+4*45)), "subtotal = Σ precio×cantidad")
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(20)), "tarifa express")
	assert.True(t, order.Total.Equal(order.Subtotal.Add(order.Shipping)))
}

// La tabla de tarifas es positiva y monótona: standard < express < next_day.
func TestShippingRates_Monotonas(t *testing.T) {
	rates := testRates()

	std, ok := rates.RateFor(entity.DeliveryStandard)
	require.True(t, ok)
	exp, ok := rates.RateFor(entity.DeliveryExpress)
	require.True(t, ok)
	next, ok := rates.RateFor(entity.DeliveryNextDay)
	require.True(t, ok)

	assert.True(t, std.IsPositive())
	assert.True(t, exp.GreaterThan(std))
	assert.True(t, next.GreaterThan(exp))

	_, ok = rates.RateFor("paloma mensajera")
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones y casos borde
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_CarritoVacio(t *testing.T) {
	store := newMemStore()

	_, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceOrder_MetodoEntregaDesconocido(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 5)
	addCartLine(store, testUserID, "A", 1)

	in := validInput()
	in.DeliveryMethod = "drone"

	_, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, in)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlaceOrder_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	addCartLine(store, testUserID, "fantasma", 1)

	_, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.orders)
}

// El carrito se vacía solo cuando el pedido se confirma.
func TestPlaceOrder_LimpiaCarritoSoloEnExito(t *testing.T) {
	store := newMemStore()
	addProduct(store, "A", "Mesa Roble", 100, 5)
	addCartLine(store, testUserID, "A", 2)

	_, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	require.NoError(t, err)
	assert.Empty(t, store.cart[testUserID])
}

// Carrito mixto válido: una línea de stock y otra fabricada → processing,
// cada línea muta exactamente su recurso (nunca ambos, nunca ninguno).
func TestPlaceOrder_MixtoStockYFabricacion(t *testing.T) {
	store := newMemStore()
	addMaterial(store, "M", "Tela Lino", 10)
	addProduct(store, "A", "Mesa Roble", 100, 5)
	addProduct(store, "B", "Sofá Oslo", 250, 0,
		entity.BOMEntry{ProductID: "B", MaterialID: "M", QuantityNeeded: 2})
	addCartLine(store, testUserID, "A", 2)
	addCartLine(store, testUserID, "B", 1)

	order, _, err := newPlaceOrderUC(store).PlaceOrder(context.Background(), testUserID, validInput())

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
	assert.Equal(t, 3, store.products["A"].Stock)
	assert.Equal(t, 0, store.products["B"].Stock, "la línea fabricada no toca stock terminado")
	assert.Equal(t, 8, store.materials["M"].Stock, "10 - 2×1")
}
