package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderStatusPending    = "pending"    // todo salió de stock terminado
	OrderStatusProcessing = "processing" // al menos una línea se fabrica bajo pedido
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Métodos de entrega aceptados en el checkout.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryNextDay  = "next_day"
)

// Rutas de cumplimiento de una línea de pedido. Se persisten en el OrderItem
// para que la cancelación pueda revertir exactamente la mutación original.
const (
	FulfillmentFromStock    = "from_stock"   // descontó stock terminado del producto
	FulfillmentManufactured = "manufactured" // consumió materiales según la receta
)

// Order es la cabecera del pedido. Se crea una sola vez por checkout, dentro
// de la transacción, junto con sus OrderItems y todas las mutaciones de stock.
type Order struct {
	ID                 string
	UserID             string
	Status             string
	ShippingAddress    json.RawMessage // estructurado pero opaco para el motor
	PaymentMethod      string
	DeliveryMethod     string
	Subtotal           decimal.Decimal
	Shipping           decimal.Decimal
	Total              decimal.Decimal
	NeedsManufacturing bool
	Items              []OrderItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CanCancel indica si el pedido admite cancelación (solo pending/processing).
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusProcessing
}

// OrderItem es una línea del pedido: snapshot del precio unitario y las
// customizaciones al momento de la compra. Inmutable después de creada.
type OrderItem struct {
	ID             string
	OrderID        string
	ProductID      string
	ProductName    string // denormalizado para listados
	Quantity       int
	Price          decimal.Decimal // precio unitario al momento del pedido
	Customizations json.RawMessage
	Fulfillment    string // from_stock | manufactured
	Materials      []OrderItemMaterial
}

// OrderItemMaterial registra el consumo exacto de un material para una línea
// fabricada bajo pedido; la cancelación lo usa para restaurar el stock real.
type OrderItemMaterial struct {
	OrderItemID      string
	MaterialID       string
	QuantityConsumed int
}
