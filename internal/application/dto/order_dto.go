package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest entrada del checkout. Las líneas salen del carrito del
// usuario autenticado, nunca del body (el precio vivo manda, no el del cliente).
type PlaceOrderRequest struct {
	ShippingAddress json.RawMessage `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	DeliveryMethod  string          `json:"delivery_method"` // standard | express | next_day
}

// PlaceOrderResponse pedido creado más el mensaje de cumplimiento para el usuario.
type PlaceOrderResponse struct {
	Order   OrderResponse `json:"order"`
	Message string        `json:"message"`
}

// OrderResponse representación de un pedido con sus líneas.
type OrderResponse struct {
	ID                 string              `json:"id"`
	Status             string              `json:"status"`
	ShippingAddress    json.RawMessage     `json:"shipping_address"`
	PaymentMethod      string              `json:"payment_method"`
	DeliveryMethod     string              `json:"delivery_method"`
	Subtotal           decimal.Decimal     `json:"subtotal"`
	Shipping           decimal.Decimal     `json:"shipping"`
	Total              decimal.Decimal     `json:"total"`
	NeedsManufacturing bool                `json:"needs_manufacturing"`
	CreatedAt          time.Time           `json:"created_at"`
	Items              []OrderItemResponse `json:"items"`
}

// OrderItemResponse línea de pedido (snapshot de precio y customizaciones).
type OrderItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
	Fulfillment    string          `json:"fulfillment"` // from_stock | manufactured
}

// OrderStatsResponse conteo de pedidos del usuario por estado.
type OrderStatsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}
