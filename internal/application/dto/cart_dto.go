package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AddCartLineRequest agrega un producto al carrito del usuario.
type AddCartLineRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       int             `json:"quantity"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
}

// UpdateCartLineRequest cambia la cantidad de una línea existente.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse línea del carrito con el snapshot del producto para el listado.
type CartLineResponse struct {
	ID             string          `json:"id"`
	Product        CartProduct     `json:"product"`
	Quantity       int             `json:"quantity"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
}

// CartProduct datos mínimos del producto dentro del carrito.
type CartProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Stock    int             `json:"stock"`
}

// CartResponse carrito completo con subtotal informativo (el checkout recalcula
// con precios vivos dentro de su transacción).
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}
