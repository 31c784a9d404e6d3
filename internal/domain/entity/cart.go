package entity

import (
	"encoding/json"
	"time"
)

// CartLine es una línea del carrito de un usuario (snapshot efímero: se
// elimina dentro de la misma transacción que crea el pedido).
// Customizations es un bolso clave-valor opaco (color, material elegido...);
// el motor de pedidos lo copia sin interpretarlo.
type CartLine struct {
	ID             string
	UserID         string
	ProductID      string
	Quantity       int // > 0
	Customizations json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
