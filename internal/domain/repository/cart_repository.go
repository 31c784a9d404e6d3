package repository

import "github.com/tu-usuario/mobilia-api/internal/domain/entity"

// CartRepository define el puerto del carrito (snapshot efímero por usuario).
// Clear participa en la transacción del checkout: el carrito se vacía en el
// mismo commit que crea el pedido.
type CartRepository interface {
	ListByUser(userID string) ([]*entity.CartLine, error)
	// GetLine devuelve la línea del usuario para un producto, o nil si no existe.
	GetLine(userID, productID string) (*entity.CartLine, error)
	Add(line *entity.CartLine) error
	UpdateQuantity(lineID, userID string, quantity int) error
	Remove(lineID, userID string) error
	Clear(userID string) error
}
