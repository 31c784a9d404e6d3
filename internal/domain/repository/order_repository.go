package repository

import "github.com/tu-usuario/mobilia-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos.
// Create/CreateItem/CreateItemMaterial se llaman solo dentro de la transacción
// del checkout; UpdateStatus dentro de la de cancelación.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	CreateItemMaterial(m *entity.OrderItemMaterial) error
	// GetByIDAndUser devuelve el pedido con items y consumos de material,
	// o nil si no existe o no pertenece al usuario.
	GetByIDAndUser(orderID, userID string) (*entity.Order, error)
	// GetByIDAndUserForUpdate igual pero bloquea la cabecera (cancelación).
	GetByIDAndUserForUpdate(orderID, userID string) (*entity.Order, error)
	ListByUser(userID string) ([]*entity.Order, error)
	UpdateStatus(orderID, status string) error
	// CountByStatus devuelve el conteo de pedidos del usuario por estado.
	CountByStatus(userID string) (map[string]int, error)
}
