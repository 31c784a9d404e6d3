package checkout

import (
	"context"

	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única frontera transaccional del motor
// de pedidos: todo lo que la función hace se confirma o se revierte junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		materialRepo repository.MaterialRepository,
		orderRepo repository.OrderRepository,
		cartRepo repository.CartRepository,
	) error) error
}
