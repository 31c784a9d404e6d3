package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/mobilia-api/internal/application/checkout"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// Ensure TxRunner implements checkout.TxRunner.
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Es la frontera de atomicidad del checkout y la cancelación.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	orderRepo := NewOrderRepository(tx)
	cartRepo := NewCartRepository(tx)

	if err := fn(productRepo, materialRepo, orderRepo, cartRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
