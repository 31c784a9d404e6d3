package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

const cartColumns = `id, user_id, product_id, quantity, customizations, created_at, updated_at`

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para el carrito.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// ListByUser lista las líneas del carrito del usuario, más antigua primero.
func (r *CartRepo) ListByUser(userID string) ([]*entity.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_lines WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.Customizations, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}
	return lines, nil
}

// GetLine devuelve la línea del usuario para un producto, o nil si no existe.
func (r *CartRepo) GetLine(userID, productID string) (*entity.CartLine, error) {
	query := `SELECT ` + cartColumns + ` FROM cart_lines WHERE user_id = $1 AND product_id = $2`
	var l entity.CartLine
	err := r.q.QueryRow(context.Background(), query, userID, productID).Scan(
		&l.ID, &l.UserID, &l.ProductID, &l.Quantity, &l.Customizations, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return &l, nil
}

// Add agrega una línea al carrito.
func (r *CartRepo) Add(line *entity.CartLine) error {
	query := `
		INSERT INTO cart_lines (` + cartColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.UserID, line.ProductID, line.Quantity,
		line.Customizations, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate // ya hay línea de ese producto
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

// UpdateQuantity cambia la cantidad de una línea del usuario.
func (r *CartRepo) UpdateQuantity(lineID, userID string, quantity int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE cart_lines SET quantity = $3, updated_at = now() WHERE id = $1 AND user_id = $2`,
		lineID, userID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Remove elimina una línea del carrito del usuario.
func (r *CartRepo) Remove(lineID, userID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`,
		lineID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Clear vacía el carrito del usuario. Participa en la transacción del checkout.
func (r *CartRepo) Clear(userID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_lines WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
