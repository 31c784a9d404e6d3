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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, status, shipping_address, payment_method, delivery_method, subtotal, shipping, total, needs_manufacturing, created_at, updated_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido (solo dentro de la transacción del checkout).
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.UserID, order.Status, order.ShippingAddress, order.PaymentMethod,
		order.DeliveryMethod, order.Subtotal, order.Shipping, order.Total,
		order.NeedsManufacturing, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price, customizations, fulfillment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.ProductName,
		item.Quantity, item.Price, item.Customizations, item.Fulfillment,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// CreateItemMaterial registra el consumo de un material para una línea fabricada.
func (r *OrderRepo) CreateItemMaterial(m *entity.OrderItemMaterial) error {
	query := `
		INSERT INTO order_item_materials (order_item_id, material_id, quantity_consumed)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, m.OrderItemID, m.MaterialID, m.QuantityConsumed)
	if err != nil {
		return fmt.Errorf("insert order item material: %w", err)
	}
	return nil
}

// GetByIDAndUser devuelve el pedido con items y consumos, o nil si no existe o es ajeno.
func (r *OrderRepo) GetByIDAndUser(orderID, userID string) (*entity.Order, error) {
	return r.getByIDAndUser(orderID, userID, false)
}

// GetByIDAndUserForUpdate igual pero bloquea la cabecera (cancelación).
func (r *OrderRepo) GetByIDAndUserForUpdate(orderID, userID string) (*entity.Order, error) {
	return r.getByIDAndUser(orderID, userID, true)
}

func (r *OrderRepo) getByIDAndUser(orderID, userID string, forUpdate bool) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, orderID, userID).Scan(
		&o.ID, &o.UserID, &o.Status, &o.ShippingAddress, &o.PaymentMethod,
		&o.DeliveryMethod, &o.Subtotal, &o.Shipping, &o.Total,
		&o.NeedsManufacturing, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser lista los pedidos del usuario con sus líneas, más reciente primero.
func (r *OrderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Status, &o.ShippingAddress, &o.PaymentMethod,
			&o.DeliveryMethod, &o.Subtotal, &o.Shipping, &o.Total,
			&o.NeedsManufacturing, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	for _, o := range orders {
		if err := r.loadItems(o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		orderID, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus devuelve el conteo de pedidos del usuario agrupado por estado.
func (r *OrderRepo) CountByStatus(userID string) (map[string]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT status, COUNT(*) FROM orders WHERE user_id = $1 GROUP BY status`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order counts: %w", err)
	}
	return counts, nil
}

// loadItems carga líneas y consumos de material del pedido.
func (r *OrderRepo) loadItems(o *entity.Order) error {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price, customizations, fulfillment
		FROM order_items WHERE order_id = $1 ORDER BY id`, o.ID)
	if err != nil {
		return fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.Price, &it.Customizations, &it.Fulfillment,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}

	for i := range o.Items {
		mrows, err := r.q.Query(ctx, `
			SELECT order_item_id, material_id, quantity_consumed
			FROM order_item_materials WHERE order_item_id = $1`, o.Items[i].ID)
		if err != nil {
			return fmt.Errorf("query item materials: %w", err)
		}
		for mrows.Next() {
			var m entity.OrderItemMaterial
			if err := mrows.Scan(&m.OrderItemID, &m.MaterialID, &m.QuantityConsumed); err != nil {
				mrows.Close()
				return fmt.Errorf("scan item material: %w", err)
			}
			o.Items[i].Materials = append(o.Items[i].Materials, m)
		}
		mrows.Close()
		if err := mrows.Err(); err != nil {
			return fmt.Errorf("iterate item materials: %w", err)
		}
	}
	return nil
}
