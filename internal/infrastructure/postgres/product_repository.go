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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, stock, image_url, dimensions, weight, featured, is_visible, category_id, attributes, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto (sin receta; ver SetBOM).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.ImageURL, product.Dimensions, product.Weight, product.Featured,
		product.IsVisible, nullIfEmpty(product.CategoryID), product.Attributes,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, sin receta.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(query, id)
}

// GetWithBOM carga el producto con su receta y los stocks vivos de los materiales.
func (r *ProductRepo) GetWithBOM(id string) (*entity.Product, error) {
	return r.getWithBOM(id, false)
}

// GetWithBOMForUpdate igual que GetWithBOM pero bloquea la fila del producto y
// las de los materiales de la receta. Usar dentro de la transacción del checkout.
func (r *ProductRepo) GetWithBOMForUpdate(id string) (*entity.Product, error) {
	return r.getWithBOM(id, true)
}

func (r *ProductRepo) getWithBOM(id string, forUpdate bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	product, err := r.scanOne(query, id)
	if err != nil || product == nil {
		return product, err
	}

	// El ORDER BY fija el orden de bloqueo de materiales: dos checkouts que
	// compartan materiales los bloquean en la misma secuencia (sin deadlock).
	bomQuery := `
		SELECT pm.product_id, pm.material_id, m.name, pm.quantity_needed, m.stock
		FROM product_materials pm
		JOIN materials m ON m.id = pm.material_id
		WHERE pm.product_id = $1
		ORDER BY pm.material_id`
	if forUpdate {
		bomQuery += ` FOR UPDATE OF m`
	}
	rows, err := r.q.Query(context.Background(), bomQuery, id)
	if err != nil {
		return nil, fmt.Errorf("query bom: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e entity.BOMEntry
		if err := rows.Scan(&e.ProductID, &e.MaterialID, &e.MaterialName, &e.QuantityNeeded, &e.MaterialStock); err != nil {
			return nil, fmt.Errorf("scan bom entry: %w", err)
		}
		product.BOM = append(product.BOM, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bom: %w", err)
	}
	return product, nil
}

// List lista productos del catálogo con filtros opcionales y paginación.
func (r *ProductRepo) List(onlyVisible bool, categoryID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	if onlyVisible {
		query += ` AND is_visible = true`
	}
	if categoryID != "" {
		args = append(args, categoryID)
		query += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return list, nil
}

// Update actualiza los datos del producto. El stock no se toca aquí: lo mueven
// DecrementStock/IncrementStock dentro de las transacciones de pedido.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, image_url = $5, dimensions = $6,
		    weight = $7, featured = $8, is_visible = $9, category_id = $10,
		    attributes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.ImageURL,
		product.Dimensions, product.Weight, product.Featured, product.IsVisible,
		nullIfEmpty(product.CategoryID), product.Attributes, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetBOM reemplaza la receta completa del producto.
func (r *ProductRepo) SetBOM(productID string, entries []entity.BOMEntry) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM product_materials WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear bom: %w", err)
	}
	for _, e := range entries {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_materials (product_id, material_id, quantity_needed) VALUES ($1, $2, $3)`,
			productID, e.MaterialID, e.QuantityNeeded,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound // material inexistente
			}
			return fmt.Errorf("insert bom entry: %w", err)
		}
	}
	return nil
}

// DecrementStock descuenta stock terminado solo si alcanza: el propio UPDATE
// verifica stock >= amount, así el invariante stock >= 0 se sostiene aun con
// transacciones concurrentes.
func (r *ProductRepo) DecrementStock(productID string, amount int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, amount,
	)
	if err != nil {
		return fmt.Errorf("decrement product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock devuelve unidades al stock terminado (cancelación).
func (r *ProductRepo) IncrementStock(productID string, amount int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		productID, amount,
	)
	if err != nil {
		return fmt.Errorf("increment product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto y su receta (ON DELETE CASCADE en product_materials).
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict // referenciado por pedidos
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL,
		&p.Dimensions, &p.Weight, &p.Featured, &p.IsVisible, &categoryID,
		&p.Attributes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

// nullIfEmpty convierte "" en NULL para columnas con FK opcional.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
