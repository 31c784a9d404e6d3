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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, description, stock, unit, low_stock_threshold, created_at, updated_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materias primas.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste una materia prima.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Description, material.Stock,
		material.Unit, material.LowStockThreshold, material.CreatedAt, material.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Description, &m.Stock, &m.Unit,
		&m.LowStockThreshold, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List lista materias primas con paginación.
func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanList(query, limit, offset)
}

// ListLow lista los materiales con stock por debajo de su umbral de reposición.
func (r *MaterialRepo) ListLow() ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE stock < low_stock_threshold ORDER BY name`
	return r.scanList(query)
}

// Update actualiza una materia prima, incluido el stock (ajuste explícito de inventario).
func (r *MaterialRepo) Update(material *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, description = $3, stock = $4, unit = $5, low_stock_threshold = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Description, material.Stock,
		material.Unit, material.LowStockThreshold, material.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// DecrementStock consume material solo si alcanza (stock >= amount en el UPDATE).
func (r *MaterialRepo) DecrementStock(materialID string, amount int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE materials SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		materialID, amount,
	)
	if err != nil {
		return fmt.Errorf("decrement material stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// IncrementStock devuelve consumo al material (cancelación de pedidos fabricados).
func (r *MaterialRepo) IncrementStock(materialID string, amount int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE materials SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		materialID, amount,
	)
	if err != nil {
		return fmt.Errorf("increment material stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una materia prima. ErrConflict si alguna receta la referencia.
func (r *MaterialRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MaterialRepo) scanList(query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Description, &m.Stock, &m.Unit,
			&m.LowStockThreshold, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return list, nil
}
