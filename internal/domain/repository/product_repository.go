package repository

import "github.com/tu-usuario/mobilia-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los decrementos son condicionales: nunca dejan el stock negativo; si la
// existencia no alcanza devuelven domain.ErrInsufficientStock y el caller
// debe abortar la transacción completa.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetWithBOM carga el producto con su receta y los stocks vivos de los materiales.
	GetWithBOM(id string) (*entity.Product, error)
	// GetWithBOMForUpdate igual que GetWithBOM pero bloquea la fila del producto
	// y las de los materiales de la receta (SELECT FOR UPDATE). Usar dentro de
	// la transacción del checkout.
	GetWithBOMForUpdate(id string) (*entity.Product, error)
	List(onlyVisible bool, categoryID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// SetBOM reemplaza la receta completa del producto (admin).
	SetBOM(productID string, entries []entity.BOMEntry) error
	DecrementStock(productID string, amount int) error
	IncrementStock(productID string, amount int) error
	Delete(id string) error
}
