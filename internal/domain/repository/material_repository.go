package repository

import "github.com/tu-usuario/mobilia-api/internal/domain/entity"

// MaterialRepository define el puerto para consultar/actualizar materias primas.
// DecrementStock es condicional (stock >= amount): si no alcanza devuelve
// domain.ErrInsufficientStock para que la transacción del pedido haga rollback.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	List(limit, offset int) ([]*entity.Material, error)
	// ListLow devuelve los materiales con stock por debajo de su umbral.
	ListLow() ([]*entity.Material, error)
	Update(material *entity.Material) error
	DecrementStock(materialID string, amount int) error
	IncrementStock(materialID string, amount int) error
	Delete(id string) error
}
