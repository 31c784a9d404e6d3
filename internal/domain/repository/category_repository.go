package repository

import "github.com/tu-usuario/mobilia-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para categorías (CRUD plano).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}
