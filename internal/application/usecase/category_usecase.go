package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// CategoryUseCase CRUD plano de categorías del catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List() ([]*dto.CategoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, len(list))
	for i, c := range list {
		out[i] = toCategoryResponse(c)
	}
	return out, nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
