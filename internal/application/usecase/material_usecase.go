package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// MaterialUseCase casos de uso CRUD para materias primas (admin).
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea una materia prima.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Name == "" || in.Stock < 0 || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = "pcs"
	}
	now := time.Now()
	material := &entity.Material{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Description:       in.Description,
		Stock:             in.Stock,
		Unit:              in.Unit,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene una materia prima por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// List lista materias primas con paginación.
func (uc *MaterialUseCase) List(page dto.PageRequest) ([]*dto.MaterialResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, len(list))
	for i, m := range list {
		out[i] = toMaterialResponse(m)
	}
	return out, nil
}

// ListLow lista los materiales por debajo de su umbral de reposición.
func (uc *MaterialUseCase) ListLow() ([]*dto.MaterialResponse, error) {
	list, err := uc.repo.ListLow()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, len(list))
	for i, m := range list {
		out[i] = toMaterialResponse(m)
	}
	return out, nil
}

// Update actualiza una materia prima. Stock nil no toca el stock (los pedidos
// lo mueven en sus transacciones); un valor explícito es un ajuste de inventario.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		material.Name = in.Name
	}
	if in.Description != "" {
		material.Description = in.Description
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		material.Stock = *in.Stock
	}
	if in.Unit != "" {
		material.Unit = in.Unit
	}
	if in.LowStockThreshold >= 0 {
		material.LowStockThreshold = in.LowStockThreshold
	}
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina una materia prima. Falla con ErrConflict si alguna receta la usa.
func (uc *MaterialUseCase) Delete(id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Stock:             m.Stock,
		Unit:              m.Unit,
		LowStockThreshold: m.LowStockThreshold,
		IsLow:             m.IsLow(),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
