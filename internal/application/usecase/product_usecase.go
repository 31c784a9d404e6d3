package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de muebles. El stock terminado
// no se edita aquí: lo mueven el checkout y la cancelación en sus transacciones.
type ProductUseCase struct {
	repo         repository.ProductRepository
	materialRepo repository.MaterialRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, materialRepo repository.MaterialRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, materialRepo: materialRepo, categoryRepo: categoryRepo}
}

// Create crea un producto con su receta opcional.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || !in.Price.IsPositive() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound // la categoría no existe
		}
	}
	bom, err := uc.validateBOM(in.BOM)
	if err != nil {
		return nil, err
	}

	isVisible := true
	if in.IsVisible != nil {
		isVisible = *in.IsVisible
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		Dimensions:  in.Dimensions,
		Weight:      in.Weight,
		Featured:    in.Featured,
		IsVisible:   isVisible,
		CategoryID:  in.CategoryID,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	if len(bom) > 0 {
		for i := range bom {
			bom[i].ProductID = product.ID
		}
		if err := uc.repo.SetBOM(product.ID, bom); err != nil {
			return nil, err
		}
		product.BOM = bom
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con su receta.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetWithBOM(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos del catálogo. onlyVisible=true para la tienda pública;
// false para el panel admin.
func (uc *ProductUseCase) List(onlyVisible bool, categoryID string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(onlyVisible, categoryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, len(list))
	for i, p := range list {
		out[i] = toProductResponse(p)
	}
	return out, nil
}

// Update actualiza los datos del producto y reemplaza su receta si viene BOM.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetWithBOM(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price.IsPositive() {
		product.Price = in.Price
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.Dimensions != "" {
		product.Dimensions = in.Dimensions
	}
	if in.Weight > 0 {
		product.Weight = in.Weight
	}
	product.Featured = in.Featured
	if in.IsVisible != nil {
		product.IsVisible = *in.IsVisible
	}
	if in.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = in.CategoryID
	}
	if len(in.Attributes) > 0 {
		product.Attributes = in.Attributes
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	if in.BOM != nil {
		bom, err := uc.validateBOM(in.BOM)
		if err != nil {
			return nil, err
		}
		for i := range bom {
			bom[i].ProductID = product.ID
		}
		if err := uc.repo.SetBOM(product.ID, bom); err != nil {
			return nil, err
		}
		product.BOM = bom
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// validateBOM verifica que cada material de la receta exista y que las
// cantidades sean positivas.
func (uc *ProductUseCase) validateBOM(in []dto.BOMEntryRequest) ([]entity.BOMEntry, error) {
	bom := make([]entity.BOMEntry, 0, len(in))
	for _, e := range in {
		if e.MaterialID == "" || e.QuantityNeeded <= 0 {
			return nil, domain.ErrInvalidInput
		}
		material, err := uc.materialRepo.GetByID(e.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound // material inexistente en la receta
		}
		bom = append(bom, entity.BOMEntry{
			MaterialID:     e.MaterialID,
			MaterialName:   material.Name,
			QuantityNeeded: e.QuantityNeeded,
		})
	}
	return bom, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		Dimensions:  p.Dimensions,
		Weight:      p.Weight,
		Featured:    p.Featured,
		IsVisible:   p.IsVisible,
		CategoryID:  p.CategoryID,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, e := range p.BOM {
		resp.BOM = append(resp.BOM, dto.BOMEntryResponse{
			MaterialID:     e.MaterialID,
			MaterialName:   e.MaterialName,
			QuantityNeeded: e.QuantityNeeded,
		})
	}
	return resp
}
