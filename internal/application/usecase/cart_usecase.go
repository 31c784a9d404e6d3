package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mobilia-api/internal/application/dto"
	"github.com/tu-usuario/mobilia-api/internal/domain"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/repository"
)

// CartUseCase gestiona el carrito del usuario. El carrito no reserva stock:
// la disponibilidad real se resuelve en el checkout, dentro de su transacción.
type CartUseCase struct {
	repo         repository.CartRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(repo repository.CartRepository, productRepo repository.ProductRepository, materialRepo repository.MaterialRepository) *CartUseCase {
	return &CartUseCase{repo: repo, productRepo: productRepo, materialRepo: materialRepo}
}

// List devuelve el carrito con snapshot del producto y subtotal informativo;
// el checkout recalcula con precios vivos dentro de su transacción.
func (uc *CartUseCase) List(userID string) (*dto.CartResponse, error) {
	lines, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{Items: []dto.CartLineResponse{}, Subtotal: decimal.Zero}
	for _, line := range lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// Producto eliminado del catálogo: la línea huérfana se descarta.
			_ = uc.repo.Remove(line.ID, userID)
			continue
		}
		resp.Items = append(resp.Items, dto.CartLineResponse{
			ID: line.ID,
			Product: dto.CartProduct{
				ID:       product.ID,
				Name:     product.Name,
				Price:    product.Price,
				ImageURL: product.ImageURL,
				Stock:    product.Stock,
			},
			Quantity:       line.Quantity,
			Customizations: line.Customizations,
		})
		resp.Subtotal = resp.Subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return resp, nil
}

// Add agrega un producto al carrito. Si ya existe una línea del mismo producto
// se acumula la cantidad. Las customizaciones viajan opacas; solo se valida que
// el material elegido (clave "material") exista.
func (uc *CartUseCase) Add(userID string, in dto.AddCartLineRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsVisible {
		return nil, domain.ErrNotFound
	}
	if err := uc.validateCustomizations(in.Customizations); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetLine(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := uc.repo.UpdateQuantity(existing.ID, userID, existing.Quantity+in.Quantity); err != nil {
			return nil, err
		}
		return uc.List(userID)
	}

	now := time.Now()
	line := &entity.CartLine{
		ID:             uuid.New().String(),
		UserID:         userID,
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		Customizations: in.Customizations,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Add(line); err != nil {
		return nil, err
	}
	return uc.List(userID)
}

// UpdateQuantity cambia la cantidad de una línea del usuario.
func (uc *CartUseCase) UpdateQuantity(userID, lineID string, in dto.UpdateCartLineRequest) (*dto.CartResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateQuantity(lineID, userID, in.Quantity); err != nil {
		return nil, err
	}
	return uc.List(userID)
}

// Remove elimina una línea del carrito del usuario.
func (uc *CartUseCase) Remove(userID, lineID string) (*dto.CartResponse, error) {
	if err := uc.repo.Remove(lineID, userID); err != nil {
		return nil, err
	}
	return uc.List(userID)
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(userID string) error {
	return uc.repo.Clear(userID)
}

// validateCustomizations acepta cualquier objeto JSON, pero si trae la clave
// "material" el material referenciado debe existir en el inventario.
func (uc *CartUseCase) validateCustomizations(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var custom map[string]json.RawMessage
	if err := json.Unmarshal(raw, &custom); err != nil {
		return domain.ErrInvalidInput
	}
	rawMaterial, ok := custom["material"]
	if !ok {
		return nil
	}
	var materialID string
	if err := json.Unmarshal(rawMaterial, &materialID); err != nil || materialID == "" {
		return domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return nil
}
