package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto (admin).
type CreateProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Stock       int               `json:"stock"`
	ImageURL    string            `json:"image_url"`
	Dimensions  string            `json:"dimensions"`
	Weight      float64           `json:"weight"`
	Featured    bool              `json:"featured"`
	IsVisible   *bool             `json:"is_visible"` // nil = visible por defecto
	CategoryID  string            `json:"category_id"`
	Attributes  json.RawMessage   `json:"attributes,omitempty"`
	BOM         []BOMEntryRequest `json:"bom,omitempty"`
}

// UpdateProductRequest modificación de producto (admin). El stock terminado no
// se edita aquí: lo mueven el checkout y la cancelación dentro de sus transacciones,
// o un ajuste explícito de inventario.
type UpdateProductRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	ImageURL    string            `json:"image_url"`
	Dimensions  string            `json:"dimensions"`
	Weight      float64           `json:"weight"`
	Featured    bool              `json:"featured"`
	IsVisible   *bool             `json:"is_visible"`
	CategoryID  string            `json:"category_id"`
	Attributes  json.RawMessage   `json:"attributes,omitempty"`
	BOM         []BOMEntryRequest `json:"bom,omitempty"`
}

// BOMEntryRequest línea de receta: material y cantidad por unidad fabricada.
type BOMEntryRequest struct {
	MaterialID     string `json:"material_id"`
	QuantityNeeded int    `json:"quantity_needed"`
}

// ProductResponse producto del catálogo con su receta.
type ProductResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Stock       int                `json:"stock"`
	ImageURL    string             `json:"image_url,omitempty"`
	Dimensions  string             `json:"dimensions,omitempty"`
	Weight      float64            `json:"weight,omitempty"`
	Featured    bool               `json:"featured"`
	IsVisible   bool               `json:"is_visible"`
	CategoryID  string             `json:"category_id,omitempty"`
	Attributes  json.RawMessage    `json:"attributes,omitempty"`
	BOM         []BOMEntryResponse `json:"bom,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// BOMEntryResponse línea de receta en respuestas.
type BOMEntryResponse struct {
	MaterialID     string `json:"material_id"`
	MaterialName   string `json:"material_name,omitempty"`
	QuantityNeeded int    `json:"quantity_needed"`
}
