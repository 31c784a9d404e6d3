package dto

import "time"

// CreateMaterialRequest alta de materia prima (admin).
type CreateMaterialRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Stock             int    `json:"stock"`
	Unit              string `json:"unit"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// UpdateMaterialRequest modificación de materia prima (admin).
type UpdateMaterialRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Stock             *int   `json:"stock"` // nil = no tocar el stock
	Unit              string `json:"unit"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// MaterialResponse materia prima con bandera de stock bajo.
type MaterialResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Stock             int       `json:"stock"`
	Unit              string    `json:"unit"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	IsLow             bool      `json:"is_low"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CategoryRequest alta/modificación de categoría (admin).
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
