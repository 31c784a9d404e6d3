package entity

import "time"

// Category representa una categoría del catálogo (sofás, mesas, sillas...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
