package entity

import "time"

// Material representa una materia prima (madera, tela, herrajes...).
// Invariante: Stock >= 0; un decremento que lo dejaría negativo aborta el pedido completo.
type Material struct {
	ID                string
	Name              string
	Description       string
	Stock             int
	Unit              string // pcs, m, m2, kg...
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLow indica si el material está por debajo de su umbral de reposición.
func (m *Material) IsLow() bool {
	return m.Stock < m.LowStockThreshold
}
