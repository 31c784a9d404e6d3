package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un mueble del catálogo. Stock es el inventario de producto
// terminado; BOM es la receta de materiales para fabricarlo bajo pedido.
// Invariante: Stock >= 0 siempre (las mutaciones van dentro de la transacción del pedido).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta, 2 decimales
	Stock       int             // unidades terminadas disponibles
	ImageURL    string
	Dimensions  string
	Weight      float64
	Featured    bool
	IsVisible   bool
	CategoryID  string
	Attributes  json.RawMessage // colores/materiales disponibles, specs — opaco para el motor
	BOM         []BOMEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BOMEntry es una línea de la receta: cantidad de un material necesaria para
// fabricar UNA unidad del producto. Inmutable al momento del pedido.
// MaterialStock es el stock vivo del material cuando se carga dentro de la
// transacción (GetWithBOMForUpdate); fuera de ese contexto vale cero.
type BOMEntry struct {
	ProductID      string
	MaterialID     string
	MaterialName   string
	QuantityNeeded int // > 0
	MaterialStock  int // stock vivo del material, cargado junto con la receta
}
