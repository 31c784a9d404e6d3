// Package fulfillment decide, por línea de pedido, la ruta de cumplimiento:
// vender de stock terminado, fabricar bajo pedido consumiendo materiales, o
// rechazar. Es lógica pura de dominio: no toca la base de datos; el caso de
// uso de checkout aplica las mutaciones dentro de su transacción.
package fulfillment

import "github.com/tu-usuario/mobilia-api/internal/domain/entity"

// Path es la ruta de cumplimiento decidida para una línea.
type Path string

const (
	PathFromStock   Path = "from_stock"   // stock terminado suficiente
	PathManufacture Path = "manufacture"  // se fabrica: consume materiales, no stock terminado
	PathUnavailable Path = "unavailable"  // ni stock ni materiales suficientes
)

// Consumption es el consumo de un material para fabricar la cantidad pedida:
// QuantityNeeded de la receta × cantidad de la línea.
type Consumption struct {
	MaterialID string
	Quantity   int
}

// Shortage identifica el primer material cuya existencia no alcanza.
// Se reporta en el error para que el cliente sepa qué faltó.
type Shortage struct {
	MaterialID   string
	MaterialName string
	Required     int
	Available    int
}

// Decision es el resultado de resolver una línea. Consumptions solo se llena
// para PathManufacture; Shortage solo para PathUnavailable con receta
// (nil cuando el producto no tiene receta y el stock terminado no alcanza).
type Decision struct {
	Path         Path
	Consumptions []Consumption
	Shortage     *Shortage
}

// Resolve determina la ruta de cumplimiento para quantity unidades del producto.
// Precondición: quantity > 0 y product.BOM cargado con stocks vivos de material
// (dentro de la misma transacción que luego escribirá).
//
// Reglas:
//  1. Stock terminado >= quantity → PathFromStock.
//  2. Si no, la receta completa debe poder cubrirse: TODAS las entradas del BOM
//     necesitan materialStock >= quantityNeeded×quantity (todo o nada).
//  3. Sin receta y sin stock terminado suficiente → PathUnavailable.
//
// Resolve es idempotente: mismas existencias, misma decisión.
func Resolve(product *entity.Product, quantity int) Decision {
	if product.Stock >= quantity {
		return Decision{Path: PathFromStock}
	}

	if len(product.BOM) == 0 {
		// Sin receta no hay forma de fabricar el faltante.
		return Decision{Path: PathUnavailable}
	}

	consumptions := make([]Consumption, 0, len(product.BOM))
	for _, entry := range product.BOM {
		required := entry.QuantityNeeded * quantity
		if entry.MaterialStock < required {
			return Decision{
				Path: PathUnavailable,
				Shortage: &Shortage{
					MaterialID:   entry.MaterialID,
					MaterialName: entry.MaterialName,
					Required:     required,
					Available:    entry.MaterialStock,
				},
			}
		}
		consumptions = append(consumptions, Consumption{
			MaterialID: entry.MaterialID,
			Quantity:   required,
		})
	}

	return Decision{Path: PathManufacture, Consumptions: consumptions}
}
