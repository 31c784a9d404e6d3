package fulfillment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
	"github.com/tu-usuario/mobilia-api/internal/domain/fulfillment"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func productWithBOM(stock int, bom ...entity.BOMEntry) *entity.Product {
	return &entity.Product{
		ID:    "prod-1",
		Name:  "Sofá Oslo",
		Stock: stock,
		BOM:   bom,
	}
}

func bomEntry(materialID string, needed, materialStock int) entity.BOMEntry {
	return entity.BOMEntry{
		ProductID:      "prod-1",
		MaterialID:     materialID,
		MaterialName:   "material " + materialID,
		QuantityNeeded: needed,
		MaterialStock:  materialStock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ruta stock terminado
// ──────────────────────────────────────────────────────────────────────────────

// Stock terminado suficiente: sale de stock y no se consulta la receta.
func TestResolve_StockSuficiente(t *testing.T) {
	// La receta tiene material en cero a propósito: no debe importar.
	p := productWithBOM(5, bomEntry("mat-1", 2, 0))

	d := fulfillment.Resolve(p, 2)

	assert.Equal(t, fulfillment.PathFromStock, d.Path)
	assert.Empty(t, d.Consumptions)
	assert.Nil(t, d.Shortage)
}

// Stock exactamente igual a la cantidad pedida también sale de stock.
func TestResolve_StockExacto(t *testing.T) {
	p := productWithBOM(3)

	d := fulfillment.Resolve(p, 3)

	assert.Equal(t, fulfillment.PathFromStock, d.Path)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ruta fabricación
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: stock 1 < qty 3, receta {mat M: 2 por unidad}, M.stock = 10.
// Debe fabricar consumiendo 2×3 = 6 de M, sin tocar el stock terminado.
func TestResolve_FabricaConMateriales(t *testing.T) {
	p := productWithBOM(1, bomEntry("mat-M", 2, 10))

	d := fulfillment.Resolve(p, 3)

	require.Equal(t, fulfillment.PathManufacture, d.Path)
	require.Len(t, d.Consumptions, 1)
	assert.Equal(t, "mat-M", d.Consumptions[0].MaterialID)
	assert.Equal(t, 6, d.Consumptions[0].Quantity)
}

// Receta de varios materiales: el consumo se calcula por entrada.
func TestResolve_FabricaRecetaMultiple(t *testing.T) {
	p := productWithBOM(0,
		bomEntry("madera", 4, 20),
		bomEntry("tela", 3, 9),
		bomEntry("herrajes", 8, 24),
	)

	d := fulfillment.Resolve(p, 3)

	require.Equal(t, fulfillment.PathManufacture, d.Path)
	require.Len(t, d.Consumptions, 3)
	assert.Equal(t, 12, d.Consumptions[0].Quantity)
	assert.Equal(t, 9, d.Consumptions[1].Quantity)
	assert.Equal(t, 24, d.Consumptions[2].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ruta no disponible
// ──────────────────────────────────────────────────────────────────────────────

// Escenario: stock 0, receta {N: 5 por unidad}, N.stock = 3 → no disponible,
// reportando el material corto con requerido y disponible.
func TestResolve_MaterialInsuficiente(t *testing.T) {
	p := productWithBOM(0, bomEntry("mat-N", 5, 3))

	d := fulfillment.Resolve(p, 1)

	require.Equal(t, fulfillment.PathUnavailable, d.Path)
	require.NotNil(t, d.Shortage)
	assert.Equal(t, "mat-N", d.Shortage.MaterialID)
	assert.Equal(t, 5, d.Shortage.Required)
	assert.Equal(t, 3, d.Shortage.Available)
	assert.Empty(t, d.Consumptions)
}

// La receta es todo o nada: si UN material falta, no se fabrica aunque el
// resto sobre. Se reporta el primero que falla.
func TestResolve_RecetaTodoONada(t *testing.T) {
	p := productWithBOM(0,
		bomEntry("madera", 1, 100),
		bomEntry("tela", 2, 3), // corto: requiere 4
		bomEntry("herrajes", 1, 100),
	)

	d := fulfillment.Resolve(p, 2)

	require.Equal(t, fulfillment.PathUnavailable, d.Path)
	require.NotNil(t, d.Shortage)
	assert.Equal(t, "tela", d.Shortage.MaterialID)
	assert.Equal(t, 4, d.Shortage.Required)
}

// Sin receta y sin stock terminado suficiente no hay forma de cumplir.
func TestResolve_SinRecetaNoDisponible(t *testing.T) {
	p := productWithBOM(1)

	d := fulfillment.Resolve(p, 2)

	assert.Equal(t, fulfillment.PathUnavailable, d.Path)
	assert.Nil(t, d.Shortage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

// Resolver dos veces con las mismas existencias produce la misma decisión.
func TestResolve_Idempotente(t *testing.T) {
	p := productWithBOM(1, bomEntry("mat-M", 2, 10))

	first := fulfillment.Resolve(p, 3)
	second := fulfillment.Resolve(p, 3)

	assert.Equal(t, first, second)
}
