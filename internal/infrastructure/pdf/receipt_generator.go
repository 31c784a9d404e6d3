// Package pdf genera el comprobante de pedido en PDF para el cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  N° Pedido + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Email │ Entrega + Pago                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Cumplimiento | P.Unit | Subtotal   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / TOTAL                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del pedido + nota de fabricación       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/mobilia-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 64, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator genera comprobantes de pedido usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador con el nombre comercial de la tienda.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// GenerateOrderReceipt genera el PDF del pedido y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateOrderReceipt(order *entity.Order, user *entity.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pedido", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order, user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(order) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y N° pedido + fecha + estado (der).
func (g *ReceiptGenerator) headerRow(order *entity.Order) core.Row {
	fecha := order.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s", fecha, statusLabel(order.Status)), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y condiciones de entrega/pago.
func customerRow(order *entity.Order, user *entity.User) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(user.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Entrega: %s   |   Pago: %s",
				user.Email,
				deliveryLabel(order.DeliveryMethod),
				order.PaymentMethod,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas del pedido.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Cumplimiento", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableItemRows: una fila por línea del pedido.
func tableItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		lineTotal := it.Price.Mul(intDecimal(it.Quantity))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				fulfillmentLabel(it.Fulfillment),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				"$"+it.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+lineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(order *entity.Order) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Envío:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+order.Subtotal.StringFixed(2)),
			value("$"+order.Shipping.StringFixed(2)),
			grandValue("$"+order.Total.StringFixed(2)),
		),
		col.New(3),
	)
}

// footerRows: QR con el ID del pedido + nota de fabricación si aplica.
func footerRows(order *entity.Order) []core.Row {
	rows := []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(order.ID, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para consultar\nel estado de tu pedido.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Gracias por tu compra.", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 20,
					Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
	if order.NeedsManufacturing {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(
				"Algunas piezas de este pedido se fabrican bajo pedido; "+
					"el tiempo de entrega puede ser mayor al habitual.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case entity.OrderStatusPending:
		return "Pendiente"
	case entity.OrderStatusProcessing:
		return "En fabricación"
	case entity.OrderStatusShipped:
		return "Enviado"
	case entity.OrderStatusDelivered:
		return "Entregado"
	case entity.OrderStatusCancelled:
		return "Cancelado"
	}
	return status
}

func deliveryLabel(method string) string {
	switch method {
	case entity.DeliveryStandard:
		return "Estándar"
	case entity.DeliveryExpress:
		return "Express"
	case entity.DeliveryNextDay:
		return "Día siguiente"
	}
	return method
}

func fulfillmentLabel(f string) string {
	switch f {
	case entity.FulfillmentFromStock:
		return "De stock"
	case entity.FulfillmentManufactured:
		return "Fabricado"
	}
	return f
}

func intDecimal(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// shortID recorta el UUID para mostrarlo como número de pedido legible.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
