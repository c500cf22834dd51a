// Package pdf implementa la representación imprimible de la factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + tagline       │  INVOICE + N° + Fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: emisor            │  BILL TO: receptor               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | Unidad | Tarifa | IVA | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Instrucciones de pago + Notas + QR del número      │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/facturador-api/internal/application/billing"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 58, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Símbolo por código de moneda soportado.
var currencySymbols = map[string]string{
	entity.CurrencyUSD: "$",
	entity.CurrencyEUR: "€",
	entity.CurrencyGBP: "£",
	entity.CurrencyCAD: "CA$",
}

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(inv *entity.InvoiceWithItems) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.InvoiceNumber, true).
		WithAuthor(inv.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	symbol := currencySymbols[inv.Currency]

	m.AddRows(headerRow(&inv.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(&inv.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(inv.Items, symbol) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(&inv.Invoice, symbol))

	m.AddRows(line.NewRow(3))
	for _, r := range footerRows(&inv.Invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + tagline (izq) y número + fechas (der).
func headerRow(inv *entity.Invoice) core.Row {
	left := col.New(7).Add(
		text.New(inv.CompanyName, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
	)
	if inv.CompanyTagline != nil {
		left.Add(text.New(*inv.CompanyTagline, props.Text{
			Size: 9, Top: 9, Color: colorGray,
		}))
	}

	return row.New(20).Add(
		left,
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
			}),
			text.New(fmt.Sprintf("Date: %s   Due: %s", inv.InvoiceDate, inv.DueDate), props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

// partiesRow: bloques de emisor y receptor lado a lado.
func partiesRow(inv *entity.Invoice) core.Row {
	return row.New(26).Add(
		partyCol("FROM", inv.FromName, inv.FromAddress, inv.FromEmail, inv.FromPhone, inv.FromVAT),
		partyCol("BILL TO", inv.ToName, inv.ToAddress, inv.ToEmail, inv.ToPhone, inv.ToVAT),
	)
}

func partyCol(title, name, address, email string, phone, vat *string) core.Col {
	c := col.New(6).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(address, props.Text{Size: 8, Top: 12, Color: colorGray}),
		text.New(email, props.Text{Size: 8, Top: 16, Color: colorGray}),
	)
	extra := ""
	if phone != nil {
		extra = *phone
	}
	if vat != nil {
		if extra != "" {
			extra += "   |   "
		}
		extra += "VAT: " + *vat
	}
	if extra != "" {
		c.Add(text.New(extra, props.Text{Size: 8, Top: 20, Color: colorGray}))
	}
	return c
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 5, align.Left),
		h("Qty", 1, align.Center),
		h("Unit", 1, align.Center),
		h("Rate", 2, align.Right),
		h("VAT%", 1, align.Center),
		h("Total", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de la factura.
func tableItemRows(items []entity.InvoiceItem, symbol string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				it.UnitType,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				symbol+formatAmount(it.Rate),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				it.VATPercent.String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				symbol+formatAmount(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv *entity.Invoice, symbol string) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label("VAT:", 7),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 14,
			}),
		),
		col.New(3).Add(
			value(symbol+formatAmount(inv.Subtotal), 1),
			value(symbol+formatAmount(inv.VATTotal), 7),
			text.New(symbol+formatAmount(inv.GrandTotal), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 14,
			}),
		),
	)
}

// footerRows: instrucciones de pago, notas y un QR con el número de factura
// para conciliación rápida.
func footerRows(inv *entity.Invoice) []core.Row {
	var rows []core.Row

	if inv.PaymentInstructions != nil {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("PAYMENT INSTRUCTIONS", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(*inv.PaymentInstructions, props.Text{Size: 8, Color: colorGray, Top: 1}),
			)),
		)
	}
	if inv.InvoiceNotes != nil {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("NOTES", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(*inv.InvoiceNotes, props.Text{Size: 8, Color: colorGray, Top: 1}),
			)),
		)
	}

	rows = append(rows, row.New(24).Add(
		col.New(3).Add(code.NewQr(inv.InvoiceNumber, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New(fmt.Sprintf("Payment terms: %s", inv.PaymentTerms), props.Text{
				Size: 8, Top: 8, Left: 3, Color: colorGray,
			}),
			text.New("Thank you for your business.", props.Text{
				Size: 8, Top: 13, Left: 3, Color: colorGray,
			}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatAmount formatea un monto con separador de miles y 2 decimales en
// convención en-US (1,234.50). Los montos ya vienen redondeados a 2 decimales,
// el paso por float es solo presentación.
func formatAmount(d decimal.Decimal) string {
	return amountPrinter.Sprintf("%v", number.Decimal(d.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
