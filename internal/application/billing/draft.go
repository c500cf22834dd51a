package billing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/domain/money"
)

// ItemField identifica el campo editable de una línea del borrador. Es una
// variante cerrada: el despacho es un switch exhaustivo, no un nombre de
// campo en runtime.
type ItemField int

const (
	FieldDescription ItemField = iota
	FieldQuantity
	FieldRate
	FieldVATPercent
	FieldUnitType
)

// DraftItem es una línea del borrador en edición. Los montos son texto tal
// como los escribe el usuario; Total se recalcula en cada edición de
// cantidad, tarifa o IVA. El ID es un uuid local del editor: la identidad
// real la asigna el store al persistir.
type DraftItem struct {
	ID          string
	Description string
	Quantity    string
	Rate        string
	VATPercent  string
	UnitType    string
	Total       string
}

// Draft es una factura en edición, aún sin persistir. Es un valor propiedad
// del llamador: los métodos retornan el borrador nuevo y nunca mutan el
// receptor, sin estado global escondido.
type Draft struct {
	InvoiceNumber       string
	CompanyName         string
	CompanyTagline      string
	CompanyLogo         string
	FromName            string
	FromAddress         string
	FromEmail           string
	FromPhone           string
	FromVAT             string
	ToName              string
	ToAddress           string
	ToEmail             string
	ToPhone             string
	ToVAT               string
	InvoiceDate         string
	DueDate             string
	Currency            string
	PaymentTerms        string
	PaymentInstructions string
	InvoiceNotes        string
	Items               []DraftItem
}

const dateLayout = "2006-01-02"

// defaultDueDays plazo por defecto entre fecha de factura y vencimiento.
const defaultDueDays = 30

func newDraftItem() DraftItem {
	return DraftItem{
		ID:         uuid.New().String(),
		Quantity:   "1",
		Rate:       "0.00",
		VATPercent: "0",
		UnitType:   entity.UnitItem,
		Total:      "0.00",
	}
}

// GenerateInvoiceNumber produce un número con forma INV-YYYYMMDD-NNN. El
// sufijo es aleatorio de 3 dígitos y NO garantiza unicidad: las colisiones
// se toleran, el número es editable y de uso humano.
func GenerateInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%03d", time.Now().Format("20060102"), rand.Intn(1000))
}

// NewDraftInvoice crea un borrador con una línea vacía, la fecha de hoy,
// vencimiento a 30 días, moneda USD y términos net30.
func NewDraftInvoice() Draft {
	now := time.Now()
	return Draft{
		InvoiceNumber: GenerateInvoiceNumber(),
		InvoiceDate:   now.Format(dateLayout),
		DueDate:       now.AddDate(0, 0, defaultDueDays).Format(dateLayout),
		Currency:      entity.CurrencyUSD,
		PaymentTerms:  entity.TermsNet30,
		Items:         []DraftItem{newDraftItem()},
	}
}

// Clear descarta el borrador y retorna uno fresco con número nuevo.
func (d Draft) Clear() Draft {
	return NewDraftInvoice()
}

// AddItem agrega una línea vacía al final. Nunca toca las líneas existentes.
func (d Draft) AddItem() Draft {
	items := make([]DraftItem, 0, len(d.Items)+1)
	items = append(items, d.Items...)
	items = append(items, newDraftItem())
	d.Items = items
	return d
}

// RemoveItem elimina la línea indicada solo si queda al menos una después.
// Sobre una colección de una sola línea es un no-op silencioso: el editor
// siempre conserva una fila editable. No es un error en ningún caso.
func (d Draft) RemoveItem(id string) Draft {
	if len(d.Items) <= 1 {
		return d
	}
	items := make([]DraftItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return d
	}
	d.Items = items
	return d
}

// UpdateItem asigna el campo indicado en la línea con ese ID. Si el campo es
// cantidad, tarifa o IVA, recalcula el total de la línea con el motor de
// cálculo; descripción y tipo de unidad nunca afectan totales. Si el ID no
// existe, el borrador queda igual.
func (d Draft) UpdateItem(id string, field ItemField, value string) Draft {
	items := make([]DraftItem, len(d.Items))
	copy(items, d.Items)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		switch field {
		case FieldDescription:
			items[i].Description = value
		case FieldQuantity:
			items[i].Quantity = value
		case FieldRate:
			items[i].Rate = value
		case FieldVATPercent:
			items[i].VATPercent = value
		case FieldUnitType:
			items[i].UnitType = value
		}
		if field == FieldQuantity || field == FieldRate || field == FieldVATPercent {
			logSoftCoercion(value)
			items[i].Total = money.LineTotalFromStrings(
				items[i].Quantity, items[i].Rate, items[i].VATPercent,
			).StringFixed(money.Scale)
		}
		break
	}
	d.Items = items
	return d
}

// Totals calcula subtotal, IVA y total del borrador con la misma rutina que
// se usa al persistir (sumar crudo, redondear al final).
func (d Draft) Totals() (subtotal, vatTotal, grandTotal decimal.Decimal) {
	lines := make([]money.Line, 0, len(d.Items))
	for _, it := range d.Items {
		lines = append(lines, money.Line{
			Quantity:   money.ParseAmount(it.Quantity),
			Rate:       money.ParseAmount(it.Rate),
			VATPercent: money.ParseAmount(it.VATPercent),
		})
	}
	return money.Totals(lines)
}

// logSoftCoercion deja rastro en debug cuando un monto se coacciona a cero.
// Es escritura en progreso del usuario, no se reporta como error.
func logSoftCoercion(value string) {
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		log.Debug().Str("value", value).Msg("monto no numérico o negativo coaccionado a cero")
	}
}
