package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas soportadas (deben coincidir con el CHECK de la tabla invoices).
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyCAD = "CAD"
)

// Términos de pago soportados.
const (
	TermsNet30        = "net30"
	TermsNet15        = "net15"
	TermsNet60        = "net60"
	TermsDueOnReceipt = "due_on_receipt"
)

// Tipos de unidad de una línea.
const (
	UnitItem = "item"
	UnitHour = "hour"
	UnitDay  = "day"
)

// ValidCurrency indica si el código de moneda está en el catálogo soportado.
func ValidCurrency(c string) bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD:
		return true
	}
	return false
}

// ValidPaymentTerms indica si el término de pago está en el catálogo soportado.
func ValidPaymentTerms(t string) bool {
	switch t {
	case TermsNet30, TermsNet15, TermsNet60, TermsDueOnReceipt:
		return true
	}
	return false
}

// ValidUnitType indica si el tipo de unidad está en el catálogo soportado.
func ValidUnitType(u string) bool {
	switch u {
	case UnitItem, UnitHour, UnitDay:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura persistida.
// Los campos opcionales son punteros: nil significa "no provisto" y se
// serializa como null (nunca como cadena vacía).
// Las fechas se guardan como texto YYYY-MM-DD, igual que las captura el cliente.
type Invoice struct {
	ID                  int64
	InvoiceNumber       string
	CompanyName         string
	CompanyTagline      *string
	CompanyLogo         *string // data-URL del logo; se almacena opaco
	FromName            string
	FromAddress         string
	FromEmail           string
	FromPhone           *string
	FromVAT             *string
	ToName              string
	ToAddress           string
	ToEmail             string
	ToPhone             *string
	ToVAT               *string
	InvoiceDate         string
	DueDate             string
	Currency            string
	PaymentTerms        string
	PaymentInstructions *string
	InvoiceNotes        *string
	Subtotal            decimal.Decimal
	VATTotal            decimal.Decimal
	GrandTotal          decimal.Decimal
	CreatedAt           time.Time
}

// InvoiceItem representa una línea de la factura. El orden de inserción es el
// orden de presentación. Total = round2(Quantity * Rate * (1 + VATPercent/100)).
type InvoiceItem struct {
	ID          int64
	InvoiceID   int64
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	VATPercent  decimal.Decimal
	UnitType    string
	Total       decimal.Decimal
}

// InvoiceWithItems agrega la cabecera con sus líneas (unidad de persistencia).
type InvoiceWithItems struct {
	Invoice
	Items []InvoiceItem
}

// OptionalText normaliza un campo de texto opcional: nil o cadena vacía se
// convierten en nil para que el consumidor distinga "no provisto" de "provisto en blanco".
func OptionalText(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// NormalizeOptionals aplica la política de null por defecto sobre los campos
// opcionales de la cabecera. Se invoca en el store antes de persistir.
func (i *Invoice) NormalizeOptionals() {
	i.CompanyTagline = OptionalText(i.CompanyTagline)
	i.CompanyLogo = OptionalText(i.CompanyLogo)
	i.FromPhone = OptionalText(i.FromPhone)
	i.FromVAT = OptionalText(i.FromVAT)
	i.ToPhone = OptionalText(i.ToPhone)
	i.ToVAT = OptionalText(i.ToVAT)
	i.PaymentInstructions = OptionalText(i.PaymentInstructions)
	i.InvoiceNotes = OptionalText(i.InvoiceNotes)
}
