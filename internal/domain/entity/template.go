package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Template representa una plantilla reutilizable de factura: identidad del
// emisor, moneda, términos y líneas por defecto. No guarda receptor, fechas
// ni número de factura (se regeneran al materializar un borrador).
type Template struct {
	ID                  int64
	Name                string
	CompanyName         string
	CompanyTagline      *string
	CompanyLogo         *string
	FromName            string
	FromAddress         string
	FromEmail           string
	FromPhone           *string
	FromVAT             *string
	Currency            string
	PaymentTerms        string
	PaymentInstructions *string
	InvoiceNotes        *string
	CreatedAt           time.Time
}

// TemplateItem es una línea de plantilla: igual que InvoiceItem pero sin Total,
// porque la cantidad puede reingresarse en cada uso.
type TemplateItem struct {
	ID          int64
	TemplateID  int64
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	VATPercent  decimal.Decimal
	UnitType    string
}

// TemplateWithItems agrega la plantilla con sus líneas.
type TemplateWithItems struct {
	Template
	Items []TemplateItem
}

// NormalizeOptionals aplica la política de null por defecto sobre los campos
// opcionales de la plantilla.
func (t *Template) NormalizeOptionals() {
	t.CompanyTagline = OptionalText(t.CompanyTagline)
	t.CompanyLogo = OptionalText(t.CompanyLogo)
	t.FromPhone = OptionalText(t.FromPhone)
	t.FromVAT = OptionalText(t.FromVAT)
	t.PaymentInstructions = OptionalText(t.PaymentInstructions)
	t.InvoiceNotes = OptionalText(t.InvoiceNotes)
}
