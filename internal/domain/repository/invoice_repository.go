package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// InvoicePatch describe una actualización parcial de los campos escalares de
// la factura. Un puntero nil deja el campo existente intacto; en los campos
// opcionales, un valor presente pero vacío se normaliza a null.
type InvoicePatch struct {
	InvoiceNumber       *string
	CompanyName         *string
	CompanyTagline      *string
	CompanyLogo         *string
	FromName            *string
	FromAddress         *string
	FromEmail           *string
	FromPhone           *string
	FromVAT             *string
	ToName              *string
	ToAddress           *string
	ToEmail             *string
	ToPhone             *string
	ToVAT               *string
	InvoiceDate         *string
	DueDate             *string
	Currency            *string
	PaymentTerms        *string
	PaymentInstructions *string
	InvoiceNotes        *string
	Subtotal            *decimal.Decimal
	VATTotal            *decimal.Decimal
	GrandTotal          *decimal.Decimal
}

// Apply mezcla el patch sobre la entidad: los punteros nil dejan el campo
// intacto. Ambos backends usan esta rutina para que la semántica de merge
// sea idéntica.
func (p InvoicePatch) Apply(inv *entity.Invoice) {
	if p.InvoiceNumber != nil {
		inv.InvoiceNumber = *p.InvoiceNumber
	}
	if p.CompanyName != nil {
		inv.CompanyName = *p.CompanyName
	}
	if p.CompanyTagline != nil {
		inv.CompanyTagline = p.CompanyTagline
	}
	if p.CompanyLogo != nil {
		inv.CompanyLogo = p.CompanyLogo
	}
	if p.FromName != nil {
		inv.FromName = *p.FromName
	}
	if p.FromAddress != nil {
		inv.FromAddress = *p.FromAddress
	}
	if p.FromEmail != nil {
		inv.FromEmail = *p.FromEmail
	}
	if p.FromPhone != nil {
		inv.FromPhone = p.FromPhone
	}
	if p.FromVAT != nil {
		inv.FromVAT = p.FromVAT
	}
	if p.ToName != nil {
		inv.ToName = *p.ToName
	}
	if p.ToAddress != nil {
		inv.ToAddress = *p.ToAddress
	}
	if p.ToEmail != nil {
		inv.ToEmail = *p.ToEmail
	}
	if p.ToPhone != nil {
		inv.ToPhone = p.ToPhone
	}
	if p.ToVAT != nil {
		inv.ToVAT = p.ToVAT
	}
	if p.InvoiceDate != nil {
		inv.InvoiceDate = *p.InvoiceDate
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.Currency != nil {
		inv.Currency = *p.Currency
	}
	if p.PaymentTerms != nil {
		inv.PaymentTerms = *p.PaymentTerms
	}
	if p.PaymentInstructions != nil {
		inv.PaymentInstructions = p.PaymentInstructions
	}
	if p.InvoiceNotes != nil {
		inv.InvoiceNotes = p.InvoiceNotes
	}
	if p.Subtotal != nil {
		inv.Subtotal = *p.Subtotal
	}
	if p.VATTotal != nil {
		inv.VATTotal = *p.VATTotal
	}
	if p.GrandTotal != nil {
		inv.GrandTotal = *p.GrandTotal
	}
}

// InvoiceRepository define el puerto de persistencia para la factura y sus
// líneas como unidad atómica.
//
// Contrato compartido por los backends (memoria y PostgreSQL):
//   - Create asigna identidad (contador monotónico desde 1, nunca reutilizado)
//     y timestamp de creación, normaliza opcionales vacíos a null y persiste
//     cabecera + líneas como unidad. Cada línea recibe su propia identidad de
//     un contador independiente.
//   - GetByID retorna (nil, nil) si no existe: ausencia no es error.
//   - List retorna solo cabeceras, ordenadas por fecha de creación descendente.
//   - Update retorna domain.ErrNotFound si no existe; mezcla el patch sobre
//     los escalares y reemplaza la colección de líneas COMPLETA: las líneas
//     anteriores se eliminan (hard delete) y las nuevas se insertan con
//     identidades nuevas. Nunca hay diff incremental.
//   - Delete elimina cabecera y líneas atómicamente; retorna si existía.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice, items []entity.InvoiceItem) (*entity.InvoiceWithItems, error)
	GetByID(ctx context.Context, id int64) (*entity.InvoiceWithItems, error)
	List(ctx context.Context) ([]entity.Invoice, error)
	Update(ctx context.Context, id int64, patch InvoicePatch, items []entity.InvoiceItem) (*entity.InvoiceWithItems, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
