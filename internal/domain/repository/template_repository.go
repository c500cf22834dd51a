package repository

import (
	"context"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

// TemplatePatch describe una actualización parcial de los escalares de la
// plantilla. Misma semántica que InvoicePatch.
type TemplatePatch struct {
	Name                *string
	CompanyName         *string
	CompanyTagline      *string
	CompanyLogo         *string
	FromName            *string
	FromAddress         *string
	FromEmail           *string
	FromPhone           *string
	FromVAT             *string
	Currency            *string
	PaymentTerms        *string
	PaymentInstructions *string
	InvoiceNotes        *string
}

// Apply mezcla el patch sobre la entidad. Misma semántica que
// InvoicePatch.Apply.
func (p TemplatePatch) Apply(tpl *entity.Template) {
	if p.Name != nil {
		tpl.Name = *p.Name
	}
	if p.CompanyName != nil {
		tpl.CompanyName = *p.CompanyName
	}
	if p.CompanyTagline != nil {
		tpl.CompanyTagline = p.CompanyTagline
	}
	if p.CompanyLogo != nil {
		tpl.CompanyLogo = p.CompanyLogo
	}
	if p.FromName != nil {
		tpl.FromName = *p.FromName
	}
	if p.FromAddress != nil {
		tpl.FromAddress = *p.FromAddress
	}
	if p.FromEmail != nil {
		tpl.FromEmail = *p.FromEmail
	}
	if p.FromPhone != nil {
		tpl.FromPhone = p.FromPhone
	}
	if p.FromVAT != nil {
		tpl.FromVAT = p.FromVAT
	}
	if p.Currency != nil {
		tpl.Currency = *p.Currency
	}
	if p.PaymentTerms != nil {
		tpl.PaymentTerms = *p.PaymentTerms
	}
	if p.PaymentInstructions != nil {
		tpl.PaymentInstructions = p.PaymentInstructions
	}
	if p.InvoiceNotes != nil {
		tpl.InvoiceNotes = p.InvoiceNotes
	}
}

// TemplateRepository define el puerto de persistencia para plantillas.
// Mismo contrato que InvoiceRepository: contadores monotónicos propios,
// GetByID retorna (nil, nil) si no existe, List ordena por creación
// descendente, Update reemplaza la colección de líneas completa y Delete
// retorna si la plantilla existía.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *entity.Template, items []entity.TemplateItem) (*entity.TemplateWithItems, error)
	GetByID(ctx context.Context, id int64) (*entity.TemplateWithItems, error)
	List(ctx context.Context) ([]entity.Template, error)
	Update(ctx context.Context, id int64, patch TemplatePatch, items []entity.TemplateItem) (*entity.TemplateWithItems, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
