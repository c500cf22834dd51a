package billing

import "github.com/jhoicas/facturador-api/internal/domain/entity"

// InvoicePDFGenerator renderiza el documento PDF de una factura persistida.
type InvoicePDFGenerator interface {
	Generate(inv *entity.InvoiceWithItems) ([]byte, error)
}
