package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/repository"
)

// PDFUseCase genera la descarga PDF de una factura persistida.
type PDFUseCase struct {
	repo      repository.InvoiceRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(repo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, generator: generator}
}

// Download genera el PDF de la factura y retorna el contenido junto con el
// nombre de archivo sugerido.
func (uc *PDFUseCase) Download(ctx context.Context, id int64) ([]byte, string, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.generator.Generate(inv)
	if err != nil {
		return nil, "", fmt.Errorf("generate pdf: %w", err)
	}
	filename := fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNumber)
	return pdf, filename, nil
}
