package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/application/billing"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/infrastructure/memory"
)

type stubPDFGenerator struct {
	out []byte
	err error
}

func (s *stubPDFGenerator) Generate(_ *entity.InvoiceWithItems) ([]byte, error) {
	return s.out, s.err
}

func TestPDFUseCase_Download(t *testing.T) {
	ctx := context.Background()
	invoices := memory.NewInvoiceRepository()
	invoiceUC := billing.NewInvoiceUseCase(invoices)

	created, err := invoiceUC.Create(ctx, validSaveInvoice())
	require.NoError(t, err)

	uc := billing.NewPDFUseCase(invoices, &stubPDFGenerator{out: []byte("%PDF-1.7")})
	pdf, filename, err := uc.Download(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), pdf)
	assert.Equal(t, "invoice_INV-20250101-001.pdf", filename)
}

func TestPDFUseCase_Download_FacturaAusente(t *testing.T) {
	ctx := context.Background()
	uc := billing.NewPDFUseCase(memory.NewInvoiceRepository(), &stubPDFGenerator{})

	_, _, err := uc.Download(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPDFUseCase_Download_ErrorDelGenerador(t *testing.T) {
	ctx := context.Background()
	invoices := memory.NewInvoiceRepository()
	invoiceUC := billing.NewInvoiceUseCase(invoices)

	created, err := invoiceUC.Create(ctx, validSaveInvoice())
	require.NoError(t, err)

	genErr := errors.New("fuente no disponible")
	uc := billing.NewPDFUseCase(invoices, &stubPDFGenerator{err: genErr})
	_, _, err = uc.Download(ctx, created.ID)
	assert.ErrorIs(t, err, genErr)
}
