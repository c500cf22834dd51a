package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/application/billing"
	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/infrastructure/memory"
)

func validSaveTemplate() dto.SaveTemplateRequest {
	return dto.SaveTemplateRequest{
		Name:         "Mensual",
		CompanyName:  "Acme Corp",
		FromName:     "Acme Corp",
		FromAddress:  "123 Main St",
		FromEmail:    "billing@acme.test",
		Currency:     "EUR",
		PaymentTerms: "net15",
		Items: []dto.TemplateItemRequest{
			{Description: "Retainer", Quantity: "1", Rate: "1500", VATPercent: "21"},
		},
	}
}

func newTemplateUseCase() (*billing.TemplateUseCase, *billing.InvoiceUseCase) {
	invoices := memory.NewInvoiceRepository()
	templates := memory.NewTemplateRepository()
	return billing.NewTemplateUseCase(templates, invoices), billing.NewInvoiceUseCase(invoices)
}

func TestTemplateUseCase_Create(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	got, err := uc.Create(ctx, validSaveTemplate())
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Mensual", got.Name)
	assert.Equal(t, "EUR", got.Currency)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "1500.00", got.Items[0].Rate)
	assert.Equal(t, "item", got.Items[0].UnitType, "default de tipo de unidad")
}

func TestTemplateUseCase_Create_Validacion(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	in := validSaveTemplate()
	in.Name = ""
	in.FromEmail = ""
	_, err := uc.Create(ctx, in)
	require.Error(t, err)

	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "name")
	assert.Contains(t, v.Fields, "fromEmail")
}

func TestTemplateUseCase_SaveFromInvoice(t *testing.T) {
	ctx := context.Background()
	uc, invoices := newTemplateUseCase()

	in := validSaveInvoice()
	in.CompanyTagline = "facturas sin dolor"
	created, err := invoices.Create(ctx, in)
	require.NoError(t, err)

	tpl, err := uc.SaveFromInvoice(ctx, created.ID, "Desde factura")
	require.NoError(t, err)
	assert.Equal(t, "Desde factura", tpl.Name)
	assert.Equal(t, created.CompanyName, tpl.CompanyName)
	require.NotNil(t, tpl.CompanyTagline)
	assert.Equal(t, "facturas sin dolor", *tpl.CompanyTagline)
	require.Len(t, tpl.Items, 1)
	assert.Equal(t, "Consultoría", tpl.Items[0].Description)
	assert.Equal(t, "hour", tpl.Items[0].UnitType)
}

func TestTemplateUseCase_SaveFromInvoice_SinNombre(t *testing.T) {
	ctx := context.Background()
	uc, invoices := newTemplateUseCase()

	created, err := invoices.Create(ctx, validSaveInvoice())
	require.NoError(t, err)

	_, err = uc.SaveFromInvoice(ctx, created.ID, "")
	require.Error(t, err)
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "name")
}

func TestTemplateUseCase_SaveFromInvoice_FacturaAusente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	_, err := uc.SaveFromInvoice(ctx, 999, "Desde factura")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateUseCase_LoadDraft(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	created, err := uc.Create(ctx, validSaveTemplate())
	require.NoError(t, err)

	draft, err := uc.LoadDraft(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", draft.CompanyName)
	assert.Equal(t, "EUR", draft.Currency)
	assert.Empty(t, draft.ToName)
	assert.NotEmpty(t, draft.InvoiceNumber)
	assert.NotEmpty(t, draft.InvoiceDate)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "1815.00", draft.Items[0].Total)
	assert.Equal(t, "1815.00", draft.GrandTotal)
}

func TestTemplateUseCase_LoadDraft_Ausente(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	_, err := uc.LoadDraft(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateUseCase_ListYGetByID(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	created, err := uc.Create(ctx, validSaveTemplate())
	require.NoError(t, err)
	second := validSaveTemplate()
	second.Name = "Trimestral"
	_, err = uc.Create(ctx, second)
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Trimestral", list[0].Name)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mensual", got.Name)

	_, err = uc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTemplateUseCase()

	created, err := uc.Create(ctx, validSaveTemplate())
	require.NoError(t, err)

	deleted, err := uc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = uc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
