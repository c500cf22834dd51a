// Package storetest contiene la suite de contrato compartida por los backends
// de persistencia. Cada backend la ejecuta contra su propia implementación
// para garantizar comportamiento idéntico.
package storetest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/domain/repository"
)

func ptr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SampleInvoice retorna una factura de prueba con dos líneas.
func SampleInvoice() (*entity.Invoice, []entity.InvoiceItem) {
	inv := &entity.Invoice{
		InvoiceNumber: "INV-20250101-001",
		CompanyName:   "Acme Corp",
		FromName:      "Acme Corp",
		FromAddress:   "123 Main St",
		FromEmail:     "billing@acme.test",
		ToName:        "Cliente S.A.",
		ToAddress:     "456 Oak Ave",
		ToEmail:       "pagos@cliente.test",
		InvoiceDate:   "2025-01-01",
		DueDate:       "2025-01-31",
		Currency:      entity.CurrencyUSD,
		PaymentTerms:  entity.TermsNet30,
		Subtotal:      dec("100.00"),
		VATTotal:      dec("10.00"),
		GrandTotal:    dec("110.00"),
	}
	items := []entity.InvoiceItem{
		{Description: "Consultoría", Quantity: dec("2"), Rate: dec("50"), VATPercent: dec("10"), UnitType: entity.UnitHour, Total: dec("110.00")},
		{Description: "Soporte", Quantity: dec("1"), Rate: dec("0"), VATPercent: dec("0"), UnitType: entity.UnitItem, Total: dec("0.00")},
	}
	return inv, items
}

// SampleTemplate retorna una plantilla de prueba con una línea.
func SampleTemplate() (*entity.Template, []entity.TemplateItem) {
	tpl := &entity.Template{
		Name:         "Mensual",
		CompanyName:  "Acme Corp",
		FromName:     "Acme Corp",
		FromAddress:  "123 Main St",
		FromEmail:    "billing@acme.test",
		Currency:     entity.CurrencyEUR,
		PaymentTerms: entity.TermsNet15,
	}
	items := []entity.TemplateItem{
		{Description: "Retainer", Quantity: dec("1"), Rate: dec("1500"), VATPercent: dec("21"), UnitType: entity.UnitItem},
	}
	return tpl, items
}

// RunInvoiceRepositoryTests ejecuta la suite de contrato contra un backend.
// El constructor debe retornar un repositorio vacío en cada invocación.
func RunInvoiceRepositoryTests(t *testing.T, newRepo func(t *testing.T) repository.InvoiceRepository) {
	ctx := context.Background()

	t.Run("CreateAsignaIdentidadYTimestamp", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		saved, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())
		require.Len(t, saved.Items, 2)
		assert.Equal(t, saved.ID, saved.Items[0].InvoiceID)
		assert.Greater(t, saved.Items[1].ID, saved.Items[0].ID)
		assert.True(t, saved.Items[0].Total.Equal(dec("110.00")))
	})

	t.Run("CreateNormalizaOpcionalesVacios", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		inv.CompanyTagline = ptr("")
		inv.FromPhone = ptr("555-0100")
		saved, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)
		assert.Nil(t, saved.CompanyTagline)
		require.NotNil(t, saved.FromPhone)
		assert.Equal(t, "555-0100", *saved.FromPhone)
	})

	t.Run("GetByIDAusenteRetornaNilNil", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetByIDRetornaLineasEnOrden", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		saved, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "Consultoría", got.Items[0].Description)
		assert.Equal(t, "Soporte", got.Items[1].Description)
	})

	t.Run("ListOrdenaMasRecientePrimero", func(t *testing.T) {
		repo := newRepo(t)
		first, items := SampleInvoice()
		_, err := repo.Create(ctx, first, items)
		require.NoError(t, err)
		second, items2 := SampleInvoice()
		second.InvoiceNumber = "INV-20250101-002"
		_, err = repo.Create(ctx, second, items2)
		require.NoError(t, err)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "INV-20250101-002", list[0].InvoiceNumber)
		assert.Equal(t, "INV-20250101-001", list[1].InvoiceNumber)
	})

	t.Run("UpdateMezclaEscalaresYReemplazaLineas", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		saved, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)
		oldItemIDs := []int64{saved.Items[0].ID, saved.Items[1].ID}

		newTotal := dec("220.00")
		patch := repository.InvoicePatch{
			ToName:     ptr("Otro Cliente"),
			GrandTotal: &newTotal,
		}
		newItems := []entity.InvoiceItem{
			{Description: "Desarrollo", Quantity: dec("4"), Rate: dec("50"), VATPercent: dec("10"), UnitType: entity.UnitHour, Total: dec("220.00")},
		}
		updated, err := repo.Update(ctx, saved.ID, patch, newItems)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, updated.ID)
		assert.Equal(t, saved.CreatedAt.Unix(), updated.CreatedAt.Unix())
		assert.Equal(t, "Otro Cliente", updated.ToName)
		assert.Equal(t, "Acme Corp", updated.CompanyName) // campo sin tocar
		assert.True(t, updated.GrandTotal.Equal(newTotal))
		require.Len(t, updated.Items, 1)
		assert.NotContains(t, oldItemIDs, updated.Items[0].ID)
	})

	t.Run("UpdateAusenteRetornaErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, 999, repository.InvoicePatch{}, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UpdateOpcionalVacioNormalizaANull", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		inv.InvoiceNotes = ptr("gracias por su compra")
		saved, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)
		require.NotNil(t, saved.InvoiceNotes)

		patch := repository.InvoicePatch{InvoiceNotes: ptr("")}
		updated, err := repo.Update(ctx, saved.ID, patch, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.InvoiceNotes)
	})

	t.Run("DeleteRetornaSiExistia", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		saved, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		got, err := repo.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		deleted, err = repo.Delete(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("IdentidadesNoSeReutilizan", func(t *testing.T) {
		repo := newRepo(t)
		inv, items := SampleInvoice()
		first, err := repo.Create(ctx, inv, items)
		require.NoError(t, err)
		_, err = repo.Delete(ctx, first.ID)
		require.NoError(t, err)

		inv2, items2 := SampleInvoice()
		second, err := repo.Create(ctx, inv2, items2)
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})
}

// RunTemplateRepositoryTests ejecuta la suite de contrato de plantillas.
func RunTemplateRepositoryTests(t *testing.T, newRepo func(t *testing.T) repository.TemplateRepository) {
	ctx := context.Background()

	t.Run("CreateAsignaIdentidad", func(t *testing.T) {
		repo := newRepo(t)
		tpl, items := SampleTemplate()
		saved, err := repo.Create(ctx, tpl, items)
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())
		require.Len(t, saved.Items, 1)
		assert.Equal(t, saved.ID, saved.Items[0].TemplateID)
	})

	t.Run("GetByIDAusenteRetornaNilNil", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.GetByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ListOrdenaMasRecientePrimero", func(t *testing.T) {
		repo := newRepo(t)
		first, items := SampleTemplate()
		_, err := repo.Create(ctx, first, items)
		require.NoError(t, err)
		second, items2 := SampleTemplate()
		second.Name = "Trimestral"
		_, err = repo.Create(ctx, second, items2)
		require.NoError(t, err)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Trimestral", list[0].Name)
		assert.Equal(t, "Mensual", list[1].Name)
	})

	t.Run("UpdateReemplazaLineas", func(t *testing.T) {
		repo := newRepo(t)
		tpl, items := SampleTemplate()
		saved, err := repo.Create(ctx, tpl, items)
		require.NoError(t, err)
		oldItemID := saved.Items[0].ID

		patch := repository.TemplatePatch{Name: ptr("Anual")}
		newItems := []entity.TemplateItem{
			{Description: "Licencia", Quantity: dec("12"), Rate: dec("99"), VATPercent: dec("21"), UnitType: entity.UnitItem},
		}
		updated, err := repo.Update(ctx, saved.ID, patch, newItems)
		require.NoError(t, err)
		assert.Equal(t, "Anual", updated.Name)
		assert.Equal(t, "Acme Corp", updated.CompanyName)
		require.Len(t, updated.Items, 1)
		assert.NotEqual(t, oldItemID, updated.Items[0].ID)
		assert.Equal(t, "Licencia", updated.Items[0].Description)
	})

	t.Run("UpdateAusenteRetornaErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, 42, repository.TemplatePatch{}, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteRetornaSiExistia", func(t *testing.T) {
		repo := newRepo(t)
		tpl, items := SampleTemplate()
		saved, err := repo.Create(ctx, tpl, items)
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
