package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/domain/entity"
)

func TestNewDraftInvoice_ValoresIniciales(t *testing.T) {
	d := NewDraftInvoice()

	assert.Regexp(t, regexp.MustCompile(`^INV-\d{8}-\d{3}$`), d.InvoiceNumber)
	assert.Equal(t, entity.CurrencyUSD, d.Currency)
	assert.Equal(t, entity.TermsNet30, d.PaymentTerms)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "1", d.Items[0].Quantity)
	assert.Equal(t, "0.00", d.Items[0].Rate)
	assert.Equal(t, entity.UnitItem, d.Items[0].UnitType)
	assert.NotEmpty(t, d.Items[0].ID)

	invoiceDate, err := time.Parse(dateLayout, d.InvoiceDate)
	require.NoError(t, err)
	dueDate, err := time.Parse(dateLayout, d.DueDate)
	require.NoError(t, err)
	assert.Equal(t, float64(defaultDueDays*24), dueDate.Sub(invoiceDate).Hours())
}

func TestGenerateInvoiceNumber_IncluyeFechaDeHoy(t *testing.T) {
	n := GenerateInvoiceNumber()
	assert.Contains(t, n, time.Now().Format("20060102"))
}

func TestDraft_AddItem(t *testing.T) {
	d := NewDraftInvoice()
	d = d.UpdateItem(d.Items[0].ID, FieldDescription, "existente")

	d2 := d.AddItem()
	require.Len(t, d2.Items, 2)
	assert.Equal(t, "existente", d2.Items[0].Description, "las líneas previas no se tocan")
	assert.NotEqual(t, d2.Items[0].ID, d2.Items[1].ID)
}

func TestDraft_RemoveItem_NoOpConUnaSolaLinea(t *testing.T) {
	d := NewDraftInvoice()
	got := d.RemoveItem(d.Items[0].ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, d.Items[0].ID, got.Items[0].ID)
}

func TestDraft_RemoveItem(t *testing.T) {
	d := NewDraftInvoice().AddItem().AddItem()
	require.Len(t, d.Items, 3)

	victim := d.Items[1].ID
	got := d.RemoveItem(victim)
	require.Len(t, got.Items, 2)
	for _, it := range got.Items {
		assert.NotEqual(t, victim, it.ID)
	}
}

func TestDraft_UpdateItem_RecalculaTotal(t *testing.T) {
	d := NewDraftInvoice()
	id := d.Items[0].ID

	d = d.UpdateItem(id, FieldQuantity, "2")
	d = d.UpdateItem(id, FieldRate, "50")
	d = d.UpdateItem(id, FieldVATPercent, "10")

	assert.Equal(t, "110.00", d.Items[0].Total)
}

func TestDraft_UpdateItem_DescripcionNoAfectaTotal(t *testing.T) {
	d := NewDraftInvoice()
	id := d.Items[0].ID
	d = d.UpdateItem(id, FieldQuantity, "2")
	d = d.UpdateItem(id, FieldRate, "50")

	before := d.Items[0].Total
	d = d.UpdateItem(id, FieldDescription, "Consultoría")
	d = d.UpdateItem(id, FieldUnitType, entity.UnitHour)
	assert.Equal(t, before, d.Items[0].Total)
	assert.Equal(t, "Consultoría", d.Items[0].Description)
	assert.Equal(t, entity.UnitHour, d.Items[0].UnitType)
}

func TestDraft_UpdateItem_EntradaMalformadaCoaccionaACero(t *testing.T) {
	d := NewDraftInvoice()
	id := d.Items[0].ID
	d = d.UpdateItem(id, FieldRate, "50")
	d = d.UpdateItem(id, FieldQuantity, "abc")

	// la escritura cruda se conserva, el total se calcula con cero
	assert.Equal(t, "abc", d.Items[0].Quantity)
	assert.Equal(t, "0.00", d.Items[0].Total)
}

func TestDraft_UpdateItem_IDInexistenteEsNoOp(t *testing.T) {
	d := NewDraftInvoice()
	got := d.UpdateItem("no-existe", FieldRate, "99")
	assert.Equal(t, d.Items, got.Items)
}

func TestDraft_UpdateItem_NoMutaElReceptor(t *testing.T) {
	d := NewDraftInvoice()
	id := d.Items[0].ID
	_ = d.UpdateItem(id, FieldRate, "99")
	assert.Equal(t, "0.00", d.Items[0].Rate)
}

func TestDraft_Clear_GeneraNumeroNuevo(t *testing.T) {
	d := NewDraftInvoice()
	d = d.UpdateItem(d.Items[0].ID, FieldDescription, "algo")
	d.ToName = "Cliente"

	fresh := d.Clear()
	assert.Empty(t, fresh.ToName)
	require.Len(t, fresh.Items, 1)
	assert.Empty(t, fresh.Items[0].Description)
	assert.NotEqual(t, d.Items[0].ID, fresh.Items[0].ID)
}

func TestDraft_Totals(t *testing.T) {
	d := NewDraftInvoice()
	id := d.Items[0].ID
	d = d.UpdateItem(id, FieldQuantity, "2")
	d = d.UpdateItem(id, FieldRate, "50")
	d = d.UpdateItem(id, FieldVATPercent, "10")

	subtotal, vatTotal, grandTotal := d.Totals()
	assert.Equal(t, "100.00", subtotal.StringFixed(2))
	assert.Equal(t, "10.00", vatTotal.StringFixed(2))
	assert.Equal(t, "110.00", grandTotal.StringFixed(2))
}
