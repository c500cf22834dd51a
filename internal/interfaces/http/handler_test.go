package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/application/billing"
	"github.com/jhoicas/facturador-api/internal/application/dto"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	httpapi "github.com/jhoicas/facturador-api/internal/interfaces/http"
	"github.com/jhoicas/facturador-api/internal/infrastructure/memory"
)

type fakePDFGenerator struct{}

func (fakePDFGenerator) Generate(_ *entity.InvoiceWithItems) ([]byte, error) {
	return []byte("%PDF-1.7 fake"), nil
}

func newTestApp() *fiber.App {
	invoices := memory.NewInvoiceRepository()
	templates := memory.NewTemplateRepository()

	app := fiber.New()
	httpapi.Router(app, httpapi.RouterDeps{
		InvoiceUC:  billing.NewInvoiceUseCase(invoices),
		TemplateUC: billing.NewTemplateUseCase(templates, invoices),
		PDFUC:      billing.NewPDFUseCase(invoices, fakePDFGenerator{}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*nethttp.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func saveInvoiceBody() dto.SaveInvoiceRequest {
	return dto.SaveInvoiceRequest{
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
		Items: []dto.LineItemRequest{
			{Description: "Consultoría", Quantity: "2", Rate: "50", VATPercent: "10", UnitType: "hour"},
		},
	}
}

func TestInvoices_CreateYGet(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, "POST", "/api/invoices", saveInvoiceBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.InvoiceWithItemsResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "110.00", created.GrandTotal)
	require.Len(t, created.Items, 1)

	resp, raw = doJSON(t, app, "GET", "/api/invoices/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.InvoiceWithItemsResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created, got)

	// los opcionales ausentes se serializan como null, no como ""
	var asMap map[string]any
	require.NoError(t, json.Unmarshal(raw, &asMap))
	v, present := asMap["companyTagline"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestInvoices_CreateValidacion(t *testing.T) {
	app := newTestApp()

	body := saveInvoiceBody()
	body.InvoiceNumber = ""
	body.Currency = "JPY"
	resp, raw := doJSON(t, app, "POST", "/api/invoices", body)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "invoiceNumber")
	assert.Contains(t, out.Fields, "currency")
}

func TestInvoices_CuerpoInvalido(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/invoices", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInvoices_GetAusente(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, "GET", "/api/invoices/999", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "NOT_FOUND", out.Code)

	// id no numérico también es 404
	resp, _ = doJSON(t, app, "GET", "/api/invoices/abc", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvoices_Update(t *testing.T) {
	app := newTestApp()

	_, _ = doJSON(t, app, "POST", "/api/invoices", saveInvoiceBody())

	body := saveInvoiceBody()
	body.ToName = "Otro Cliente"
	body.Items = append(body.Items, dto.LineItemRequest{
		Description: "Hosting", Quantity: "1", Rate: "20", VATPercent: "0",
	})
	resp, raw := doJSON(t, app, "PUT", "/api/invoices/1", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated dto.InvoiceWithItemsResponse
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Otro Cliente", updated.ToName)
	assert.Equal(t, "130.00", updated.GrandTotal)
	require.Len(t, updated.Items, 2)

	resp, _ = doJSON(t, app, "PUT", "/api/invoices/999", saveInvoiceBody())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvoices_ListYDelete(t *testing.T) {
	app := newTestApp()

	_, _ = doJSON(t, app, "POST", "/api/invoices", saveInvoiceBody())
	second := saveInvoiceBody()
	second.InvoiceNumber = "INV-20250102-001"
	_, _ = doJSON(t, app, "POST", "/api/invoices", second)

	resp, raw := doJSON(t, app, "GET", "/api/invoices", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "INV-20250102-001", list[0].InvoiceNumber)

	resp, raw = doJSON(t, app, "DELETE", "/api/invoices/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var del dto.DeleteResponse
	require.NoError(t, json.Unmarshal(raw, &del))
	assert.True(t, del.Success)

	resp, _ = doJSON(t, app, "DELETE", "/api/invoices/1", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvoices_DownloadPDF(t *testing.T) {
	app := newTestApp()

	_, _ = doJSON(t, app, "POST", "/api/invoices", saveInvoiceBody())

	resp, raw := doJSON(t, app, "GET", "/api/invoices/1/pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="invoice_INV-20250101-001.pdf"`)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp, _ = doJSON(t, app, "GET", "/api/invoices/999/pdf", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func saveTemplateBody() dto.SaveTemplateRequest {
	return dto.SaveTemplateRequest{
		Name:        "Mensual",
		CompanyName: "Acme Corp",
		FromName:    "Acme Corp",
		FromAddress: "123 Main St",
		FromEmail:   "billing@acme.test",
		Items: []dto.TemplateItemRequest{
			{Description: "Retainer", Quantity: "1", Rate: "1500", VATPercent: "21"},
		},
	}
}

func TestTemplates_CRUD(t *testing.T) {
	app := newTestApp()

	resp, raw := doJSON(t, app, "POST", "/api/templates", saveTemplateBody())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.TemplateWithItemsResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, int64(1), created.ID)

	resp, raw = doJSON(t, app, "GET", "/api/templates", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.TemplateResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	resp, raw = doJSON(t, app, "GET", "/api/templates/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got dto.TemplateWithItemsResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Mensual", got.Name)

	resp, raw = doJSON(t, app, "DELETE", "/api/templates/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var del dto.DeleteResponse
	require.NoError(t, json.Unmarshal(raw, &del))
	assert.True(t, del.Success)

	resp, _ = doJSON(t, app, "GET", "/api/templates/1", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTemplates_LoadDraft(t *testing.T) {
	app := newTestApp()

	_, _ = doJSON(t, app, "POST", "/api/templates", saveTemplateBody())

	resp, raw := doJSON(t, app, "GET", "/api/templates/1/draft", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var draft dto.DraftResponse
	require.NoError(t, json.Unmarshal(raw, &draft))
	assert.Equal(t, "Acme Corp", draft.CompanyName)
	assert.Empty(t, draft.ToName)
	assert.NotEmpty(t, draft.InvoiceNumber)
	assert.Equal(t, "1815.00", draft.GrandTotal)
}

func TestTemplates_SaveFromInvoice(t *testing.T) {
	app := newTestApp()

	_, _ = doJSON(t, app, "POST", "/api/invoices", saveInvoiceBody())

	resp, raw := doJSON(t, app, "POST", "/api/invoices/1/template",
		dto.SaveAsTemplateRequest{Name: "Desde factura"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var tpl dto.TemplateWithItemsResponse
	require.NoError(t, json.Unmarshal(raw, &tpl))
	assert.Equal(t, "Desde factura", tpl.Name)
	require.Len(t, tpl.Items, 1)
	assert.Equal(t, "Consultoría", tpl.Items[0].Description)

	// sin nombre: 400 con causa por campo
	resp, raw = doJSON(t, app, "POST", "/api/invoices/1/template", dto.SaveAsTemplateRequest{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Contains(t, out.Fields, "name")

	resp, _ = doJSON(t, app, "POST", "/api/invoices/999/template",
		dto.SaveAsTemplateRequest{Name: "X"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
