package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-api/internal/application/billing"
	"github.com/jhoicas/facturador-api/internal/application/dto"
)

// InvoiceHandler maneja las peticiones HTTP de facturas.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// List lista las facturas, más recientes primero.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.JSON(list)
}

// Create guarda una factura nueva con sus líneas.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	invoice, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// GetByID obtiene la factura completa con sus líneas.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "factura no encontrada")
	}
	invoice, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.JSON(invoice)
}

// Update reemplaza la factura: el cliente envía el objeto completo y la
// colección de líneas se reescribe entera.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "factura no encontrada")
	}
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	invoice, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.JSON(invoice)
}

// Delete elimina factura y líneas.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "factura no encontrada")
	}
	deleted, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	if !deleted {
		return respondNotFound(c, "factura no encontrada")
	}
	return c.JSON(dto.DeleteResponse{Success: true})
}

// DownloadPDF genera y descarga el PDF de la factura.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "factura no encontrada")
	}
	pdfBytes, filename, err := h.pdf.Download(c.Context(), id)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
