package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador-api/internal/application/billing"
	"github.com/jhoicas/facturador-api/internal/application/dto"
)

// TemplateHandler maneja las peticiones HTTP de plantillas.
type TemplateHandler struct {
	uc *billing.TemplateUseCase
}

// NewTemplateHandler construye el handler.
func NewTemplateHandler(uc *billing.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{uc: uc}
}

// List lista las plantillas sin líneas, más recientes primero.
// GET /api/templates
func (h *TemplateHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err, "plantilla no encontrada")
	}
	return c.JSON(list)
}

// Create guarda una plantilla nueva con sus líneas.
// POST /api/templates
func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	tpl, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "plantilla no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// GetByID obtiene la plantilla completa con sus líneas.
// GET /api/templates/:id
func (h *TemplateHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "plantilla no encontrada")
	}
	tpl, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, "plantilla no encontrada")
	}
	return c.JSON(tpl)
}

// LoadDraft materializa un borrador de factura fresco desde la plantilla.
// GET /api/templates/:id/draft
func (h *TemplateHandler) LoadDraft(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "plantilla no encontrada")
	}
	draft, err := h.uc.LoadDraft(c.Context(), id)
	if err != nil {
		return respondError(c, err, "plantilla no encontrada")
	}
	return c.JSON(draft)
}

// SaveFromInvoice guarda una factura existente como plantilla.
// POST /api/invoices/:id/template
func (h *TemplateHandler) SaveFromInvoice(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "factura no encontrada")
	}
	var in dto.SaveAsTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return respondInvalidBody(c)
	}
	tpl, err := h.uc.SaveFromInvoice(c.Context(), id, in.Name)
	if err != nil {
		return respondError(c, err, "factura no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// Delete elimina plantilla y líneas.
// DELETE /api/templates/:id
func (h *TemplateHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return respondNotFound(c, "plantilla no encontrada")
	}
	deleted, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return respondError(c, err, "plantilla no encontrada")
	}
	if !deleted {
		return respondNotFound(c, "plantilla no encontrada")
	}
	return c.JSON(dto.DeleteResponse{Success: true})
}
