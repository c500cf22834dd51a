package dto

// TemplateItemRequest línea de plantilla en peticiones (sin total: la
// cantidad puede reingresarse en cada uso).
type TemplateItemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	VATPercent  string `json:"vatPercent"`
	UnitType    string `json:"unitType,omitempty"`
}

// SaveTemplateRequest body para POST /api/templates.
type SaveTemplateRequest struct {
	Name                string                `json:"name"`
	CompanyName         string                `json:"companyName"`
	CompanyTagline      string                `json:"companyTagline,omitempty"`
	CompanyLogo         string                `json:"companyLogo,omitempty"`
	FromName            string                `json:"fromName"`
	FromAddress         string                `json:"fromAddress"`
	FromEmail           string                `json:"fromEmail"`
	FromPhone           string                `json:"fromPhone,omitempty"`
	FromVAT             string                `json:"fromVAT,omitempty"`
	Currency            string                `json:"currency,omitempty"`
	PaymentTerms        string                `json:"paymentTerms,omitempty"`
	PaymentInstructions string                `json:"paymentInstructions,omitempty"`
	InvoiceNotes        string                `json:"invoiceNotes,omitempty"`
	Items               []TemplateItemRequest `json:"items"`
}

// SaveAsTemplateRequest body para POST /api/invoices/:id/template: guarda una
// factura existente como plantilla con el nombre dado.
type SaveAsTemplateRequest struct {
	Name string `json:"name"`
}

// TemplateItemResponse línea de plantilla persistida.
type TemplateItemResponse struct {
	ID          int64  `json:"id"`
	TemplateID  int64  `json:"templateId"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	VATPercent  string `json:"vatPercent"`
	UnitType    string `json:"unitType"`
}

// TemplateResponse plantilla en respuestas (listados van sin líneas).
type TemplateResponse struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	CompanyName         string  `json:"companyName"`
	CompanyTagline      *string `json:"companyTagline"`
	CompanyLogo         *string `json:"companyLogo"`
	FromName            string  `json:"fromName"`
	FromAddress         string  `json:"fromAddress"`
	FromEmail           string  `json:"fromEmail"`
	FromPhone           *string `json:"fromPhone"`
	FromVAT             *string `json:"fromVAT"`
	Currency            string  `json:"currency"`
	PaymentTerms        string  `json:"paymentTerms"`
	PaymentInstructions *string `json:"paymentInstructions"`
	InvoiceNotes        *string `json:"invoiceNotes"`
	CreatedAt           string  `json:"createdAt"`
}

// TemplateWithItemsResponse plantilla completa para GET /api/templates/:id.
type TemplateWithItemsResponse struct {
	TemplateResponse
	Items []TemplateItemResponse `json:"items"`
}
