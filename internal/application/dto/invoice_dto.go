package dto

// LineItemRequest línea de factura en peticiones de guardado. Los montos se
// transmiten como texto decimal; la entrada malformada se coacciona a cero en
// el motor de cálculo en lugar de rechazarse (el usuario puede estar
// escribiendo a medias). El total que envíe el cliente se ignora: el servidor
// siempre lo recalcula.
type LineItemRequest struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	VATPercent  string `json:"vatPercent"`
	UnitType    string `json:"unitType,omitempty"`
}

// SaveInvoiceRequest body para POST /api/invoices y PUT /api/invoices/:id.
// Forma plana igual a la del agregado; ver shared schema del cliente.
type SaveInvoiceRequest struct {
	InvoiceNumber       string            `json:"invoiceNumber"`
	CompanyName         string            `json:"companyName"`
	CompanyTagline      string            `json:"companyTagline,omitempty"`
	CompanyLogo         string            `json:"companyLogo,omitempty"`
	FromName            string            `json:"fromName"`
	FromAddress         string            `json:"fromAddress"`
	FromEmail           string            `json:"fromEmail"`
	FromPhone           string            `json:"fromPhone,omitempty"`
	FromVAT             string            `json:"fromVAT,omitempty"`
	ToName              string            `json:"toName"`
	ToAddress           string            `json:"toAddress"`
	ToEmail             string            `json:"toEmail"`
	ToPhone             string            `json:"toPhone,omitempty"`
	ToVAT               string            `json:"toVAT,omitempty"`
	InvoiceDate         string            `json:"invoiceDate"`
	DueDate             string            `json:"dueDate"`
	Currency            string            `json:"currency,omitempty"`
	PaymentTerms        string            `json:"paymentTerms,omitempty"`
	PaymentInstructions string            `json:"paymentInstructions,omitempty"`
	InvoiceNotes        string            `json:"invoiceNotes,omitempty"`
	Items               []LineItemRequest `json:"items"`
}

// InvoiceItemResponse línea persistida en respuestas. Montos como texto con
// 2 decimales fijos, nunca punto flotante.
type InvoiceItemResponse struct {
	ID          int64  `json:"id"`
	InvoiceID   int64  `json:"invoiceId"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	VATPercent  string `json:"vatPercent"`
	UnitType    string `json:"unitType"`
	Total       string `json:"total"`
}

// InvoiceResponse cabecera de factura en respuestas. Los opcionales ausentes
// se serializan como null.
type InvoiceResponse struct {
	ID                  int64   `json:"id"`
	InvoiceNumber       string  `json:"invoiceNumber"`
	CompanyName         string  `json:"companyName"`
	CompanyTagline      *string `json:"companyTagline"`
	CompanyLogo         *string `json:"companyLogo"`
	FromName            string  `json:"fromName"`
	FromAddress         string  `json:"fromAddress"`
	FromEmail           string  `json:"fromEmail"`
	FromPhone           *string `json:"fromPhone"`
	FromVAT             *string `json:"fromVAT"`
	ToName              string  `json:"toName"`
	ToAddress           string  `json:"toAddress"`
	ToEmail             string  `json:"toEmail"`
	ToPhone             *string `json:"toPhone"`
	ToVAT               *string `json:"toVAT"`
	InvoiceDate         string  `json:"invoiceDate"`
	DueDate             string  `json:"dueDate"`
	Currency            string  `json:"currency"`
	PaymentTerms        string  `json:"paymentTerms"`
	PaymentInstructions *string `json:"paymentInstructions"`
	InvoiceNotes        *string `json:"invoiceNotes"`
	Subtotal            string  `json:"subtotal"`
	VATTotal            string  `json:"vatTotal"`
	GrandTotal          string  `json:"grandTotal"`
	CreatedAt           string  `json:"createdAt"`
}

// InvoiceWithItemsResponse factura completa para GET /api/invoices/:id y las
// respuestas de guardado.
type InvoiceWithItemsResponse struct {
	InvoiceResponse
	Items []InvoiceItemResponse `json:"items"`
}

// DraftItemResponse línea de un borrador aún no persistido. El ID es un uuid
// del lado del editor, no una identidad del store.
type DraftItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	VATPercent  string `json:"vatPercent"`
	UnitType    string `json:"unitType"`
	Total       string `json:"total"`
}

// DraftResponse borrador de factura (por ejemplo al materializar una
// plantilla). Mismos nombres de campo que el agregado, sin identidad de store.
type DraftResponse struct {
	InvoiceNumber       string              `json:"invoiceNumber"`
	CompanyName         string              `json:"companyName"`
	CompanyTagline      string              `json:"companyTagline"`
	CompanyLogo         string              `json:"companyLogo"`
	FromName            string              `json:"fromName"`
	FromAddress         string              `json:"fromAddress"`
	FromEmail           string              `json:"fromEmail"`
	FromPhone           string              `json:"fromPhone"`
	FromVAT             string              `json:"fromVAT"`
	ToName              string              `json:"toName"`
	ToAddress           string              `json:"toAddress"`
	ToEmail             string              `json:"toEmail"`
	ToPhone             string              `json:"toPhone"`
	ToVAT               string              `json:"toVAT"`
	InvoiceDate         string              `json:"invoiceDate"`
	DueDate             string              `json:"dueDate"`
	Currency            string              `json:"currency"`
	PaymentTerms        string              `json:"paymentTerms"`
	PaymentInstructions string              `json:"paymentInstructions"`
	InvoiceNotes        string              `json:"invoiceNotes"`
	Items               []DraftItemResponse `json:"items"`
	Subtotal            string              `json:"subtotal"`
	VATTotal            string              `json:"vatTotal"`
	GrandTotal          string              `json:"grandTotal"`
}
