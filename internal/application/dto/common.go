package dto

// ErrorResponse cuerpo de error HTTP. Fields lleva las causas por campo en
// errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DeleteResponse resultado de una eliminación.
type DeleteResponse struct {
	Success bool `json:"success"`
}
