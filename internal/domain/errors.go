package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)

// ValidationError agrupa las causas de validación campo por campo, para que
// la capa HTTP pueda reportarlas con estructura. Envuelve ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye el error con un mapa vacío listo para Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add registra la causa de un campo. Conserva la primera causa por campo.
func (e *ValidationError) Add(field, cause string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = cause
	}
}

// HasErrors indica si se registró al menos una causa.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validación fallida: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
