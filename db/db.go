// Package db expone el esquema SQL embebido para que el backend PostgreSQL
// pueda aplicarlo al arrancar sin depender de archivos externos.
package db

import _ "embed"

// Schema es el DDL completo, idempotente (CREATE ... IF NOT EXISTS).
//
//go:embed schema.sql
var Schema string
