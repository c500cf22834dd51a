// Package memory implementa los repositorios sobre mapas en memoria protegidos
// por mutex. Comparte contrato exacto con el backend PostgreSQL: identidades
// monotónicas desde 1, reemplazo completo de líneas en Update y listados por
// fecha de creación descendente.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/domain/repository"
)

// InvoiceRepository guarda facturas en memoria. Seguro para uso concurrente.
type InvoiceRepository struct {
	mu          sync.Mutex
	invoices    map[int64]entity.Invoice
	items       map[int64][]entity.InvoiceItem // por ID de factura, en orden de inserción
	nextInvoice int64
	nextItem    int64
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

// NewInvoiceRepository construye un repositorio vacío.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		invoices:    make(map[int64]entity.Invoice),
		items:       make(map[int64][]entity.InvoiceItem),
		nextInvoice: 1,
		nextItem:    1,
	}
}

// Create asigna identidades nuevas y persiste cabecera + líneas.
func (r *InvoiceRepository) Create(_ context.Context, inv *entity.Invoice, items []entity.InvoiceItem) (*entity.InvoiceWithItems, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *inv
	stored.ID = r.nextInvoice
	r.nextInvoice++
	stored.CreatedAt = time.Now()
	stored.NormalizeOptionals()
	r.invoices[stored.ID] = stored
	r.items[stored.ID] = r.insertItems(stored.ID, items)

	return r.withItemsLocked(stored.ID), nil
}

// GetByID retorna la factura con sus líneas, o (nil, nil) si no existe.
func (r *InvoiceRepository) GetByID(_ context.Context, id int64) (*entity.InvoiceWithItems, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[id]; !ok {
		return nil, nil
	}
	return r.withItemsLocked(id), nil
}

// List retorna las cabeceras ordenadas por creación descendente, con el ID
// como desempate para que el orden sea determinista.
func (r *InvoiceRepository) List(_ context.Context) ([]entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Update mezcla el patch sobre los escalares, reemplaza las líneas con
// identidades nuevas y conserva ID y CreatedAt originales.
func (r *InvoiceRepository) Update(_ context.Context, id int64, patch repository.InvoicePatch, items []entity.InvoiceItem) (*entity.InvoiceWithItems, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&stored)
	stored.NormalizeOptionals()
	r.invoices[id] = stored
	r.items[id] = r.insertItems(id, items)

	return r.withItemsLocked(id), nil
}

// Delete elimina cabecera y líneas. Retorna si la factura existía.
func (r *InvoiceRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[id]; !ok {
		return false, nil
	}
	delete(r.invoices, id)
	delete(r.items, id)
	return true, nil
}

// insertItems asigna identidades nuevas a cada línea. Requiere el mutex tomado.
func (r *InvoiceRepository) insertItems(invoiceID int64, items []entity.InvoiceItem) []entity.InvoiceItem {
	stored := make([]entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		it.ID = r.nextItem
		r.nextItem++
		it.InvoiceID = invoiceID
		stored = append(stored, it)
	}
	return stored
}

// withItemsLocked arma el agregado con copias para que el llamador no pueda
// mutar el estado interno. Requiere el mutex tomado.
func (r *InvoiceRepository) withItemsLocked(id int64) *entity.InvoiceWithItems {
	out := &entity.InvoiceWithItems{Invoice: r.invoices[id]}
	out.Items = append(out.Items, r.items[id]...)
	return out
}
