package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/facturador-api/internal/domain"
	"github.com/jhoicas/facturador-api/internal/domain/entity"
	"github.com/jhoicas/facturador-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL. Cada
// escritura corre en su propia transacción: cabecera y líneas se persisten
// como unidad.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador con el pool.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceColumns = `id, invoice_number, company_name, company_tagline, company_logo,
       from_name, from_address, from_email, from_phone, from_vat,
       to_name, to_address, to_email, to_phone, to_vat,
       invoice_date, due_date, currency, payment_terms,
       payment_instructions, invoice_notes,
       subtotal, vat_total, grand_total, created_at`

// Create persiste cabecera + líneas en una transacción. La base asigna
// identidad y timestamp.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, items []entity.InvoiceItem) (*entity.InvoiceWithItems, error) {
	stored := *inv
	stored.NormalizeOptionals()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO invoices (invoice_number, company_name, company_tagline, company_logo,
		                      from_name, from_address, from_email, from_phone, from_vat,
		                      to_name, to_address, to_email, to_phone, to_vat,
		                      invoice_date, due_date, currency, payment_terms,
		                      payment_instructions, invoice_notes,
		                      subtotal, vat_total, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, query,
		stored.InvoiceNumber, stored.CompanyName, stored.CompanyTagline, stored.CompanyLogo,
		stored.FromName, stored.FromAddress, stored.FromEmail, stored.FromPhone, stored.FromVAT,
		stored.ToName, stored.ToAddress, stored.ToEmail, stored.ToPhone, stored.ToVAT,
		stored.InvoiceDate, stored.DueDate, stored.Currency, stored.PaymentTerms,
		stored.PaymentInstructions, stored.InvoiceNotes,
		stored.Subtotal, stored.VATTotal, stored.GrandTotal,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}

	storedItems, err := insertInvoiceItems(ctx, tx, stored.ID, items)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &entity.InvoiceWithItems{Invoice: stored, Items: storedItems}, nil
}

// GetByID obtiene la factura con sus líneas, o (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.InvoiceWithItems, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	items, err := selectInvoiceItems(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	return &entity.InvoiceWithItems{Invoice: *inv, Items: items}, nil
}

// List retorna solo cabeceras, más recientes primero. El id desempata
// creaciones con el mismo timestamp.
func (r *InvoiceRepo) List(ctx context.Context) ([]entity.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return out, nil
}

// Update lee la fila con lock, mezcla el patch, reescribe la cabecera y
// reemplaza la colección de líneas completa con identidades nuevas.
func (r *InvoiceRepo) Update(ctx context.Context, id int64, patch repository.InvoicePatch, items []entity.InvoiceItem) (*entity.InvoiceWithItems, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stored, err := scanInvoice(tx.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	patch.Apply(stored)
	stored.NormalizeOptionals()

	query := `
		UPDATE invoices
		SET invoice_number = $2, company_name = $3, company_tagline = $4, company_logo = $5,
		    from_name = $6, from_address = $7, from_email = $8, from_phone = $9, from_vat = $10,
		    to_name = $11, to_address = $12, to_email = $13, to_phone = $14, to_vat = $15,
		    invoice_date = $16, due_date = $17, currency = $18, payment_terms = $19,
		    payment_instructions = $20, invoice_notes = $21,
		    subtotal = $22, vat_total = $23, grand_total = $24
		WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		stored.ID,
		stored.InvoiceNumber, stored.CompanyName, stored.CompanyTagline, stored.CompanyLogo,
		stored.FromName, stored.FromAddress, stored.FromEmail, stored.FromPhone, stored.FromVAT,
		stored.ToName, stored.ToAddress, stored.ToEmail, stored.ToPhone, stored.ToVAT,
		stored.InvoiceDate, stored.DueDate, stored.Currency, stored.PaymentTerms,
		stored.PaymentInstructions, stored.InvoiceNotes,
		stored.Subtotal, stored.VATTotal, stored.GrandTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete invoice items: %w", err)
	}
	storedItems, err := insertInvoiceItems(ctx, tx, id, items)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &entity.InvoiceWithItems{Invoice: *stored, Items: storedItems}, nil
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func insertInvoiceItems(ctx context.Context, q Querier, invoiceID int64, items []entity.InvoiceItem) ([]entity.InvoiceItem, error) {
	stored := make([]entity.InvoiceItem, 0, len(items))
	for _, it := range items {
		it.InvoiceID = invoiceID
		err := q.QueryRow(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, rate, vat_percent, unit_type, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			it.InvoiceID, it.Description, it.Quantity, it.Rate, it.VATPercent, it.UnitType, it.Total,
		).Scan(&it.ID)
		if err != nil {
			return nil, fmt.Errorf("insert invoice item: %w", err)
		}
		stored = append(stored, it)
	}
	return stored, nil
}

func selectInvoiceItems(ctx context.Context, q Querier, invoiceID int64) ([]entity.InvoiceItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, invoice_id, description, quantity, rate, vat_percent, unit_type, total
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var out []entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity,
			&it.Rate, &it.VATPercent, &it.UnitType, &it.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	return out, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CompanyName, &inv.CompanyTagline, &inv.CompanyLogo,
		&inv.FromName, &inv.FromAddress, &inv.FromEmail, &inv.FromPhone, &inv.FromVAT,
		&inv.ToName, &inv.ToAddress, &inv.ToEmail, &inv.ToPhone, &inv.ToVAT,
		&inv.InvoiceDate, &inv.DueDate, &inv.Currency, &inv.PaymentTerms,
		&inv.PaymentInstructions, &inv.InvoiceNotes,
		&inv.Subtotal, &inv.VATTotal, &inv.GrandTotal, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
