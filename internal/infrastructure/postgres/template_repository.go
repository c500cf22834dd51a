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

var _ repository.TemplateRepository = (*TemplateRepo)(nil)

// TemplateRepo implementación de TemplateRepository sobre PostgreSQL.
type TemplateRepo struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository construye el adaptador con el pool.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{pool: pool}
}

const templateColumns = `id, name, company_name, company_tagline, company_logo,
       from_name, from_address, from_email, from_phone, from_vat,
       currency, payment_terms, payment_instructions, invoice_notes, created_at`

func (r *TemplateRepo) Create(ctx context.Context, tpl *entity.Template, items []entity.TemplateItem) (*entity.TemplateWithItems, error) {
	stored := *tpl
	stored.NormalizeOptionals()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO templates (name, company_name, company_tagline, company_logo,
		                       from_name, from_address, from_email, from_phone, from_vat,
		                       currency, payment_terms, payment_instructions, invoice_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`
	err = tx.QueryRow(ctx, query,
		stored.Name, stored.CompanyName, stored.CompanyTagline, stored.CompanyLogo,
		stored.FromName, stored.FromAddress, stored.FromEmail, stored.FromPhone, stored.FromVAT,
		stored.Currency, stored.PaymentTerms, stored.PaymentInstructions, stored.InvoiceNotes,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}

	storedItems, err := insertTemplateItems(ctx, tx, stored.ID, items)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &entity.TemplateWithItems{Template: stored, Items: storedItems}, nil
}

func (r *TemplateRepo) GetByID(ctx context.Context, id int64) (*entity.TemplateWithItems, error) {
	tpl, err := scanTemplate(r.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	items, err := selectTemplateItems(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	return &entity.TemplateWithItems{Template: *tpl, Items: items}, nil
}

func (r *TemplateRepo) List(ctx context.Context) ([]entity.Template, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+templateColumns+` FROM templates ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Template, 0)
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

func (r *TemplateRepo) Update(ctx context.Context, id int64, patch repository.TemplatePatch, items []entity.TemplateItem) (*entity.TemplateWithItems, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stored, err := scanTemplate(tx.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get template for update: %w", err)
	}
	patch.Apply(stored)
	stored.NormalizeOptionals()

	query := `
		UPDATE templates
		SET name = $2, company_name = $3, company_tagline = $4, company_logo = $5,
		    from_name = $6, from_address = $7, from_email = $8, from_phone = $9, from_vat = $10,
		    currency = $11, payment_terms = $12, payment_instructions = $13, invoice_notes = $14
		WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		stored.ID,
		stored.Name, stored.CompanyName, stored.CompanyTagline, stored.CompanyLogo,
		stored.FromName, stored.FromAddress, stored.FromEmail, stored.FromPhone, stored.FromVAT,
		stored.Currency, stored.PaymentTerms, stored.PaymentInstructions, stored.InvoiceNotes,
	)
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM template_items WHERE template_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete template items: %w", err)
	}
	storedItems, err := insertTemplateItems(ctx, tx, id, items)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &entity.TemplateWithItems{Template: *stored, Items: storedItems}, nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func insertTemplateItems(ctx context.Context, q Querier, templateID int64, items []entity.TemplateItem) ([]entity.TemplateItem, error) {
	stored := make([]entity.TemplateItem, 0, len(items))
	for _, it := range items {
		it.TemplateID = templateID
		err := q.QueryRow(ctx, `
			INSERT INTO template_items (template_id, description, quantity, rate, vat_percent, unit_type)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			it.TemplateID, it.Description, it.Quantity, it.Rate, it.VATPercent, it.UnitType,
		).Scan(&it.ID)
		if err != nil {
			return nil, fmt.Errorf("insert template item: %w", err)
		}
		stored = append(stored, it)
	}
	return stored, nil
}

func selectTemplateItems(ctx context.Context, q Querier, templateID int64) ([]entity.TemplateItem, error) {
	rows, err := q.Query(ctx, `
		SELECT id, template_id, description, quantity, rate, vat_percent, unit_type
		FROM template_items WHERE template_id = $1 ORDER BY id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template items: %w", err)
	}
	defer rows.Close()

	var out []entity.TemplateItem
	for rows.Next() {
		var it entity.TemplateItem
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.Description, &it.Quantity,
			&it.Rate, &it.VATPercent, &it.UnitType); err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list template items: %w", err)
	}
	return out, nil
}

func scanTemplate(row pgx.Row) (*entity.Template, error) {
	var tpl entity.Template
	err := row.Scan(
		&tpl.ID, &tpl.Name, &tpl.CompanyName, &tpl.CompanyTagline, &tpl.CompanyLogo,
		&tpl.FromName, &tpl.FromAddress, &tpl.FromEmail, &tpl.FromPhone, &tpl.FromVAT,
		&tpl.Currency, &tpl.PaymentTerms, &tpl.PaymentInstructions, &tpl.InvoiceNotes,
		&tpl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}
