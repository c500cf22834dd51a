package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/domain/repository"
	"github.com/jhoicas/facturador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturador-api/internal/infrastructure/storetest"
	"github.com/jhoicas/facturador-api/pkg/config"
)

// testPool abre un pool contra la base indicada en TEST_DATABASE_URL y deja
// las tablas vacías. Sin esa variable la prueba se omite.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definida; prueba de integración omitida")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.RunMigrations(ctx, pool))
	truncate(t, pool)
	return pool
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`TRUNCATE invoices, invoice_items, templates, template_items RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// El backend PostgreSQL debe pasar exactamente la misma suite de contrato
// que el backend en memoria.
func TestInvoiceRepositoryContract(t *testing.T) {
	pool := testPool(t)
	storetest.RunInvoiceRepositoryTests(t, func(t *testing.T) repository.InvoiceRepository {
		truncate(t, pool)
		return postgres.NewInvoiceRepository(pool)
	})
}

func TestTemplateRepositoryContract(t *testing.T) {
	pool := testPool(t)
	storetest.RunTemplateRepositoryTests(t, func(t *testing.T) repository.TemplateRepository {
		truncate(t, pool)
		return postgres.NewTemplateRepository(pool)
	})
}
