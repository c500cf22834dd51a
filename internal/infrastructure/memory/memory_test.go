package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-api/internal/domain/repository"
	"github.com/jhoicas/facturador-api/internal/infrastructure/memory"
	"github.com/jhoicas/facturador-api/internal/infrastructure/storetest"
)

func TestInvoiceRepositoryContract(t *testing.T) {
	storetest.RunInvoiceRepositoryTests(t, func(t *testing.T) repository.InvoiceRepository {
		return memory.NewInvoiceRepository()
	})
}

func TestTemplateRepositoryContract(t *testing.T) {
	storetest.RunTemplateRepositoryTests(t, func(t *testing.T) repository.TemplateRepository {
		return memory.NewTemplateRepository()
	})
}

// Las copias retornadas no comparten memoria con el estado interno.
func TestInvoiceRepository_AislamientoDeCopias(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()

	inv, items := storetest.SampleInvoice()
	saved, err := repo.Create(ctx, inv, items)
	require.NoError(t, err)

	saved.CompanyName = "Mutado"
	saved.Items[0].Description = "Mutado"

	got, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.CompanyName)
	assert.Equal(t, "Consultoría", got.Items[0].Description)
}

func TestInvoiceRepository_CreacionConcurrente(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInvoiceRepository()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, items := storetest.SampleInvoice()
			saved, err := repo.Create(ctx, inv, items)
			assert.NoError(t, err)
			ids <- saved.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "ID duplicado: %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}
