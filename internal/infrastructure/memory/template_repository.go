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

// TemplateRepository guarda plantillas en memoria. Seguro para uso concurrente.
type TemplateRepository struct {
	mu           sync.Mutex
	templates    map[int64]entity.Template
	items        map[int64][]entity.TemplateItem
	nextTemplate int64
	nextItem     int64
}

var _ repository.TemplateRepository = (*TemplateRepository)(nil)

// NewTemplateRepository construye un repositorio vacío.
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{
		templates:    make(map[int64]entity.Template),
		items:        make(map[int64][]entity.TemplateItem),
		nextTemplate: 1,
		nextItem:     1,
	}
}

func (r *TemplateRepository) Create(_ context.Context, tpl *entity.Template, items []entity.TemplateItem) (*entity.TemplateWithItems, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *tpl
	stored.ID = r.nextTemplate
	r.nextTemplate++
	stored.CreatedAt = time.Now()
	stored.NormalizeOptionals()
	r.templates[stored.ID] = stored
	r.items[stored.ID] = r.insertItems(stored.ID, items)

	return r.withItemsLocked(stored.ID), nil
}

func (r *TemplateRepository) GetByID(_ context.Context, id int64) (*entity.TemplateWithItems, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[id]; !ok {
		return nil, nil
	}
	return r.withItemsLocked(id), nil
}

func (r *TemplateRepository) List(_ context.Context) ([]entity.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entity.Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *TemplateRepository) Update(_ context.Context, id int64, patch repository.TemplatePatch, items []entity.TemplateItem) (*entity.TemplateWithItems, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&stored)
	stored.NormalizeOptionals()
	r.templates[id] = stored
	r.items[id] = r.insertItems(id, items)

	return r.withItemsLocked(id), nil
}

func (r *TemplateRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[id]; !ok {
		return false, nil
	}
	delete(r.templates, id)
	delete(r.items, id)
	return true, nil
}

func (r *TemplateRepository) insertItems(templateID int64, items []entity.TemplateItem) []entity.TemplateItem {
	stored := make([]entity.TemplateItem, 0, len(items))
	for _, it := range items {
		it.ID = r.nextItem
		r.nextItem++
		it.TemplateID = templateID
		stored = append(stored, it)
	}
	return stored
}

func (r *TemplateRepository) withItemsLocked(id int64) *entity.TemplateWithItems {
	out := &entity.TemplateWithItems{Template: r.templates[id]}
	out.Items = append(out.Items, r.items[id]...)
	return out
}
