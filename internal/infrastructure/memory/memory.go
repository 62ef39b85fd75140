// Package memory holds in-process adapters for the output ports. They back the
// "memory" DATABASE_URL and the static catalog used when no host API is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"translationgate/internal/domain/entities"
	"translationgate/internal/ports/output"
)

var (
	_ output.OptionStore        = (*OptionStore)(nil)
	_ output.CategoryRegistry   = (*Registry)(nil)
	_ output.TranslationService = (*TranslationService)(nil)
)

type OptionStore struct {
	mu      sync.RWMutex
	options map[string][]byte
}

func NewOptionStore() *OptionStore {
	return &OptionStore{options: make(map[string][]byte)}
}

func (s *OptionStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.options[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

func (s *OptionStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[key] = slices.Clone(value)
	return nil
}

// Registry is a fixed catalog plus an entity→category map.
type Registry struct {
	mu       sync.RWMutex
	catalog  entities.CategoryCatalog
	entities map[string]string
}

func NewRegistry(catalog []string, entityCategories map[string]string) *Registry {
	m := make(map[string]string, len(entityCategories))
	for k, v := range entityCategories {
		m[k] = v
	}
	return &Registry{
		catalog:  slices.Clone(entities.CategoryCatalog(catalog)),
		entities: m,
	}
}

func (r *Registry) ListRegisteredCategories(context.Context) (entities.CategoryCatalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.catalog), nil
}

func (r *Registry) ResolveCategoryOf(_ context.Context, entityID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.entities[entityID]
	return category, ok && category != "", nil
}

// SetCatalog replaces the catalog, e.g. after a category was unregistered.
func (r *Registry) SetCatalog(catalog []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalog = slices.Clone(entities.CategoryCatalog(catalog))
}

// TranslationService reports a fixed activation state.
type TranslationService struct {
	mu     sync.Mutex
	active bool
}

func NewTranslationService(active bool) *TranslationService {
	return &TranslationService{active: active}
}

func (t *TranslationService) IsActive(context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, nil
}

func (t *TranslationService) SetActive(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = active
}
