package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"translationgate/internal/domain"
	"translationgate/internal/domain/entities"
	"translationgate/internal/ports/output"
)

var errInvalidOption = errors.New("ni tableau ni objet JSON")

// SettingsService owns the persisted ExclusionSet.
type SettingsService struct {
	store      output.OptionStore
	registry   output.CategoryRegistry
	key        string
	legacyKeys []string
}

func NewSettingsService(
	store output.OptionStore,
	registry output.CategoryRegistry,
	key string,
	legacyKeys []string,
) *SettingsService {
	return &SettingsService{
		store:      store,
		registry:   registry,
		key:        key,
		legacyKeys: legacyKeys,
	}
}

// Load returns the stored set, or an empty set when nothing usable is stored.
// Legacy keys are read, in order, only when the primary key is absent.
func (s *SettingsService) Load(ctx context.Context) entities.ExclusionSet {
	for _, key := range append([]string{s.key}, s.legacyKeys...) {
		raw, ok, err := s.store.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Lecture de l'option impossible")
			return entities.ExclusionSet{}
		}
		if !ok {
			continue
		}
		set, err := decodeExclusionSet(raw)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Option illisible, liste vide utilisée")
			return entities.ExclusionSet{}
		}
		return set
	}
	log.Debug().Err(domain.ErrOptionNotFound).Str("key", s.key).Msg("Aucune liste enregistrée")
	return entities.ExclusionSet{}
}

// Save filters candidate against the live catalog and overwrites the stored set.
// A candidate that is not a sequence of strings is treated as empty.
func (s *SettingsService) Save(ctx context.Context, candidate any) (entities.ExclusionSet, error) {
	catalog, err := s.registry.ListRegisteredCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	set := SanitizeCandidate(candidate, catalog)

	raw, err := json.Marshal(set.Strings())
	if err != nil {
		return nil, fmt.Errorf("encode exclusions: %w", err)
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		return nil, fmt.Errorf("store exclusions: %w", err)
	}
	log.Info().Strs("excluded", set.Strings()).Msg("Catégories exclues enregistrées")
	return set, nil
}

func (s *SettingsService) Catalog(ctx context.Context) (entities.CategoryCatalog, error) {
	catalog, err := s.registry.ListRegisteredCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	return catalog, nil
}

// SanitizeCandidate keeps the catalog members of candidate, in candidate order.
func SanitizeCandidate(candidate any, catalog entities.CategoryCatalog) entities.ExclusionSet {
	var ids []string
	switch v := candidate.(type) {
	case []string:
		ids = v
	case []any:
		for _, item := range v {
			if id, ok := item.(string); ok {
				ids = append(ids, id)
			}
		}
	default:
		return entities.ExclusionSet{}
	}

	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if catalog.Has(id) {
			kept = append(kept, id)
		}
	}
	return entities.NewExclusionSet(kept...)
}

// decodeExclusionSet accepts a JSON array, or an object whose values are the
// ids (legacy values keep their array keys). Non-string members are dropped;
// document order is kept.
func decodeExclusionSet(raw []byte) (entities.ExclusionSet, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("decode exclusions: %w", errInvalidOption)
	}
	value := gjson.ParseBytes(raw)
	if !value.IsArray() && !value.IsObject() {
		return nil, fmt.Errorf("decode exclusions: %w", errInvalidOption)
	}

	var ids []string
	value.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			ids = append(ids, item.String())
		}
		return true
	})
	return entities.NewExclusionSet(ids...), nil
}
