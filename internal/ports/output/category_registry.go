package output

import (
	"context"

	"translationgate/internal/domain/entities"
)

// CategoryRegistry is the host's registry of content categories.
type CategoryRegistry interface {
	ListRegisteredCategories(ctx context.Context) (entities.CategoryCatalog, error)
	// ResolveCategoryOf returns ok=false when the entity is unknown or has no category.
	ResolveCategoryOf(ctx context.Context, entityID string) (category string, ok bool, err error)
}
