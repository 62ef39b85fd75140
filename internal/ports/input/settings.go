package input

import (
	"context"

	"translationgate/internal/domain/entities"
)

type SettingsUseCase interface {
	Load(ctx context.Context) entities.ExclusionSet
	Save(ctx context.Context, candidate any) (entities.ExclusionSet, error)
	Catalog(ctx context.Context) (entities.CategoryCatalog, error)
}
