package input

import (
	"context"

	"translationgate/internal/domain/entities"
)

type GatekeeperUseCase interface {
	IsEligibleForTranslation(ctx context.Context, entityID string, eligible bool) bool
	CheckPageTranslation(ctx context.Context, entityID string, lang entities.LanguageState) entities.PageDecision
}
