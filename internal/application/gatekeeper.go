package application

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"translationgate/internal/domain"
	"translationgate/internal/domain/entities"
	"translationgate/internal/ports/output"
)

// IsEligibleForTranslation narrows eligibility: an excluded category is never
// eligible, anything else keeps the incoming value.
func IsEligibleForTranslation(excluded entities.ExclusionSet, category string, eligible bool) bool {
	if excluded.Contains(category) {
		return false
	}
	return eligible
}

// CheckPageTranslation redirects translated views of excluded categories back to
// the original-language URL.
func CheckPageTranslation(excluded entities.ExclusionSet, category string, lang entities.LanguageState) entities.PageDecision {
	if excluded.Contains(category) && !sameLanguage(lang.Current, lang.Original) {
		return entities.RedirectTo(lang.FullURL)
	}
	return entities.Continue()
}

func sameLanguage(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA == nil && errB == nil {
		return ta == tb
	}
	return a == b
}

// GatekeeperService feeds the decision functions from the option store and the
// host registry. Lookup failures degrade to pass-through.
type GatekeeperService struct {
	settings *SettingsService
	registry output.CategoryRegistry
}

func NewGatekeeperService(settings *SettingsService, registry output.CategoryRegistry) *GatekeeperService {
	return &GatekeeperService{
		settings: settings,
		registry: registry,
	}
}

func (s *GatekeeperService) IsEligibleForTranslation(ctx context.Context, entityID string, eligible bool) bool {
	category := s.resolve(ctx, entityID)
	if category == "" {
		return eligible
	}
	return IsEligibleForTranslation(s.settings.Load(ctx), category, eligible)
}

func (s *GatekeeperService) CheckPageTranslation(ctx context.Context, entityID string, lang entities.LanguageState) entities.PageDecision {
	category := s.resolve(ctx, entityID)
	if category == "" {
		return entities.Continue()
	}
	decision := CheckPageTranslation(s.settings.Load(ctx), category, lang)
	if decision.IsRedirect() {
		log.Debug().
			Str("entity", entityID).
			Str("category", category).
			Str("location", decision.Location).
			Msg("Page exclue de la traduction, redirection vers la langue d'origine")
	}
	return decision
}

// resolve returns "" when the entity has no resolvable category.
func (s *GatekeeperService) resolve(ctx context.Context, entityID string) string {
	if strings.TrimSpace(entityID) == "" {
		return ""
	}
	category, ok, err := s.registry.ResolveCategoryOf(ctx, entityID)
	if err != nil {
		log.Warn().Err(err).Str("entity", entityID).Msg("Résolution de la catégorie impossible")
		return ""
	}
	if !ok {
		log.Debug().Err(domain.ErrCategoryNotFound).Str("entity", entityID).Msg("")
		return ""
	}
	return category
}
