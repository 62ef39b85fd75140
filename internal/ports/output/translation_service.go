package output

import (
	"context"

	"translationgate/internal/domain/entities"
)

// TranslationService reports whether the translation extension is active on the host.
type TranslationService interface {
	IsActive(ctx context.Context) (bool, error)
}

// AdminNotifier pushes admin notices outside of the settings page.
type AdminNotifier interface {
	Notify(ctx context.Context, notice entities.Notice) error
}
