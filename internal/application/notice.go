package application

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"translationgate/internal/domain"
	"translationgate/internal/domain/entities"
	"translationgate/internal/ports/output"
)

// NoticeTranslationInactive is raised while the translation extension is not active.
const NoticeTranslationInactive = "notice.translation_inactive"

// DependencyService checks that the translation extension is active and keeps
// the resulting admin notices. It never blocks the hooks.
type DependencyService struct {
	translation output.TranslationService
	notifier    output.AdminNotifier
	now         func() time.Time

	mu      sync.Mutex
	notices []entities.Notice
}

// NewDependencyService accepts a nil notifier.
func NewDependencyService(translation output.TranslationService, notifier output.AdminNotifier) *DependencyService {
	return &DependencyService{
		translation: translation,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *DependencyService) Check(ctx context.Context) {
	active, err := s.translation.IsActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Impossible de vérifier l'état du service de traduction")
	}
	if active {
		s.clear(NoticeTranslationInactive)
		return
	}

	notice := entities.Notice{
		Key:      NoticeTranslationInactive,
		Level:    entities.NoticeError,
		RaisedAt: s.now(),
	}
	if !s.raise(notice) {
		return
	}
	log.Warn().Err(domain.ErrTranslationServiceInactive).Msg("⚠️ Le service de traduction n'est pas installé ou activé")
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, notice); err != nil {
		log.Error().Err(err).Msg("❌ Envoi de la notification admin impossible")
	}
}

// Notices returns the active notices, oldest first.
func (s *DependencyService) Notices() []entities.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notices)
}

// raise reports whether the notice was not already active.
func (s *DependencyService) raise(notice entities.Notice) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notices {
		if n.Key == notice.Key {
			return false
		}
	}
	s.notices = append(s.notices, notice)
	return true
}

func (s *DependencyService) clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = slices.DeleteFunc(s.notices, func(n entities.Notice) bool { return n.Key == key })
}

// RunScheduledChecks re-runs Check every interval until ctx is done.
func (s *DependencyService) RunScheduledChecks(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}
