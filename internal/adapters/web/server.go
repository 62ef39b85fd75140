package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"translationgate/internal/infrastructure/auth"
	"translationgate/internal/ports/input"
	"translationgate/internal/ports/output"
)

// Translator is output.T plus Accept-Language matching.
type Translator interface {
	output.T
	Match(acceptLanguage string) string
}

// Server is the HTTP adapter: admin settings page, admin JSON API and the
// translation service hooks.
type Server struct {
	settings   input.SettingsUseCase
	gatekeeper input.GatekeeperUseCase
	notices    input.NoticeUseCase
	tokens     *auth.TokenService
	translator Translator
	validate   *validator.Validate
	capability string
	hookSecret string
}

type Options struct {
	Capability string
	HookSecret string
}

func NewServer(
	settings input.SettingsUseCase,
	gatekeeper input.GatekeeperUseCase,
	notices input.NoticeUseCase,
	tokens *auth.TokenService,
	translator Translator,
	opts Options,
) *Server {
	return &Server{
		settings:   settings,
		gatekeeper: gatekeeper,
		notices:    notices,
		tokens:     tokens,
		translator: translator,
		validate:   newValidator(),
		capability: opts.Capability,
		hookSecret: opts.HookSecret,
	}
}

// Routes builds the router.
//
//	GET  /admin/settings           settings page
//	POST /admin/options            settings form target
//	GET  /admin/api/exclusions     current set + catalog
//	PUT  /admin/api/exclusions     replace the set
//	POST /hooks/eligible-url       eligibility filter
//	POST /hooks/before-process     pre-process filter
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireCapability(true))
			r.Get("/settings", s.handleSettingsPage)
			r.Post("/options", s.handleOptionsSubmit)
		})
		r.Group(func(r chi.Router) {
			r.Use(s.requireCapability(false))
			r.Get("/api/exclusions", s.handleGetExclusions)
			r.Put("/api/exclusions", s.handlePutExclusions)
		})
	})

	r.Route("/hooks", func(r chi.Router) {
		r.Use(s.requireHookSecret)
		r.Post("/eligible-url", s.handleEligibleURL)
		r.Post("/before-process", s.handleBeforeProcess)
	})

	return r
}
