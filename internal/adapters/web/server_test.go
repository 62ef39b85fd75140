package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"translationgate/internal/application"
	"translationgate/internal/infrastructure/auth"
	"translationgate/internal/infrastructure/i18n"
	"translationgate/internal/infrastructure/memory"
)

const (
	testKey    = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	optionKey  = "excluded_categories"
	hookSecret = "s3cret"
)

type testEnv struct {
	handler     http.Handler
	tokens      *auth.TokenService
	settings    *application.SettingsService
	translation *memory.TranslationService
	dependency  *application.DependencyService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	registry := memory.NewRegistry(
		[]string{"post", "page", "product"},
		map[string]string{"10": "post", "20": "page", "30": "product"},
	)
	settings := application.NewSettingsService(memory.NewOptionStore(), registry, optionKey, nil)
	gatekeeper := application.NewGatekeeperService(settings, registry)
	translation := memory.NewTranslationService(true)
	dependency := application.NewDependencyService(translation, nil)

	tokens, err := auth.NewTokenService(testKey)
	require.NoError(t, err)

	srv := NewServer(settings, gatekeeper, dependency, tokens, i18n.NewTranslator("en"), Options{
		Capability: "manage_options",
		HookSecret: hookSecret,
	})
	return &testEnv{
		handler:     srv.Routes(),
		tokens:      tokens,
		settings:    settings,
		translation: translation,
		dependency:  dependency,
	}
}

func (e *testEnv) adminToken(capabilities ...string) string {
	if len(capabilities) == 0 {
		capabilities = []string{"manage_options"}
	}
	return e.tokens.IssueAdminToken("admin", capabilities, time.Hour)
}

func (e *testEnv) exclude(t *testing.T, ids ...string) {
	t.Helper()
	_, err := e.settings.Save(context.Background(), ids)
	require.NoError(t, err)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func formRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
