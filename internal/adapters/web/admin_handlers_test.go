package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"translationgate/internal/domain/entities"
)

func TestSettingsPage_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing_capability", body.Error)
}

func TestSettingsPage_RequiresCapability(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken("edit_posts"))
	assert.Equal(t, http.StatusForbidden, env.do(req).Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, env.do(req).Code)
}

func TestSettingsPage_RendersCatalogWithCheckedExclusions(t *testing.T) {
	env := newTestEnv(t)
	env.exclude(t, "product")

	req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: env.adminToken()})
	rec := env.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, `value="post">`)
	assert.Contains(t, html, `value="page">`)
	assert.Contains(t, html, `value="product" checked="checked">`)
	assert.Contains(t, html, `name="_nonce"`)
	assert.Contains(t, html, "Excluded Categories")
	assert.NotContains(t, html, "notice-error")
}

func TestSettingsPage_LocalizedAndNotices(t *testing.T) {
	env := newTestEnv(t)
	env.translation.SetActive(false)
	env.dependency.Check(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/admin/settings?settings-updated=true", nil)
	req.Header.Set("Authorization", "Bearer "+env.adminToken())
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rec := env.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, "Catégories exclues")
	assert.Contains(t, html, "notice-error")
	assert.Contains(t, html, "Réglages enregistrés.")
}

func TestOptionsSubmit_SavesFilteredSet(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		nonceField:      {env.tokens.IssueNonce("admin")},
		categoriesField: {"post", "page", "bogus"},
	}
	req := formRequest("/admin/options", form)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: env.adminToken()})
	rec := env.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/settings?settings-updated=true", rec.Header().Get("Location"))
	assert.Equal(t, entities.ExclusionSet{"post", "page"}, env.settings.Load(context.Background()))
}

func TestOptionsSubmit_NoCheckboxClearsSet(t *testing.T) {
	env := newTestEnv(t)
	env.exclude(t, "post")

	req := formRequest("/admin/options", url.Values{nonceField: {env.tokens.IssueNonce("admin")}})
	req.Header.Set("Authorization", "Bearer "+env.adminToken())
	rec := env.do(req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, env.settings.Load(context.Background()))
}

func TestOptionsSubmit_RejectsBadNonce(t *testing.T) {
	env := newTestEnv(t)
	env.exclude(t, "post")

	for _, nonce := range []string{"", "forged", env.tokens.IssueNonce("someone-else")} {
		form := url.Values{nonceField: {nonce}, categoriesField: {"page"}}
		req := formRequest("/admin/options", form)
		req.Header.Set("Authorization", "Bearer "+env.adminToken())
		rec := env.do(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, entities.ExclusionSet{"post"}, env.settings.Load(context.Background()))
	}
}

func TestExclusionsAPI(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken()

	req := jsonRequest(http.MethodPut, "/admin/api/exclusions", `{"categories": ["product", "nope", 4]}`)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := env.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"excluded": ["product"]}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin/api/exclusions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = env.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"excluded": ["product"], "catalog": ["post", "page", "product"]}`, rec.Body.String())
}

func TestExclusionsAPI_MalformedCategoriesSaveEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.exclude(t, "post")

	for _, body := range []string{`{"categories": "post"}`, `{"categories": {"post": true}}`, `{}`} {
		req := jsonRequest(http.MethodPut, "/admin/api/exclusions", body)
		req.Header.Set("Authorization", "Bearer "+env.adminToken())
		rec := env.do(req)

		require.Equal(t, http.StatusOK, rec.Code, body)
		assert.JSONEq(t, `{"excluded": []}`, rec.Body.String())
	}
}

func TestExclusionsAPI_RejectsCookieAuth(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(http.MethodPut, "/admin/api/exclusions", `{"categories": ["post"]}`)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: env.adminToken()})
	assert.Equal(t, http.StatusUnauthorized, env.do(req).Code)
}

func TestExclusionsAPI_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(http.MethodPut, "/admin/api/exclusions", `{"categories": [`)
	req.Header.Set("Authorization", "Bearer "+env.adminToken())
	assert.Equal(t, http.StatusBadRequest, env.do(req).Code)
}
