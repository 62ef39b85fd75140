package web

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"translationgate/internal/domain"
	"translationgate/internal/domain/entities"
)

//go:embed templates/*.html
var templatesFS embed.FS

var settingsTemplate = template.Must(template.ParseFS(templatesFS, "templates/settings.html"))

const (
	optionsAction   = "/admin/options"
	settingsPath    = "/admin/settings"
	categoriesField = "excluded_categories[]"
	nonceField      = "_nonce"
	maxBodyBytes    = 64 << 10
)

type categoryRow struct {
	ID      string
	Checked bool
}

type noticeRow struct {
	Level   entities.NoticeLevel
	Message string
}

type settingsPageData struct {
	Locale        string
	Title         string
	Heading       string
	ExcludedLabel string
	Submit        string
	SavedMessage  string
	EmptyMessage  string
	Action        string
	Nonce         string
	Saved         bool
	Notices       []noticeRow
	Categories    []categoryRow
}

// renderSettings builds one checkbox per catalog entry, checked iff excluded.
func renderSettings(w io.Writer, data settingsPageData, current entities.ExclusionSet, catalog entities.CategoryCatalog) error {
	data.Categories = make([]categoryRow, 0, len(catalog))
	for _, id := range catalog {
		data.Categories = append(data.Categories, categoryRow{ID: id, Checked: current.Contains(id)})
	}
	return settingsTemplate.Execute(w, data)
}

// handleSettingsPage serves the settings form.
// GET /admin/settings
func (s *Server) handleSettingsPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := claimsFrom(ctx)
	locale := s.translator.Match(r.Header.Get("Accept-Language"))

	data := settingsPageData{
		Locale:        locale,
		Title:         s.translator.T(locale, "admin.title", nil),
		Heading:       s.translator.T(locale, "admin.heading", nil),
		ExcludedLabel: s.translator.T(locale, "admin.excluded_label", nil),
		Submit:        s.translator.T(locale, "admin.submit", nil),
		SavedMessage:  s.translator.T(locale, "admin.saved", nil),
		EmptyMessage:  s.translator.T(locale, "admin.no_categories", nil),
		Action:        optionsAction,
		Nonce:         s.tokens.IssueNonce(claims.Subject),
		Saved:         r.URL.Query().Get("settings-updated") == "true",
	}
	for _, n := range s.notices.Notices() {
		data.Notices = append(data.Notices, noticeRow{Level: n.Level, Message: s.translator.T(locale, n.Key, nil)})
	}

	status := http.StatusOK
	catalog, err := s.settings.Catalog(ctx)
	if err != nil {
		log.Error().Err(err).Msg("❌ Catalogue des catégories indisponible")
		status = http.StatusServiceUnavailable
		data.EmptyMessage = s.translator.T(locale, "admin.catalog_unavailable", nil)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderSettings(w, data, s.settings.Load(ctx), catalog); err != nil {
		log.Error().Err(err).Msg("Failed to execute settings template")
	}
}

// handleOptionsSubmit persists the submitted form and redirects back to the page.
// POST /admin/options
func (s *Server) handleOptionsSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := claimsFrom(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := s.tokens.VerifyNonce(r.PostForm.Get(nonceField), claims.Subject); err != nil {
		log.Warn().Err(err).Str("subject", claims.Subject).Msg("Nonce du formulaire refusé")
		s.writeError(w, r, http.StatusForbidden, err)
		return
	}

	// no checked box means no field at all: nil slice, saved as empty
	if _, err := s.settings.Save(ctx, r.PostForm[categoriesField]); err != nil {
		s.writeSaveError(w, r, err)
		return
	}
	log.Info().Str("subject", claims.Subject).Msg("Réglages mis à jour depuis le formulaire")
	http.Redirect(w, r, settingsPath+"?settings-updated=true", http.StatusSeeOther)
}

type exclusionsResponse struct {
	Excluded []string `json:"excluded"`
	Catalog  []string `json:"catalog,omitempty"`
}

type putExclusionsRequest struct {
	Categories any `json:"categories"`
}

// GET /admin/api/exclusions
func (s *Server) handleGetExclusions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalog, err := s.settings.Catalog(ctx)
	if err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, exclusionsResponse{
		Excluded: s.settings.Load(ctx).Strings(),
		Catalog:  []string(catalog),
	})
}

// PUT /admin/api/exclusions
// Any "categories" value that is not an array of strings saves an empty set.
func (s *Server) handlePutExclusions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req putExclusionsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	set, err := s.settings.Save(ctx, req.Categories)
	if err != nil {
		s.writeSaveError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exclusionsResponse{Excluded: set.Strings()})
}

func (s *Server) writeSaveError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		log.Error().Err(err).Msg("❌ Enregistrement impossible : catalogue indisponible")
		s.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	log.Error().Err(err).Msg("❌ Enregistrement des réglages impossible")
	s.writeError(w, r, http.StatusInternalServerError, err)
}
