package web

import (
	"encoding/json"
	"net/http"

	"translationgate/internal/domain"
	"translationgate/internal/domain/entities"
)

type eligibleURLRequest struct {
	EntityID   entityID `json:"entity_id"`
	IsEligible *bool    `json:"is_eligible" validate:"required"`
}

type eligibleURLResponse struct {
	IsEligible bool `json:"is_eligible"`
}

type beforeProcessRequest struct {
	EntityID         entityID `json:"entity_id"`
	CurrentLanguage  string   `json:"current_language"  validate:"required,max=35"`
	OriginalLanguage string   `json:"original_language" validate:"required,max=35"`
	FullURL          string   `json:"full_url"          validate:"required,url"`
}

type beforeProcessResponse struct {
	Action   entities.PageAction `json:"action"`
	Location string              `json:"location,omitempty"`
}

type hookErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// handleEligibleURL is the URL-eligibility filter.
// POST /hooks/eligible-url
func (s *Server) handleEligibleURL(w http.ResponseWriter, r *http.Request) {
	var req eligibleURLRequest
	if !s.decodeHook(w, r, &req) {
		return
	}
	eligible := s.gatekeeper.IsEligibleForTranslation(r.Context(), req.EntityID.String(), *req.IsEligible)
	writeJSON(w, http.StatusOK, eligibleURLResponse{IsEligible: eligible})
}

// handleBeforeProcess is the pre-process filter. With ?follow=true a redirect
// decision is answered with a 302 instead of JSON.
// POST /hooks/before-process
func (s *Server) handleBeforeProcess(w http.ResponseWriter, r *http.Request) {
	var req beforeProcessRequest
	if !s.decodeHook(w, r, &req) {
		return
	}
	decision := s.gatekeeper.CheckPageTranslation(r.Context(), req.EntityID.String(), entities.LanguageState{
		Current:  req.CurrentLanguage,
		Original: req.OriginalLanguage,
		FullURL:  req.FullURL,
	})

	if decision.IsRedirect() && r.URL.Query().Get("follow") == "true" {
		http.Redirect(w, r, decision.Location, http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, beforeProcessResponse{Action: decision.Action, Location: decision.Location})
}

func (s *Server) decodeHook(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, hookErrorResponse{Error: domain.Code(domain.ErrInvalidHookPayload)})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, hookErrorResponse{
			Error:  domain.Code(domain.ErrInvalidHookPayload),
			Fields: fieldErrors(err),
		})
		return false
	}
	return true
}
