package web

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"translationgate/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Encodage de la réponse JSON impossible")
	}
}

// writeError renders err's domain code and its localized message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := domain.Code(err)
	key := "error.generic"
	if code != "" {
		key = "error." + code
	} else {
		code = http.StatusText(status)
	}
	locale := s.translator.Match(r.Header.Get("Accept-Language"))
	writeJSON(w, status, errorResponse{
		Error:   code,
		Message: s.translator.T(locale, key, nil),
	})
}
