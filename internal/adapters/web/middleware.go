package web

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"translationgate/internal/domain"
	"translationgate/internal/infrastructure/auth"
)

const (
	adminCookie      = "gate_admin"
	hookSecretHeader = "X-Gate-Secret"
)

type contextKey string

const claimsKey contextKey = "admin_claims"

func claimsFrom(ctx context.Context) *auth.AdminClaims {
	claims, _ := ctx.Value(claimsKey).(*auth.AdminClaims)
	return claims
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info().
			Str("sys", "http").
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("")
	})
}

// requireCapability lets the request through only with a valid host-issued admin
// token carrying the configured capability. The cookie is accepted for browser
// pages only; those are protected against CSRF by the form nonce.
func (s *Server) requireCapability(allowCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" && allowCookie {
				if c, err := r.Cookie(adminCookie); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				s.writeError(w, r, http.StatusUnauthorized, domain.ErrMissingCapability)
				return
			}

			claims, err := s.tokens.VerifyAdminToken(raw)
			if err != nil {
				log.Debug().Err(err).Msg("Jeton admin refusé")
				s.writeError(w, r, http.StatusUnauthorized, domain.ErrMissingCapability)
				return
			}
			if !claims.Can(s.capability) {
				s.writeError(w, r, http.StatusForbidden, domain.ErrMissingCapability)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func (s *Server) requireHookSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.hookSecret != "" {
			got := r.Header.Get(hookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.hookSecret)) != 1 {
				s.writeError(w, r, http.StatusUnauthorized, errors.New("unauthorized"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
