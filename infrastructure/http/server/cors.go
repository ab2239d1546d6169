package server

import (
	"log/slog"
	"net/http"

	apperrors "vitamed/errors"
)

// CORSPolicy rejects browser requests from origins outside the allow-list
// before any body processing. Requests without an Origin header (curl,
// same-origin, server-to-server) pass through untouched.
type CORSPolicy struct {
	log     *slog.Logger
	allowed map[string]struct{}
}

func NewCORSPolicy(log *slog.Logger, origins []string) *CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	return &CORSPolicy{log: log, allowed: allowed}
}

func (p *CORSPolicy) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := p.allowed[origin]; !ok {
			p.log.Warn("Rejected cross-origin request", "origin", origin)
			writeError(w, apperrors.MapToHTTPStatus(apperrors.ErrOriginNotAllowed),
				apperrors.ErrOriginNotAllowed.Error())
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
