// Package api implements the Scholarmap REST API using chi.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// credential extracts the presented token from a request.
type credential func(r *http.Request) string

func headerToken(r *http.Request) string {
	if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return tok
	}
	return ""
}

func headerOrQueryToken(r *http.Request) string {
	if tok := headerToken(r); tok != "" {
		return tok
	}
	return r.URL.Query().Get("access_token")
}

// AuthMiddleware enforces a static Bearer token when enabled.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return requireToken(enabled, token, headerToken)
}

// StreamAuthMiddleware is AuthMiddleware for the event stream. Browsers cannot
// set headers on EventSource, so ?access_token= is accepted as well.
func StreamAuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return requireToken(enabled, token, headerOrQueryToken)
}

func requireToken(enabled bool, token string, extract credential) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := extract(r)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="scholarmap"`)
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
