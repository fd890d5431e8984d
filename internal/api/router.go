package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/scholarmap/internal/profileservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events, which also accepts the
// token as ?access_token=.
func NewRouter(svc *profileservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	if sseHandler != nil {
		r.With(StreamAuthMiddleware(authEnabled, token)).Get("/events", sseHandler.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		r.Get("/researchers", h.ListResearchers)
		r.Get("/researchers/{name}", h.GetResearcher)
		r.Get("/search", h.Search)

		r.Get("/taxonomy", h.Taxonomy)
		r.Get("/categories", h.Categories)
		r.Get("/interests", h.Interests)

		r.Get("/locations/stats", h.LocationStats)
		r.Get("/locations/countries", h.Countries)
		r.Get("/map", h.Map)
	})

	return r
}
