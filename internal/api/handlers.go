package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/starford/scholarmap/internal/profileservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *profileservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *profileservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListResearchers handles GET /api/researchers.
//
//	@Summary		Filter, sort and page researchers
//	@Tags			researchers
//	@Produce		json
//	@Param			q			query		string		false	"Name substring"
//	@Param			track		query		string		false	"Track"
//	@Param			subtrack	query		string		false	"Subtrack (requires track)"
//	@Param			area		query		string		false	"Area"
//	@Param			category	query		string		false	"Category"
//	@Param			areas		query		[]string	false	"Selected areas"
//	@Param			interests	query		[]string	false	"Selected raw interests"
//	@Param			std			query		[]string	false	"Selected standardized interests"
//	@Param			sort		query		string		false	"Sort key"	Enums(shuffle, az, hindex, citations)
//	@Param			limit		query		int			false	"Page size"
//	@Param			offset		query		int			false	"Page offset"
//	@Param			seed		query		int			false	"Shuffle seed returned by the first page"
//	@Success		200			{object}	ResearcherListResponse
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/researchers [get]
func (h *Handler) ListResearchers(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, "list researchers", err)
		return
	}
	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeError(w, "list researchers", err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetResearcher handles GET /api/researchers/{name}.
//
//	@Summary		Get a researcher by exact name
//	@Tags			researchers
//	@Produce		json
//	@Param			name	path		string	true	"Researcher name"
//	@Success		200		{object}	Researcher
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/researchers/{name} [get]
func (h *Handler) GetResearcher(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	res, err := h.svc.Get(r.Context(), name)
	if err != nil {
		writeError(w, "get researcher", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Search handles GET /api/search.
//
//	@Summary		Substring search over names, affiliations and interests
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("q is required"))
		return
	}
	limit, err := parseInt(r.URL.Query(), "limit")
	if err != nil {
		writeError(w, "search", err)
		return
	}
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// Taxonomy handles GET /api/taxonomy.
//
//	@Summary		Track / subtrack / area tree with counts
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	TaxonomyResponse
//	@Security		BearerAuth
//	@Router			/taxonomy [get]
func (h *Handler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.Taxonomy(r.Context())
	if err != nil {
		writeError(w, "taxonomy", err)
		return
	}
	writeJSON(w, http.StatusOK, TaxonomyResponse{Tracks: tree})
}

// Categories handles GET /api/categories.
//
//	@Summary		Categories with counts
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	CategoriesResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		writeError(w, "categories", err)
		return
	}
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: cats})
}

// Interests handles GET /api/interests.
//
//	@Summary		Interest vocabulary
//	@Tags			taxonomy
//	@Produce		json
//	@Param			kind	query		string	false	"Vocabulary"	Enums(raw, standardized)
//	@Success		200		{object}	InterestsResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/interests [get]
func (h *Handler) Interests(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = profileservice.KindRaw
	}
	terms, err := h.svc.Interests(r.Context(), kind)
	if err != nil {
		writeError(w, "interests", err)
		return
	}
	writeJSON(w, http.StatusOK, InterestsResponse{Kind: kind, Interests: terms})
}

// LocationStats handles GET /api/locations/stats.
//
//	@Summary		Location coverage
//	@Tags			locations
//	@Produce		json
//	@Success		200	{object}	models.LocationStats
//	@Security		BearerAuth
//	@Router			/locations/stats [get]
func (h *Handler) LocationStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.LocationStats(r.Context())
	if err != nil {
		writeError(w, "location stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Countries handles GET /api/locations/countries.
//
//	@Summary		Located researchers per country
//	@Tags			locations
//	@Produce		json
//	@Success		200	{object}	CountriesResponse
//	@Security		BearerAuth
//	@Router			/locations/countries [get]
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Countries(r.Context())
	if err != nil {
		writeError(w, "countries", err)
		return
	}
	writeJSON(w, http.StatusOK, CountriesResponse{Countries: c})
}

// Map handles GET /api/map. Accepts the same filter parameters as
// /api/researchers.
//
//	@Summary		Map markers for the filtered researchers
//	@Tags			locations
//	@Produce		json
//	@Success		200	{object}	MapResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/map [get]
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	markers, err := h.svc.Markers(r.Context(), parseState(r.URL.Query()))
	if err != nil {
		writeError(w, "map", err)
		return
	}
	writeJSON(w, http.StatusOK, MapResponse{Markers: markers})
}
