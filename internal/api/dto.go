package api

import (
	"github.com/starford/scholarmap/internal/index"
	"github.com/starford/scholarmap/internal/location"
	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/profileservice"
	"github.com/starford/scholarmap/internal/taxonomy"
)

// Researcher is a single profile (aliased from the domain layer).
type Researcher = models.Researcher

// ResearcherListResponse is one page of researchers (aliased from the service layer).
type ResearcherListResponse = profileservice.Page

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results" validate:"required"`
}

// TaxonomyResponse wraps the browse tree.
type TaxonomyResponse struct {
	Tracks []taxonomy.TrackNode `json:"tracks" validate:"required"`
}

// CategoriesResponse wraps category counts.
type CategoriesResponse struct {
	Categories []profileservice.CategoryCount `json:"categories" validate:"required"`
}

// InterestsResponse wraps a vocabulary listing.
type InterestsResponse struct {
	Kind      string                         `json:"kind" example:"standardized" validate:"required"`
	Interests []profileservice.InterestCount `json:"interests" validate:"required"`
}

// MapResponse wraps map markers.
type MapResponse struct {
	Markers []location.Marker `json:"markers" validate:"required"`
}

// CountriesResponse maps country names to located researcher counts.
type CountriesResponse struct {
	Countries map[string]int `json:"countries" validate:"required"`
}
