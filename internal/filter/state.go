package filter

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/taxonomy"
)

// Mode names the primary filter a State selects.
type Mode string

// Primary filter modes.
const (
	ModeNone     Mode = "none"
	ModeText     Mode = "text"
	ModeTrack    Mode = "track"
	ModeSubtrack Mode = "subtrack"
	ModeArea     Mode = "area"
	ModeCategory Mode = "category"
)

// State is a caller-owned filter selection. At most one primary filter
// (query, taxonomy path, category) may be set. Areas, RawInterests and
// StandardizedInterests are independent selections layered on top; a nil map
// leaves the corresponding interest filter inactive.
type State struct {
	Query    string
	Track    string
	Subtrack string
	Area     string
	Category string

	Areas                 []string
	RawInterests          map[string]bool
	StandardizedInterests map[string]bool
}

// Mode returns the primary filter selected by s.
func (s State) Mode() Mode {
	switch {
	case strings.TrimSpace(s.Query) != "":
		return ModeText
	case s.Area != "":
		return ModeArea
	case s.Subtrack != "":
		return ModeSubtrack
	case s.Track != "" && s.Track != taxonomy.AllTracks:
		return ModeTrack
	case s.Category != "" && s.Category != taxonomy.AllTracks:
		return ModeCategory
	}
	return ModeNone
}

func (s State) primaries() int {
	n := 0
	if strings.TrimSpace(s.Query) != "" {
		n++
	}
	if s.Area != "" || s.Subtrack != "" || (s.Track != "" && s.Track != taxonomy.AllTracks) {
		n++
	}
	if s.Category != "" && s.Category != taxonomy.AllTracks {
		n++
	}
	return n
}

// Validate checks that at most one primary filter is set and that a subtrack
// comes with its track.
func (s State) Validate() error {
	if s.primaries() > 1 {
		return fmt.Errorf("%w: only one of query, taxonomy path or category may be set", apperr.ErrInvalidFilter)
	}
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Subtrack, validation.When(s.Track == "" || s.Track == taxonomy.AllTracks,
			validation.Empty.Error("requires a track"))),
		validation.Field(&s.Areas, validation.Each(validation.Required)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidFilter, err)
	}
	return nil
}

// IsZero reports whether s filters nothing at all.
func (s State) IsZero() bool {
	return s.Mode() == ModeNone && len(s.Areas) == 0 && s.RawInterests == nil && s.StandardizedInterests == nil
}

// Apply runs the primary filter of s, then each active selection, over records.
func Apply(records []models.Researcher, tax *taxonomy.Taxonomy, cats taxonomy.Categories, s State) []models.Researcher {
	out := records
	switch s.Mode() {
	case ModeText:
		out = ByText(out, s.Query)
	case ModeArea:
		out = ByArea(out, s.Area)
	case ModeSubtrack:
		out = BySubtrack(out, tax, s.Track, s.Subtrack)
	case ModeTrack:
		out = ByTrack(out, tax, s.Track)
	case ModeCategory:
		out = ByCategory(out, cats, s.Category)
	}
	out = BySelectedAreas(out, s.Areas)
	if s.RawInterests != nil {
		out = ByRawInterests(out, s.RawInterests)
	}
	if s.StandardizedInterests != nil {
		out = ByStandardizedInterests(out, s.StandardizedInterests)
	}
	return out
}
