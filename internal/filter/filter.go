// Package filter implements the pure filter operations over a researcher collection.
//
// Every function takes the full collection and returns a subset in input order.
// Inputs are never mutated. Pass-through cases return the input slice itself.
package filter

import (
	"strings"

	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/taxonomy"
)

func keep(records []models.Researcher, pred func(models.Researcher) bool) []models.Researcher {
	out := make([]models.Researcher, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByText keeps records whose name contains query, ignoring case.
// A blank query returns records unchanged.
func ByText(records []models.Researcher, query string) []models.Researcher {
	if strings.TrimSpace(query) == "" {
		return records
	}
	q := strings.ToLower(query)
	return keep(records, func(r models.Researcher) bool {
		return strings.Contains(strings.ToLower(r.Name), q)
	})
}

// ByRawInterests keeps records carrying at least one raw interest checked in selected.
func ByRawInterests(records []models.Researcher, selected map[string]bool) []models.Researcher {
	return keep(records, func(r models.Researcher) bool {
		for _, tag := range r.Interests {
			if selected[tag] {
				return true
			}
		}
		return false
	})
}

// ByStandardizedInterests keeps records carrying at least one standardized
// interest checked in selected. With nothing checked the result is empty.
func ByStandardizedInterests(records []models.Researcher, selected map[string]bool) []models.Researcher {
	active := make([]string, 0, len(selected))
	for tag, on := range selected {
		if on {
			active = append(active, tag)
		}
	}
	if len(active) == 0 {
		return []models.Researcher{}
	}
	m := taxonomy.NewMatchSet(active...)
	return keep(records, func(r models.Researcher) bool {
		return m.Contains(r.StandardizedInterests)
	})
}

// ByTrack keeps records matching any subtrack of track. "all", an empty name
// or an unknown track return records unchanged.
func ByTrack(records []models.Researcher, tax *taxonomy.Taxonomy, track string) []models.Researcher {
	if track == "" || track == taxonomy.AllTracks {
		return records
	}
	tr, ok := tax.Track(track)
	if !ok {
		return records
	}
	return keep(records, func(r models.Researcher) bool {
		return taxonomy.NewTagSet(r.StandardizedInterests).MatchesTrack(tr)
	})
}

// BySubtrack keeps records matching the subtrack (its own name or one of its
// areas). An unknown (track, subtrack) pair returns records unchanged.
func BySubtrack(records []models.Researcher, tax *taxonomy.Taxonomy, track, subtrack string) []models.Researcher {
	areas, ok := tax.Areas(track, subtrack)
	if !ok {
		return records
	}
	return keep(records, func(r models.Researcher) bool {
		return taxonomy.MatchesSubtrack(r.StandardizedInterests, subtrack, areas)
	})
}

// ByArea keeps records tagged with exactly area.
func ByArea(records []models.Researcher, area string) []models.Researcher {
	return keep(records, func(r models.Researcher) bool {
		for _, tag := range r.StandardizedInterests {
			if tag == area {
				return true
			}
		}
		return false
	})
}

// ByCategory keeps records having a standardized interest listed under category.
// "all" or an empty name return records unchanged; an unknown category matches nothing.
func ByCategory(records []models.Researcher, cats taxonomy.Categories, category string) []models.Researcher {
	if category == "" || category == taxonomy.AllTracks {
		return records
	}
	interests, _ := cats.Interests(category)
	m := taxonomy.NewMatchSet(interests...)
	return keep(records, func(r models.Researcher) bool {
		return m.Contains(r.StandardizedInterests)
	})
}

// BySelectedAreas keeps records tagged with any of the selected terms.
// An empty selection returns records unchanged.
func BySelectedAreas(records []models.Researcher, selected []string) []models.Researcher {
	if len(selected) == 0 {
		return records
	}
	m := taxonomy.NewMatchSet(selected...)
	return keep(records, func(r models.Researcher) bool {
		return m.Contains(r.StandardizedInterests)
	})
}
