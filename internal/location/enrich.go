package location

import (
	"slices"

	"github.com/starford/scholarmap/internal/models"
)

// EnrichAll returns copies of records with Location set wherever the
// affiliation resolves. Records that do not resolve are copied unchanged.
// The input slice and its records are never modified.
func EnrichAll(records []models.Researcher, r *Resolver) []models.Researcher {
	out := make([]models.Researcher, len(records))
	for i, rec := range records {
		out[i] = rec
		if m, ok := r.Resolve(rec.Affiliation); ok {
			loc := m.Location
			out[i].Location = &loc
		}
	}
	return out
}

// Stats summarises location coverage of already enriched records.
func Stats(records []models.Researcher) models.LocationStats {
	seen := make(map[string]struct{})
	mapped := 0
	for _, r := range records {
		if r.Location == nil {
			continue
		}
		mapped++
		seen[r.Location.Country] = struct{}{}
	}
	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	slices.Sort(countries)
	return models.LocationStats{Total: len(records), Mapped: mapped, Countries: countries}
}
