package taxonomy

import "github.com/starford/scholarmap/internal/models"

// Counts maps a term (area, subtrack, track or category) to a number of records.
type Counts map[string]int

// Get returns the count for term, 0 when absent.
func (c Counts) Get(term string) int {
	return c[term]
}

// Count computes aggregate counts for every node of the taxonomy.
//
// Every standardized tag is first counted by direct occurrence, including tags
// that do not appear in the taxonomy. Each subtrack then gets the number of
// records matching it (see TagSet.MatchesSubtrack), and each track the number
// of records matching at least one of its subtracks. A track count is never the
// sum of its subtrack counts.
func Count(records []models.Researcher, tax *Taxonomy) Counts {
	counts := make(Counts)
	sets := make([]TagSet, len(records))
	for i, r := range records {
		for _, tag := range r.StandardizedInterests {
			counts[tag]++
		}
		sets[i] = NewTagSet(r.StandardizedInterests)
	}

	for _, tr := range tax.Declared() {
		for _, st := range tr.Subtracks {
			n := 0
			for _, s := range sets {
				if s.MatchesSubtrack(st.Name, st.Areas) {
					n++
				}
			}
			counts[st.Name] = n
		}

		n := 0
		for _, s := range sets {
			if s.MatchesTrack(tr) {
				n++
			}
		}
		counts[tr.Name] = n
	}
	return counts
}

// CountCategories returns, per category, the number of records having at least
// one standardized tag in that category. A record may count toward several categories.
func CountCategories(records []models.Researcher, cats Categories) Counts {
	counts := make(Counts, len(cats))
	for _, cat := range cats {
		m := NewMatchSet(cat.Interests...)
		n := 0
		for _, r := range records {
			if m.Contains(r.StandardizedInterests) {
				n++
			}
		}
		counts[cat.Name] = n
	}
	return counts
}
