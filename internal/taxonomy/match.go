package taxonomy

// TagSet is the set of standardized tags carried by one record.
type TagSet map[string]struct{}

// NewTagSet builds a TagSet. A nil or empty slice yields an empty set.
func NewTagSet(tags []string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// HasAny reports whether any of terms is in the set.
func (s TagSet) HasAny(terms []string) bool {
	for _, term := range terms {
		if s.Has(term) {
			return true
		}
	}
	return false
}

// MatchesSubtrack reports whether a record belongs to a subtrack: either one of
// its tags is the subtrack name itself, or one of its tags is a declared area.
// Counting and filtering both go through this predicate.
func (s TagSet) MatchesSubtrack(subtrack string, areas []string) bool {
	return s.Has(subtrack) || s.HasAny(areas)
}

// MatchesTrack reports whether the set matches any subtrack of tr.
func (s TagSet) MatchesTrack(tr Track) bool {
	for _, st := range tr.Subtracks {
		if s.MatchesSubtrack(st.Name, st.Areas) {
			return true
		}
	}
	return false
}

// MatchesSubtrack is the slice form of TagSet.MatchesSubtrack.
func MatchesSubtrack(tags []string, subtrack string, areas []string) bool {
	return NewTagSet(tags).MatchesSubtrack(subtrack, areas)
}

// MatchSet is the set of terms considered equivalent for one filter operation.
type MatchSet map[string]struct{}

// Contains reports whether any tag falls inside the match-set.
func (m MatchSet) Contains(tags []string) bool {
	for _, t := range tags {
		if _, ok := m[t]; ok {
			return true
		}
	}
	return false
}

// Terms returns the number of distinct terms in the set.
func (m MatchSet) Terms() int {
	return len(m)
}

// NewMatchSet builds a MatchSet from a term list.
func NewMatchSet(terms ...string) MatchSet {
	m := make(MatchSet, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}

// SubtrackMatchSet returns {subtrack} ∪ areas.
func SubtrackMatchSet(subtrack string, areas []string) MatchSet {
	m := NewMatchSet(areas...)
	m[subtrack] = struct{}{}
	return m
}

// TrackMatchSet returns the union of every subtrack name and area under tr.
func TrackMatchSet(tr Track) MatchSet {
	m := make(MatchSet)
	for _, st := range tr.Subtracks {
		m[st.Name] = struct{}{}
		for _, a := range st.Areas {
			m[a] = struct{}{}
		}
	}
	return m
}
