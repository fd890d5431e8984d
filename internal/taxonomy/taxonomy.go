// Package taxonomy holds the three-level interest hierarchy (Track -> Subtrack -> Area),
// the flat category grouping, and the aggregate counters computed over them.
//
// All terms are opaque identifiers compared with exact, case-sensitive string equality.
package taxonomy

// AllTracks is the pseudo-track (and pseudo-category) that selects everything.
const AllTracks = "all"

// Subtrack is a second-level grouping together with its declared areas.
type Subtrack struct {
	Name  string   `json:"name"`
	Areas []string `json:"areas"`
}

// Track is a top-level grouping and its subtracks in declared order.
type Track struct {
	Name      string     `json:"name"`
	Subtracks []Subtrack `json:"subtracks"`
}

// Taxonomy is the read-only Track -> Subtrack -> Area hierarchy.
// The zero value is an empty taxonomy.
type Taxonomy struct {
	tracks []Track
	order  []string
	byName map[string]int
}

// New builds a Taxonomy from tracks in declared order. order is the display
// order of track names; when empty the declared order is used.
func New(tracks []Track, order []string) *Taxonomy {
	t := &Taxonomy{
		tracks: tracks,
		order:  order,
		byName: make(map[string]int, len(tracks)),
	}
	for i, tr := range tracks {
		t.byName[tr.Name] = i
	}
	return t
}

// Tracks returns track names in display order.
func (t *Taxonomy) Tracks() []string {
	if t == nil {
		return nil
	}
	if len(t.order) > 0 {
		return t.order
	}
	names := make([]string, len(t.tracks))
	for i, tr := range t.tracks {
		names[i] = tr.Name
	}
	return names
}

// Declared returns every track in the order it was declared.
func (t *Taxonomy) Declared() []Track {
	if t == nil {
		return nil
	}
	return t.tracks
}

// Track looks up a track by name.
func (t *Taxonomy) Track(name string) (Track, bool) {
	if t == nil {
		return Track{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return Track{}, false
	}
	return t.tracks[i], true
}

// Subtracks returns the subtrack names of track, or nil for an unknown track.
func (t *Taxonomy) Subtracks(track string) []string {
	tr, ok := t.Track(track)
	if !ok {
		return nil
	}
	names := make([]string, len(tr.Subtracks))
	for i, st := range tr.Subtracks {
		names[i] = st.Name
	}
	return names
}

// Areas returns the areas declared under (track, subtrack).
// ok is false when either key is unknown.
func (t *Taxonomy) Areas(track, subtrack string) (areas []string, ok bool) {
	tr, found := t.Track(track)
	if !found {
		return nil, false
	}
	for _, st := range tr.Subtracks {
		if st.Name == subtrack {
			return st.Areas, true
		}
	}
	return nil, false
}

// Category is a named, flat list of interests independent from the taxonomy structure.
type Category struct {
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
}

// Categories is the category mapping in declared order.
type Categories []Category

// Interests returns the interest list of the named category.
func (c Categories) Interests(name string) ([]string, bool) {
	for _, cat := range c {
		if cat.Name == name {
			return cat.Interests, true
		}
	}
	return nil, false
}

// Names returns category names in declared order.
func (c Categories) Names() []string {
	names := make([]string, len(c))
	for i, cat := range c {
		names[i] = cat.Name
	}
	return names
}
