// Package parser decodes the data blobs the catalog is built from: the
// researcher dataset, the taxonomy/category file and the location table.
package parser

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/taxonomy"
)

// CategoryData is the decoded taxonomy file.
type CategoryData struct {
	Taxonomy   *taxonomy.Taxonomy
	Categories taxonomy.Categories
	// Order is the display order of tracks.
	Order []string
}

// ParseResearchers decodes a JSON array of researcher profiles.
func ParseResearchers(data []byte) ([]models.Researcher, error) {
	var out []models.Researcher
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parser: researchers: %w", err)
	}
	if out == nil {
		out = []models.Researcher{}
	}
	return out, nil
}

// ParseCategoryData decodes the taxonomy file:
//
//	{"taxonomy": {track: {subtrack: [area, ...]}}, "categories": {name: [interest, ...]}, "categoryOrder": [track, ...]}
//
// Object key order is significant and preserved for tracks, subtracks and categories.
func ParseCategoryData(data []byte) (*CategoryData, error) {
	raw := struct {
		Taxonomy      *orderedmap.OrderedMap[string, json.RawMessage] `json:"taxonomy"`
		Categories    *orderedmap.OrderedMap[string, []string]        `json:"categories"`
		CategoryOrder []string                                        `json:"categoryOrder"`
	}{
		Taxonomy:   orderedmap.New[string, json.RawMessage](),
		Categories: orderedmap.New[string, []string](),
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parser: categories: %w", err)
	}

	tracks := make([]taxonomy.Track, 0, raw.Taxonomy.Len())
	for pair := raw.Taxonomy.Oldest(); pair != nil; pair = pair.Next() {
		subs := orderedmap.New[string, []string]()
		if err := json.Unmarshal(pair.Value, subs); err != nil {
			return nil, fmt.Errorf("parser: track %q: %w", pair.Key, err)
		}
		tr := taxonomy.Track{Name: pair.Key, Subtracks: make([]taxonomy.Subtrack, 0, subs.Len())}
		for sp := subs.Oldest(); sp != nil; sp = sp.Next() {
			tr.Subtracks = append(tr.Subtracks, taxonomy.Subtrack{Name: sp.Key, Areas: sp.Value})
		}
		tracks = append(tracks, tr)
	}

	cats := make(taxonomy.Categories, 0, raw.Categories.Len())
	for pair := raw.Categories.Oldest(); pair != nil; pair = pair.Next() {
		cats = append(cats, taxonomy.Category{Name: pair.Key, Interests: pair.Value})
	}

	return &CategoryData{
		Taxonomy:   taxonomy.New(tracks, raw.CategoryOrder),
		Categories: cats,
		Order:      raw.CategoryOrder,
	}, nil
}

// ParseLocations decodes an affiliation -> location object.
func ParseLocations(data []byte) (map[string]models.Location, error) {
	var out map[string]models.Location
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parser: locations: %w", err)
	}
	if out == nil {
		out = map[string]models.Location{}
	}
	return out, nil
}
