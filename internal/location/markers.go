package location

import "github.com/starford/scholarmap/internal/models"

// Cluster size classes for map markers.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Marker groups every researcher placed at the same coordinates.
type Marker struct {
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Researchers []string `json:"researchers"`
	Size        string   `json:"size"`
}

// SizeClass buckets a marker population: more than 25 is large, more than 10 medium.
func SizeClass(n int) string {
	switch {
	case n > 25:
		return SizeLarge
	case n > 10:
		return SizeMedium
	}
	return SizeSmall
}

type point struct{ lat, lng float64 }

// Markers groups located records by coordinates, in order of first appearance.
// Records without a location are skipped.
func Markers(records []models.Researcher) []Marker {
	idx := make(map[point]int)
	out := []Marker{}
	for _, r := range records {
		if r.Location == nil {
			continue
		}
		p := point{r.Location.Lat, r.Location.Lng}
		i, ok := idx[p]
		if !ok {
			i = len(out)
			idx[p] = i
			out = append(out, Marker{Lat: p.lat, Lng: p.lng, City: r.Location.City, Country: r.Location.Country})
		}
		out[i].Researchers = append(out[i].Researchers, r.Name)
	}
	for i := range out {
		out[i].Size = SizeClass(len(out[i].Researchers))
	}
	return out
}
