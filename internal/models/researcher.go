// Package models defines the domain types for Scholarmap.
package models

// Researcher is a single directory profile as stored in the dataset.
type Researcher struct {
	Name                  string    `json:"name"`
	Affiliation           string    `json:"affiliation"`
	Position              string    `json:"position"`
	HIndex                int       `json:"hindex"`
	CitedBy               int       `json:"citedby"`
	Photo                 string    `json:"photo"`
	Scholar               string    `json:"scholar"`
	LinkedIn              string    `json:"linkedin"`
	Website               string    `json:"website"`
	Twitter               string    `json:"twitter"`
	Interests             []string  `json:"interests"`
	StandardizedInterests []string  `json:"standardized_interests"`
	LastUpdate            string    `json:"lastupdate"`
	Location              *Location `json:"location,omitempty"`
}

// Location is a geocoded place attached to a researcher by the location enricher.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// LocationStats summarises how much of a collection could be placed on the map.
type LocationStats struct {
	Total     int      `json:"total"`
	Mapped    int      `json:"mapped"`
	Countries []string `json:"countries"`
}

// DistinctCountries returns the number of distinct countries.
func (s LocationStats) DistinctCountries() int {
	return len(s.Countries)
}
