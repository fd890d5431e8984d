// Package testutil provides shared test helpers: a sample dataset written
// into a temporary data directory, and a throwaway profile index.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/scholarmap/internal/index"
	"github.com/starford/scholarmap/internal/storage"
)

// Data file names used by Dataset.
const (
	ResearchersFile = "researchers.json"
	CategoriesFile  = "categories.json"
	LocationsFile   = "locations.json"
)

// ResearchersJSON is a five-profile dataset. Amr, Mona and Sara resolve to a
// location; Omar has the "nan" placeholder and Youssef matches no key.
const ResearchersJSON = `[
  {"name": "Amr Hassan", "affiliation": "Cairo University", "position": "Professor", "hindex": 20, "citedby": 1500,
   "interests": ["deep learning", "vision"], "standardized_interests": ["Deep Learning", "Machine Learning"], "lastupdate": "2024-01-10"},
  {"name": "Mona Ali", "affiliation": "Dept. of CS, MIT", "position": "Researcher", "hindex": 35, "citedby": 9000,
   "interests": ["nlp"], "standardized_interests": ["Machine Translation"], "lastupdate": "2024-02-01"},
  {"name": "Omar Farouk", "affiliation": "nan", "position": "Lecturer", "hindex": 5, "citedby": 100,
   "interests": ["networks", "security"], "standardized_interests": ["Wireless", "Cryptography"], "lastupdate": "2023-11-20"},
  {"name": "Sara Nabil", "affiliation": "The American University in Cairo", "position": "Associate Professor", "hindex": 12, "citedby": 800,
   "interests": ["security"], "standardized_interests": ["Cryptography"], "lastupdate": "2024-03-05"},
  {"name": "Youssef Kamal", "affiliation": "Helwan University", "position": "Student", "hindex": 8, "citedby": 300,
   "interests": [], "standardized_interests": [], "lastupdate": "2024-01-01"}
]`

// CategoriesJSON declares two tracks (display order Systems, AI) and two categories.
const CategoriesJSON = `{
  "taxonomy": {
    "AI": {
      "Machine Learning": ["Deep Learning", "Reinforcement Learning"],
      "NLP": ["Machine Translation", "Speech"]
    },
    "Systems": {
      "Networks": ["Wireless", "SDN"],
      "Security": ["Cryptography"]
    }
  },
  "categories": {
    "Computing": ["Deep Learning", "Wireless", "Cryptography"],
    "Language": ["Machine Translation", "Speech", "NLP"]
  },
  "categoryOrder": ["Systems", "AI"]
}`

// LocationsJSON is the location table for the sample dataset.
const LocationsJSON = `{
  "Cairo University": {"lat": 30.0266, "lng": 31.2081, "city": "Giza", "country": "Egypt"},
  "MIT": {"lat": 42.3601, "lng": -71.0942, "city": "Cambridge", "country": "USA"},
  "The American University in Cairo": {"lat": 30.0195, "lng": 31.4997, "city": "New Cairo", "country": "Egypt"}
}`

// Dataset writes the sample data files into a temporary directory and
// returns it with a storage.Provider rooted there.
func Dataset(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, ResearchersFile, ResearchersJSON)
	WriteFile(t, dir, CategoriesFile, CategoriesJSON)
	WriteFile(t, dir, LocationsFile, LocationsJSON)
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFile writes content to dir/name.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "scholarmap-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
