package index

import "github.com/starford/scholarmap/internal/models"

// ProfileIndex defines the interface for researcher profile indexing.
// Consumers should depend on this interface rather than the concrete *DB type.
type ProfileIndex interface {
	UpsertProfile(p ProfileRow, doc []byte) error
	DeleteProfile(name string) error
	GetProfile(name string) (models.Researcher, error)
	Search(query string, limit int) ([]SearchResult, error)
	CountByCountry() (map[string]int, error)
	AllChecksums() (map[string]string, error)
	Count() (int, error)
	Close() error
}

var _ ProfileIndex = (*DB)(nil)
