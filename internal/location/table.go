package location

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/parser"
	"github.com/starford/scholarmap/internal/storage"
)

// Source fetches a location table in a single read.
type Source interface {
	Load(ctx context.Context) (Table, error)
}

// FileSource reads the table from a file in the data directory.
type FileSource struct {
	Store storage.Provider
	Path  string
}

// Load implements Source.
func (s FileSource) Load(_ context.Context) (Table, error) {
	data, err := s.Store.Read(s.Path)
	if err != nil {
		return nil, err
	}
	m, err := parser.ParseLocations(data)
	if err != nil {
		return nil, err
	}
	return Table(m), nil
}

// HTTPSource fetches the table from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

const maxTableBytes = 32 << 20

// Load implements Source.
func (s HTTPSource) Load(ctx context.Context) (Table, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("location: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location: fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location: fetch %s: status %d", s.URL, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTableBytes))
	if err != nil {
		return nil, fmt.Errorf("location: read body: %w", err)
	}
	m, err := parser.ParseLocations(data)
	if err != nil {
		return nil, err
	}
	return Table(m), nil
}

// ValidCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidCoordinates(loc models.Location) bool {
	return loc.Lat >= -90 && loc.Lat <= 90 && loc.Lng >= -180 && loc.Lng <= 180
}

// Locator owns the location table: it loads it once, resolves against it and
// enriches record collections. A failed load leaves an empty table in place,
// so every affiliation resolves to nothing; the next Load retries.
type Locator struct {
	src    Source
	logger *slog.Logger

	mu       sync.RWMutex
	loaded   bool
	resolver *Resolver
}

// NewLocator creates a Locator that has not loaded anything yet.
func NewLocator(src Source, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{src: src, logger: logger, resolver: NewResolver(nil)}
}

// Load fetches the table the first time it is called; later calls after a
// successful load are no-ops.
func (l *Locator) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return
	}
	l.load(ctx)
}

// Reload fetches the table again regardless of prior state.
func (l *Locator) Reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.load(ctx)
}

func (l *Locator) load(ctx context.Context) {
	table, err := l.src.Load(ctx)
	if err != nil {
		l.logger.Warn("location table load failed", slog.String("error", err.Error()))
		l.resolver = NewResolver(nil)
		return
	}
	clean := make(Table, len(table))
	for key, loc := range table {
		if !ValidCoordinates(loc) {
			l.logger.Warn("location: dropping entry with invalid coordinates",
				slog.String("key", key),
				slog.Float64("lat", loc.Lat),
				slog.Float64("lng", loc.Lng))
			continue
		}
		clean[key] = loc
	}
	l.resolver = NewResolver(clean)
	l.loaded = true
	l.logger.Info("location table loaded", slog.Int("entries", len(clean)))
}

// Loaded reports whether a table has been loaded successfully.
func (l *Locator) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// Resolver returns the current resolver.
func (l *Locator) Resolver() *Resolver {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.resolver
}

// Resolve resolves one affiliation against the current table.
func (l *Locator) Resolve(affiliation string) (Match, bool) {
	return l.Resolver().Resolve(affiliation)
}

// EnrichAll attaches locations to copies of records.
func (l *Locator) EnrichAll(records []models.Researcher) []models.Researcher {
	return EnrichAll(records, l.Resolver())
}

// Stats enriches records and reports coverage.
func (l *Locator) Stats(records []models.Researcher) models.LocationStats {
	return Stats(l.EnrichAll(records))
}
