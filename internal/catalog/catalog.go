// Package catalog builds the immutable in-memory view of the dataset that
// every query runs against, and swaps it atomically when data files change.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/checksum"
	"github.com/starford/scholarmap/internal/interest"
	"github.com/starford/scholarmap/internal/location"
	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/parser"
	"github.com/starford/scholarmap/internal/storage"
	"github.com/starford/scholarmap/internal/taxonomy"
)

// Files names the data files relative to the data root.
type Files struct {
	Researchers string
	Categories  string
	Locations   string
}

// Paths returns the non-empty file names.
func (f Files) Paths() []string {
	var out []string
	for _, p := range []string{f.Researchers, f.Categories, f.Locations} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Snapshot is everything derived from one load of the dataset. It is never
// modified after construction; callers must clone Records before reordering.
type Snapshot struct {
	Records        []models.Researcher
	Taxonomy       *taxonomy.Taxonomy
	Categories     taxonomy.Categories
	Counts         taxonomy.Counts
	CategoryCounts taxonomy.Counts
	Raw            interest.Vocabulary
	Standardized   interest.Vocabulary
	Stats          models.LocationStats
	LoadedAt       time.Time
	// Sources fingerprints the data files this snapshot was built from.
	Sources map[string]models.FileMetadata

	byName map[string]int
}

// Build derives a snapshot from parsed inputs. records are enriched through
// locator, which must already be loaded.
func Build(records []models.Researcher, cd *parser.CategoryData, locator *location.Locator) *Snapshot {
	enriched := locator.EnrichAll(records)
	s := &Snapshot{
		Records:        enriched,
		Taxonomy:       cd.Taxonomy,
		Categories:     cd.Categories,
		Counts:         taxonomy.Count(enriched, cd.Taxonomy),
		CategoryCounts: taxonomy.CountCategories(enriched, cd.Categories),
		Raw:            interest.ExtractRaw(enriched),
		Standardized:   interest.ExtractStandardized(enriched),
		Stats:          location.Stats(enriched),
		LoadedAt:       time.Now().UTC(),
		byName:         make(map[string]int, len(enriched)),
	}
	for i, r := range enriched {
		if _, dup := s.byName[r.Name]; !dup {
			s.byName[r.Name] = i
		}
	}
	return s
}

// Researcher returns the first record with the given name.
func (s *Snapshot) Researcher(name string) (models.Researcher, bool) {
	i, ok := s.byName[name]
	if !ok {
		return models.Researcher{}, false
	}
	return s.Records[i], true
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// Catalog loads snapshots from a storage provider and holds the current one.
type Catalog struct {
	store   storage.Provider
	files   Files
	locator *location.Locator
	logger  *slog.Logger

	mu      sync.Mutex // serialises loads
	current atomic.Pointer[Snapshot]
}

// New creates a Catalog. Nothing is read until Load is called.
func New(store storage.Provider, files Files, locator *location.Locator, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{store: store, files: files, locator: locator, logger: logger}
}

// Files returns the configured data file names.
func (c *Catalog) Files() Files {
	return c.files
}

// Locator returns the location table owner.
func (c *Catalog) Locator() *location.Locator {
	return c.locator
}

// Current returns the active snapshot, or nil before the first successful load.
func (c *Catalog) Current() *Snapshot {
	return c.current.Load()
}

// Snapshot returns the active snapshot or apperr.ErrNotLoaded.
func (c *Catalog) Snapshot() (*Snapshot, error) {
	s := c.current.Load()
	if s == nil {
		return nil, apperr.ErrNotLoaded
	}
	return s, nil
}

// Load reads the dataset, enriches it and publishes the new snapshot.
// On error the previous snapshot stays active.
func (c *Catalog) Load(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx, false)
}

// ErrUnchanged is returned by Reload when none of the reported files differ
// from the ones the current snapshot was built from.
var ErrUnchanged = errors.New("catalog: data files unchanged")

// Reload rebuilds the snapshot after the given data files changed. The
// location table is fetched again only when the locations file is among them.
func (c *Catalog) Reload(ctx context.Context, changed []string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.current.Load()
	changed = c.modified(cur, changed)
	if cur != nil && len(changed) == 0 {
		return cur, ErrUnchanged
	}
	refetch := c.files.Locations != "" && slices.Contains(changed, c.files.Locations)
	return c.load(ctx, refetch)
}

// load builds and publishes a snapshot. Sources records digests of the bytes
// actually consumed, so a write racing the load is seen as a change later.
func (c *Catalog) load(ctx context.Context, refetchLocations bool) (*Snapshot, error) {
	sources := make(map[string]models.FileMetadata, 3)

	data, err := c.read(c.files.Researchers, sources)
	if err != nil {
		return nil, err
	}
	records, err := parser.ParseResearchers(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	data, err = c.read(c.files.Categories, sources)
	if err != nil {
		return nil, err
	}
	cd, err := parser.ParseCategoryData(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c.loadLocations(ctx, refetchLocations, sources)
	snap := Build(records, cd, c.locator)
	snap.Sources = sources
	c.current.Store(snap)

	c.logger.Info("catalog loaded",
		slog.Int("researchers", snap.Len()),
		slog.Int("tracks", len(snap.Taxonomy.Tracks())),
		slog.Int("categories", len(snap.Categories)),
		slog.Int("mapped", snap.Stats.Mapped))
	return snap, nil
}

func (c *Catalog) read(path string, sources map[string]models.FileMetadata) ([]byte, error) {
	data, err := c.store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	sources[path] = models.FileMetadata{
		Path:      path,
		Size:      int64(len(data)),
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now().UTC(),
	}
	return data, nil
}

// loadLocations makes sure the location table is loaded, refetching it when
// asked. The locations file is read by the locator itself, so its digest is
// taken before the fetch: a racing write then shows up as a later change
// instead of being masked. Without a fetch the previous digest carries over.
func (c *Catalog) loadLocations(ctx context.Context, refetch bool, sources map[string]models.FileMetadata) {
	name := c.files.Locations
	fetch := refetch || !c.locator.Loaded()

	switch {
	case name == "":
	case fetch:
		if meta, err := c.store.Stat(name); err == nil {
			sources[name] = meta
		}
	default:
		if prev := c.current.Load(); prev != nil {
			if meta, ok := prev.Sources[name]; ok {
				sources[name] = meta
			}
		}
	}

	if refetch {
		c.locator.Reload(ctx)
	} else {
		c.locator.Load(ctx)
	}
}

// modified keeps the paths whose content differs from cur. Unreadable files
// count as modified so the load reports the error.
func (c *Catalog) modified(cur *Snapshot, changed []string) []string {
	if cur == nil {
		return changed
	}
	var out []string
	for _, p := range changed {
		meta, err := c.store.Stat(p)
		prev, seen := cur.Sources[p]
		if err != nil || !seen || prev.Checksum != meta.Checksum {
			out = append(out, p)
		}
	}
	return out
}
