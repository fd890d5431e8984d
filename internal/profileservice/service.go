// Package profileservice answers directory queries against the current catalog
// snapshot and the profile index.
package profileservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/catalog"
	"github.com/starford/scholarmap/internal/filter"
	"github.com/starford/scholarmap/internal/index"
	"github.com/starford/scholarmap/internal/location"
	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/ordering"
	"github.com/starford/scholarmap/internal/taxonomy"
)

// Interest vocabularies.
const (
	KindRaw          = "raw"
	KindStandardized = "standardized"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Query is a list request. Seed fixes the shuffle order so a client can page
// through one permutation; zero draws a new one.
type Query struct {
	State  filter.State
	Sort   ordering.Key
	Seed   uint64
	Limit  int
	Offset int
}

// Page is one page of a list result.
type Page struct {
	Items  []models.Researcher `json:"items"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
	Mode   filter.Mode         `json:"mode"`
	Sort   ordering.Key        `json:"sort"`
	// Seed is set for shuffled pages; pass it back to get the next page.
	Seed uint64 `json:"seed,omitempty"`
}

// CategoryCount is a category with its record count.
type CategoryCount struct {
	Name      string   `json:"name"`
	Count     int      `json:"count"`
	Interests []string `json:"interests"`
}

// InterestCount is a vocabulary term with its frequency.
type InterestCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Service coordinates catalog and index reads.
type Service struct {
	cat    *catalog.Catalog
	db     index.ProfileIndex
	sorter ordering.Sorter
	logger *slog.Logger

	// sortMu guards sorter.Rand, which is not safe for concurrent use. It
	// only draws seeds; each shuffle uses its own seeded generator.
	sortMu sync.Mutex
}

// New creates a Service. db may be nil, in which case lookups and search use
// the snapshot only.
func New(cat *catalog.Catalog, db index.ProfileIndex, sorter ordering.Sorter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cat: cat, db: db, sorter: sorter, logger: logger}
}

// Locale returns the collation locale.
func (s *Service) Locale() language.Tag {
	return s.sorter.Locale
}

// List filters, sorts and paginates the current snapshot. The snapshot's
// records are never reordered; a zero State with the shuffle key yields a
// shuffled copy of the whole dataset, the same one for every call with the
// same Seed.
func (s *Service) List(_ context.Context, q Query) (*Page, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := q.State.Validate(); err != nil {
		return nil, err
	}
	if q.Sort == "" {
		q.Sort = ordering.KeyShuffle
	}

	filtered := filter.Apply(snap.Records, snap.Taxonomy, snap.Categories, q.State)
	sorted, seed := s.sorted(filtered, q.Sort, q.Seed)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := max(q.Offset, 0)

	page := &Page{
		Items:  []models.Researcher{},
		Total:  len(sorted),
		Limit:  limit,
		Offset: offset,
		Mode:   q.State.Mode(),
		Sort:   q.Sort,
		Seed:   seed,
	}
	if offset < len(sorted) {
		page.Items = sorted[offset:min(offset+limit, len(sorted))]
	}
	return page, nil
}

func (s *Service) sorted(records []models.Researcher, key ordering.Key, seed uint64) ([]models.Researcher, uint64) {
	if key != ordering.KeyShuffle {
		return s.sorter.Sorted(records, key), 0
	}
	if seed == 0 {
		seed = s.newSeed()
	}
	sorter := s.sorter
	sorter.Rand = ordering.SeededRand(seed)
	return sorter.Sorted(records, key), seed
}

func (s *Service) newSeed() uint64 {
	if s.sorter.Rand == nil {
		return ordering.NewSeed(nil)
	}
	s.sortMu.Lock()
	defer s.sortMu.Unlock()
	return ordering.NewSeed(s.sorter.Rand)
}

// Get returns a single researcher by exact name.
func (s *Service) Get(_ context.Context, name string) (models.Researcher, error) {
	if s.db != nil {
		r, err := s.db.GetProfile(name)
		if err == nil || !errors.Is(err, apperr.ErrNotFound) {
			return r, err
		}
	}
	snap, err := s.cat.Snapshot()
	if err != nil {
		return models.Researcher{}, err
	}
	r, ok := snap.Researcher(name)
	if !ok {
		return models.Researcher{}, fmt.Errorf("researcher %q: %w", name, apperr.ErrNotFound)
	}
	return r, nil
}

// Search runs a substring search over names, affiliations and interests,
// ordered by name. A blank query returns no hits.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []index.SearchResult{}, nil
	}
	if s.db != nil {
		return s.db.Search(query, limit)
	}
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	hits := ordering.SortByName(searchSnapshot(snap.Records, query), s.sorter.Locale)
	out := make([]index.SearchResult, 0, min(limit, len(hits)))
	for _, r := range hits[:min(limit, len(hits))] {
		out = append(out, index.SearchResult{Name: r.Name, Affiliation: r.Affiliation})
	}
	return out, nil
}

// searchSnapshot matches query as a case-insensitive substring of the same
// fields the index searches: name, affiliation and both interest lists.
func searchSnapshot(records []models.Researcher, query string) []models.Researcher {
	q := strings.ToLower(query)
	var out []models.Researcher
	for _, r := range records {
		fields := append([]string{r.Name, r.Affiliation}, r.Interests...)
		fields = append(fields, r.StandardizedInterests...)
		if slices.ContainsFunc(fields, func(f string) bool {
			return strings.Contains(strings.ToLower(f), q)
		}) {
			out = append(out, r)
		}
	}
	return out
}

// Taxonomy returns the browse tree with aggregate counts.
func (s *Service) Taxonomy(_ context.Context) ([]taxonomy.TrackNode, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	return taxonomy.Tree(snap.Taxonomy, snap.Counts), nil
}

// Categories returns every category in declared order with its count.
func (s *Service) Categories(_ context.Context) ([]CategoryCount, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]CategoryCount, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		out = append(out, CategoryCount{Name: c.Name, Count: snap.CategoryCounts.Get(c.Name), Interests: c.Interests})
	}
	return out, nil
}

// Interests lists a vocabulary. Raw interests are alphabetical; standardized
// interests are by descending frequency.
func (s *Service) Interests(_ context.Context, kind string) ([]InterestCount, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	var terms []string
	var freq map[string]int
	switch kind {
	case KindRaw, "":
		terms, freq = snap.Raw.SortedAlpha(), snap.Raw.Freq
	case KindStandardized:
		terms, freq = snap.Standardized.SortedByFrequency(s.sorter.Locale), snap.Standardized.Freq
	default:
		return nil, fmt.Errorf("%w: unknown interest kind %q", apperr.ErrInvalidFilter, kind)
	}
	out := make([]InterestCount, len(terms))
	for i, t := range terms {
		out[i] = InterestCount{Term: t, Count: freq[t]}
	}
	return out, nil
}

// LocationStats reports map coverage of the whole dataset.
func (s *Service) LocationStats(_ context.Context) (models.LocationStats, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return models.LocationStats{}, err
	}
	return snap.Stats, nil
}

// Markers returns map markers for the records selected by state.
func (s *Service) Markers(_ context.Context, state filter.State) ([]location.Marker, error) {
	snap, err := s.cat.Snapshot()
	if err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return location.Markers(filter.Apply(snap.Records, snap.Taxonomy, snap.Categories, state)), nil
}

// Countries returns located researcher counts per country from the index.
func (s *Service) Countries(_ context.Context) (map[string]int, error) {
	if s.db == nil {
		snap, err := s.cat.Snapshot()
		if err != nil {
			return nil, err
		}
		out := make(map[string]int)
		for _, r := range snap.Records {
			if r.Location != nil {
				out[r.Location.Country]++
			}
		}
		return out, nil
	}
	return s.db.CountByCountry()
}

// Load performs the initial catalog load and index sync.
func (s *Service) Load(ctx context.Context) (*catalog.Snapshot, error) {
	snap, err := s.cat.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap, s.sync(snap)
}

// Reload rebuilds the snapshot after data files changed and re-syncs the index.
// On failure the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context, changed []string) (*catalog.Snapshot, error) {
	snap, err := s.cat.Reload(ctx, changed)
	if errors.Is(err, catalog.ErrUnchanged) {
		s.logger.Debug("reload skipped, content unchanged", slog.Any("files", changed))
		return snap, err
	}
	if err != nil {
		s.logger.Error("reload failed", slog.Any("files", changed), slog.String("error", err.Error()))
		return nil, err
	}
	return snap, s.sync(snap)
}

func (s *Service) sync(snap *catalog.Snapshot) error {
	if s.db == nil {
		return nil
	}
	res, err := index.Sync(s.db, snap.Records, s.logger)
	if err != nil {
		return fmt.Errorf("profileservice: sync index: %w", err)
	}
	s.logger.Info("index synced", slog.Int("upserted", res.Upserted), slog.Int("deleted", res.Deleted))
	return nil
}
