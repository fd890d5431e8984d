package profileservice

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/catalog"
	"github.com/starford/scholarmap/internal/filter"
	"github.com/starford/scholarmap/internal/index"
	"github.com/starford/scholarmap/internal/location"
	"github.com/starford/scholarmap/internal/models"
	"github.com/starford/scholarmap/internal/ordering"
	"github.com/starford/scholarmap/internal/testutil"
)

var files = catalog.Files{
	Researchers: testutil.ResearchersFile,
	Categories:  testutil.CategoriesFile,
	Locations:   testutil.LocationsFile,
}

func newService(t *testing.T, withDB bool) (string, *Service) {
	t.Helper()
	dir, store := testutil.Dataset(t)
	loc := location.NewLocator(location.FileSource{Store: store, Path: files.Locations}, testutil.Logger())
	cat := catalog.New(store, files, loc, testutil.Logger())
	var db index.ProfileIndex
	if withDB {
		db = testutil.TestDB(t)
	}
	sorter := ordering.Sorter{Locale: language.English, Rand: rand.New(rand.NewPCG(1, 2))}
	svc := New(cat, db, sorter, testutil.Logger())
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return dir, svc
}

func names(rs []models.Researcher) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestList_NotLoaded(t *testing.T) {
	_, store := testutil.Dataset(t)
	loc := location.NewLocator(location.FileSource{Store: store, Path: files.Locations}, testutil.Logger())
	svc := New(catalog.New(store, files, loc, testutil.Logger()), nil, ordering.Sorter{}, testutil.Logger())
	if _, err := svc.List(context.Background(), Query{}); !errors.Is(err, apperr.ErrNotLoaded) {
		t.Errorf("err = %v, want ErrNotLoaded", err)
	}
}

func TestList_SortAndPaginate(t *testing.T) {
	_, svc := newService(t, false)
	ctx := context.Background()

	page, err := svc.List(ctx, Query{Sort: ordering.KeyHIndex, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 || page.Mode != filter.ModeNone {
		t.Errorf("page = %+v", page)
	}
	if diff := cmp.Diff([]string{"Mona Ali", "Amr Hassan"}, names(page.Items)); diff != "" {
		t.Errorf("page 1 (-want +got):\n%s", diff)
	}

	page, _ = svc.List(ctx, Query{Sort: ordering.KeyHIndex, Limit: 2, Offset: 4})
	if diff := cmp.Diff([]string{"Omar Farouk"}, names(page.Items)); diff != "" {
		t.Errorf("last page (-want +got):\n%s", diff)
	}

	page, _ = svc.List(ctx, Query{Sort: ordering.KeyName, Offset: 10})
	if len(page.Items) != 0 || page.Total != 5 {
		t.Errorf("offset past end = %+v", page)
	}
}

func TestList_ShuffleLeavesSnapshotUntouched(t *testing.T) {
	_, svc := newService(t, false)
	snap := svc.cat.Current()
	before := names(snap.Records)

	page, err := svc.List(context.Background(), Query{State: filter.State{Track: "all"}})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 || page.Sort != ordering.KeyShuffle {
		t.Errorf("page = %+v", page)
	}
	if diff := cmp.Diff(before, names(snap.Records)); diff != "" {
		t.Errorf("snapshot reordered (-before +after):\n%s", diff)
	}
}

func TestList_ShuffledPagesCoverEveryRecordOnce(t *testing.T) {
	_, svc := newService(t, false)
	ctx := context.Background()

	first, err := svc.List(ctx, Query{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if first.Seed == 0 || first.Seed > ordering.MaxSeed {
		t.Fatalf("seed = %d", first.Seed)
	}

	seen := map[string]int{}
	for _, r := range first.Items {
		seen[r.Name]++
	}
	for offset := 2; offset < first.Total; offset += 2 {
		page, err := svc.List(ctx, Query{Limit: 2, Offset: offset, Seed: first.Seed})
		if err != nil {
			t.Fatal(err)
		}
		if page.Seed != first.Seed {
			t.Errorf("page seed = %d, want %d", page.Seed, first.Seed)
		}
		for _, r := range page.Items {
			seen[r.Name]++
		}
	}

	if len(seen) != 5 {
		t.Errorf("pages covered %d distinct records, want 5: %v", len(seen), seen)
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("%s appeared %d times", name, n)
		}
	}
}

func TestList_SameSeedSameOrder(t *testing.T) {
	_, svc := newService(t, false)
	ctx := context.Background()

	a, _ := svc.List(ctx, Query{Seed: 99})
	b, _ := svc.List(ctx, Query{Seed: 99})
	if diff := cmp.Diff(names(a.Items), names(b.Items)); diff != "" {
		t.Errorf("order differs for the same seed (-first +second):\n%s", diff)
	}

	sorted, _ := svc.List(ctx, Query{Sort: ordering.KeyName})
	if sorted.Seed != 0 {
		t.Errorf("non-shuffled page has seed %d", sorted.Seed)
	}
}

func TestList_Filters(t *testing.T) {
	_, svc := newService(t, false)
	ctx := context.Background()

	tests := []struct {
		name  string
		state filter.State
		want  []string
	}{
		{"text", filter.State{Query: "ali"}, []string{"Mona Ali"}},
		{"track", filter.State{Track: "Systems"}, []string{"Omar Farouk", "Sara Nabil"}},
		{"subtrack", filter.State{Track: "AI", Subtrack: "NLP"}, []string{"Mona Ali"}},
		{"area", filter.State{Area: "Cryptography"}, []string{"Omar Farouk", "Sara Nabil"}},
		{"category", filter.State{Category: "Computing"}, []string{"Amr Hassan", "Omar Farouk", "Sara Nabil"}},
		{"unknown category", filter.State{Category: "Biology"}, []string{}},
		{"raw selection", filter.State{RawInterests: map[string]bool{"security": true}}, []string{"Omar Farouk", "Sara Nabil"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(ctx, Query{State: tt.state, Sort: ordering.KeyName})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, names(page.Items)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_ConflictingFilters(t *testing.T) {
	_, svc := newService(t, false)
	_, err := svc.List(context.Background(), Query{State: filter.State{Query: "x", Category: "Computing"}})
	if !errors.Is(err, apperr.ErrInvalidFilter) {
		t.Errorf("err = %v, want ErrInvalidFilter", err)
	}
}

func TestGet(t *testing.T) {
	for _, withDB := range []bool{true, false} {
		_, svc := newService(t, withDB)
		r, err := svc.Get(context.Background(), "Sara Nabil")
		if err != nil {
			t.Fatalf("withDB=%v: %v", withDB, err)
		}
		if r.Location == nil || r.Location.City != "New Cairo" {
			t.Errorf("withDB=%v: location = %v", withDB, r.Location)
		}
		if _, err := svc.Get(context.Background(), "Nobody"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("withDB=%v: err = %v", withDB, err)
		}
	}
}

func TestSearch(t *testing.T) {
	for _, withDB := range []bool{true, false} {
		_, svc := newService(t, withDB)
		hits, err := svc.Search(context.Background(), "cairo", 10)
		if err != nil {
			t.Fatal(err)
		}
		// Affiliations are searched with and without the index.
		if len(hits) != 2 || hits[0].Name != "Amr Hassan" || hits[1].Name != "Sara Nabil" {
			t.Errorf("withDB=%v hits = %+v", withDB, hits)
		}
		hits, _ = svc.Search(context.Background(), "HASS", 10)
		if len(hits) != 1 || hits[0].Name != "Amr Hassan" {
			t.Errorf("withDB=%v case-folded hits = %+v", withDB, hits)
		}
		hits, _ = svc.Search(context.Background(), "  ", 10)
		if len(hits) != 0 {
			t.Error("blank query should return nothing")
		}
	}
}

func TestTaxonomyAndCategories(t *testing.T) {
	_, svc := newService(t, false)
	ctx := context.Background()

	tree, err := svc.Taxonomy(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree) != 2 || tree[0].Name != "Systems" || tree[0].Count != 2 || tree[1].Count != 2 {
		t.Errorf("tree = %+v", tree)
	}
	if tree[0].Subtracks[1].Name != "Security" || tree[0].Subtracks[1].Count != 2 {
		t.Errorf("Systems subtracks = %+v", tree[0].Subtracks)
	}

	cats, _ := svc.Categories(ctx)
	want := []CategoryCount{
		{Name: "Computing", Count: 3, Interests: []string{"Deep Learning", "Wireless", "Cryptography"}},
		{Name: "Language", Count: 1, Interests: []string{"Machine Translation", "Speech", "NLP"}},
	}
	if diff := cmp.Diff(want, cats); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestInterests(t *testing.T) {
	_, svc := newService(t, false)
	ctx := context.Background()

	raw, err := svc.Interests(ctx, KindRaw)
	if err != nil {
		t.Fatal(err)
	}
	wantRaw := []InterestCount{
		{"deep learning", 1}, {"networks", 1}, {"nlp", 1}, {"security", 2}, {"vision", 1},
	}
	if diff := cmp.Diff(wantRaw, raw); diff != "" {
		t.Errorf("raw (-want +got):\n%s", diff)
	}

	std, _ := svc.Interests(ctx, KindStandardized)
	if std[0] != (InterestCount{"Cryptography", 2}) {
		t.Errorf("most frequent standardized = %+v", std[0])
	}

	if _, err := svc.Interests(ctx, "fancy"); !errors.Is(err, apperr.ErrInvalidFilter) {
		t.Errorf("err = %v", err)
	}
}

func TestLocationViews(t *testing.T) {
	_, svc := newService(t, true)
	ctx := context.Background()

	st, _ := svc.LocationStats(ctx)
	if st.Mapped != 3 || st.DistinctCountries() != 2 {
		t.Errorf("stats = %+v", st)
	}

	markers, err := svc.Markers(ctx, filter.State{})
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 3 {
		t.Errorf("markers = %+v", markers)
	}

	markers, _ = svc.Markers(ctx, filter.State{Track: "Systems"})
	if len(markers) != 1 || markers[0].City != "New Cairo" {
		t.Errorf("Systems markers = %+v", markers)
	}

	countries, _ := svc.Countries(ctx)
	if diff := cmp.Diff(map[string]int{"Egypt": 2, "USA": 1}, countries); diff != "" {
		t.Errorf("countries (-want +got):\n%s", diff)
	}
}

func TestReload_ResyncsIndex(t *testing.T) {
	dir, svc := newService(t, true)
	testutil.WriteFile(t, dir, testutil.ResearchersFile,
		`[{"name": "Nour Adel", "affiliation": "MIT", "standardized_interests": ["Speech"]}]`)

	snap, err := svc.Reload(context.Background(), []string{testutil.ResearchersFile})
	if err != nil {
		t.Fatal(err)
	}
	if snap.Len() != 1 || snap.Counts.Get("NLP") != 1 {
		t.Errorf("snapshot = %d records, NLP=%d", snap.Len(), snap.Counts.Get("NLP"))
	}
	if _, err := svc.Get(context.Background(), "Amr Hassan"); !errors.Is(err, apperr.ErrNotFound) {
		t.Error("removed researcher still served")
	}
	r, err := svc.Get(context.Background(), "Nour Adel")
	if err != nil || r.Location == nil {
		t.Errorf("Nour Adel = %+v, %v", r, err)
	}
}
