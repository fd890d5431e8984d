package taxonomy

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/scholarmap/internal/models"
)

func sampleTaxonomy() *Taxonomy {
	return New([]Track{
		{Name: "Artificial Intelligence", Subtracks: []Subtrack{
			{Name: "Machine Learning", Areas: []string{"Deep Learning", "Reinforcement Learning"}},
			{Name: "Natural Language Processing", Areas: []string{"Machine Translation", "Arabic NLP"}},
		}},
		{Name: "Systems", Subtracks: []Subtrack{
			{Name: "Networking", Areas: []string{"Wireless Networks"}},
			{Name: "Security", Areas: []string{"Cryptography"}},
		}},
	}, []string{"Systems", "Artificial Intelligence"})
}

func researcher(name string, std ...string) models.Researcher {
	return models.Researcher{Name: name, StandardizedInterests: std}
}

func TestTracks_DisplayOrder(t *testing.T) {
	tax := sampleTaxonomy()
	if diff := cmp.Diff([]string{"Systems", "Artificial Intelligence"}, tax.Tracks()); diff != "" {
		t.Errorf("Tracks() mismatch (-want +got):\n%s", diff)
	}

	noOrder := New(tax.Declared(), nil)
	if diff := cmp.Diff([]string{"Artificial Intelligence", "Systems"}, noOrder.Tracks()); diff != "" {
		t.Errorf("declared order fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestSubtracksAndAreas(t *testing.T) {
	tax := sampleTaxonomy()
	if diff := cmp.Diff([]string{"Machine Learning", "Natural Language Processing"}, tax.Subtracks("Artificial Intelligence")); diff != "" {
		t.Errorf("Subtracks mismatch (-want +got):\n%s", diff)
	}
	if got := tax.Subtracks("Biology"); got != nil {
		t.Errorf("unknown track subtracks = %v, want nil", got)
	}
	areas, ok := tax.Areas("Systems", "Security")
	if !ok || len(areas) != 1 || areas[0] != "Cryptography" {
		t.Errorf("Areas = %v, %v", areas, ok)
	}
	if _, ok := tax.Areas("Systems", "Machine Learning"); ok {
		t.Error("subtrack under the wrong track should not resolve")
	}
}

func TestMatchesSubtrack(t *testing.T) {
	areas := []string{"Deep Learning", "Reinforcement Learning"}
	tests := []struct {
		name string
		tags []string
		want bool
	}{
		{"area tag", []string{"Deep Learning"}, true},
		{"subtrack name as tag", []string{"Machine Learning"}, true},
		{"unrelated", []string{"Cryptography"}, false},
		{"no tags", nil, false},
		{"case sensitive", []string{"deep learning"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesSubtrack(tt.tags, "Machine Learning", areas); got != tt.want {
				t.Errorf("MatchesSubtrack(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestCount_TrackIsNotSumOfSubtracks(t *testing.T) {
	tax := sampleTaxonomy()
	records := []models.Researcher{
		researcher("a", "Deep Learning", "Arabic NLP"),
		researcher("b", "Machine Learning"),
		researcher("c", "Cryptography"),
		researcher("d"),
		researcher("e", "Quantum Computing"),
	}
	counts := Count(records, tax)

	want := map[string]int{
		"Deep Learning":               1,
		"Arabic NLP":                  1,
		"Cryptography":                1,
		"Quantum Computing":           1,
		"Machine Learning":            2,
		"Natural Language Processing": 1,
		"Networking":                  0,
		"Security":                    1,
		"Artificial Intelligence":     2,
		"Systems":                     1,
	}
	if diff := cmp.Diff(want, map[string]int(counts)); diff != "" {
		t.Errorf("Count mismatch (-want +got):\n%s", diff)
	}
}

func TestCount_TrackEqualsMatchingRecords(t *testing.T) {
	tax := sampleTaxonomy()
	records := []models.Researcher{
		researcher("a", "Deep Learning", "Machine Translation", "Wireless Networks"),
		researcher("b", "Natural Language Processing", "Security"),
		researcher("c", "Reinforcement Learning"),
		researcher("d", "Cryptography", "Cryptography"),
	}
	counts := Count(records, tax)
	for _, tr := range tax.Declared() {
		want := 0
		for _, r := range records {
			if NewTagSet(r.StandardizedInterests).MatchesTrack(tr) {
				want++
			}
		}
		if counts[tr.Name] != want {
			t.Errorf("count[%s] = %d, want %d", tr.Name, counts[tr.Name], want)
		}
	}
	if counts["Cryptography"] != 2 {
		t.Errorf("direct occurrences should count repeats, got %d", counts["Cryptography"])
	}
}

func TestCountCategories_MayDoubleCount(t *testing.T) {
	cats := Categories{
		{Name: "AI", Interests: []string{"Deep Learning", "Arabic NLP"}},
		{Name: "Language", Interests: []string{"Arabic NLP"}},
		{Name: "Empty", Interests: nil},
	}
	records := []models.Researcher{
		researcher("a", "Arabic NLP"),
		researcher("b", "Deep Learning", "Arabic NLP"),
		researcher("c"),
	}
	got := CountCategories(records, cats)
	want := Counts{"AI": 2, "Language": 2, "Empty": 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CountCategories mismatch (-want +got):\n%s", diff)
	}
}

func TestTree(t *testing.T) {
	tax := New(sampleTaxonomy().Declared(), []string{"Systems", "Ghost"})
	counts := Counts{"Systems": 3, "Networking": 2, "Wireless Networks": 2}
	tree := Tree(tax, counts)
	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].Name != "Systems" || tree[0].Count != 3 {
		t.Errorf("tree[0] = %+v", tree[0])
	}
	if got := tree[0].Subtracks[0].Areas[0]; got.Name != "Wireless Networks" || got.Count != 2 {
		t.Errorf("area node = %+v", got)
	}
	if tree[0].Subtracks[1].Count != 0 {
		t.Errorf("missing count should default to 0, got %d", tree[0].Subtracks[1].Count)
	}
	if tree[1].Name != "Ghost" || len(tree[1].Subtracks) != 0 {
		t.Errorf("unknown display track = %+v", tree[1])
	}
}

func TestMatchSets(t *testing.T) {
	tax := sampleTaxonomy()
	tr, _ := tax.Track("Systems")
	m := TrackMatchSet(tr)
	if m.Terms() != 4 {
		t.Errorf("track match-set terms = %d, want 4", m.Terms())
	}
	if !m.Contains([]string{"Security"}) || m.Contains([]string{"Deep Learning"}) {
		t.Error("track match-set membership wrong")
	}
	s := SubtrackMatchSet("Security", []string{"Cryptography"})
	if !s.Contains([]string{"Security"}) || !s.Contains([]string{"x", "Cryptography"}) {
		t.Error("subtrack match-set should hold its own name and areas")
	}
}
