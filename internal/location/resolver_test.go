package location

import (
	"testing"

	"github.com/starford/scholarmap/internal/models"
)

var (
	mitShort = models.Location{Lat: 42.36, Lng: -71.09, City: "Cambridge", Country: "USA"}
	mitLong  = models.Location{Lat: 42.3601, Lng: -71.0942, City: "Cambridge, MA", Country: "USA"}
	cairo    = models.Location{Lat: 30.02, Lng: 31.21, City: "Giza", Country: "Egypt"}
	auc      = models.Location{Lat: 30.02, Lng: 31.50, City: "New Cairo", Country: "Egypt"}
)

func TestResolve_ExactBeatsShorterSubstring(t *testing.T) {
	r := NewResolver(Table{
		"MIT": mitShort,
		"Massachusetts Institute of Technology, USA": mitLong,
	})
	m, ok := r.Resolve("Massachusetts Institute of Technology, USA")
	if !ok || m.Location != mitLong || m.Tier != TierExact {
		t.Errorf("Resolve = %+v, %v; want exact hit on the long key", m, ok)
	}
}

func TestResolve_ContainsPrefersLongerKey(t *testing.T) {
	r := NewResolver(Table{
		"MIT":         mitShort,
		"CS, MIT":     mitLong,
		"Unrelated U": cairo,
	})
	m, ok := r.Resolve("Dept. of CS, MIT")
	if !ok || m.Key != "CS, MIT" || m.Tier != TierContainsKey {
		t.Errorf("Resolve = %+v, %v; want longer contained key", m, ok)
	}

	r = NewResolver(Table{"MIT": mitShort, "Stanford University": cairo})
	m, ok = r.Resolve("Dept. of CS, MIT")
	if !ok || m.Key != "MIT" || m.Location != mitShort {
		t.Errorf("Resolve = %+v, %v; want fallback to MIT", m, ok)
	}
}

func TestResolve_Tiers(t *testing.T) {
	r := NewResolver(Table{
		"Cairo University":                  cairo,
		"The American University in Cairo": auc,
	})
	tests := []struct {
		name     string
		in       string
		wantKey  string
		wantTier Tier
	}{
		{"exact", "Cairo University", "Cairo University", TierExact},
		{"trimmed", "  Cairo University\n", "Cairo University", TierTrimmed},
		{"contains key case-insensitive", "faculty of engineering, CAIRO UNIVERSITY", "Cairo University", TierContainsKey},
		{"affiliation inside key", "american university", "The American University in Cairo", TierContainsAffiliation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := r.Resolve(tt.in)
			if !ok {
				t.Fatalf("Resolve(%q) found nothing", tt.in)
			}
			if m.Key != tt.wantKey || m.Tier != tt.wantTier {
				t.Errorf("Resolve(%q) = %s via %s, want %s via %s", tt.in, m.Key, m.Tier, tt.wantKey, tt.wantTier)
			}
		})
	}
}

func TestResolve_Unresolvable(t *testing.T) {
	r := NewResolver(Table{"nan": cairo, "": auc, "Cairo": cairo})
	for _, in := range []string{"", "nan"} {
		if m, ok := r.Resolve(in); ok {
			t.Errorf("Resolve(%q) = %+v, want no lookup", in, m)
		}
	}
	if _, ok := r.Resolve("Helwan University"); ok {
		t.Error("unrelated affiliation should not resolve")
	}
}

func TestResolve_EqualLengthKeysDeterministic(t *testing.T) {
	// Both four-letter keys are contained; ascending byte order breaks the tie.
	table := Table{"BBBB": cairo, "AAAA": auc}
	for range 20 {
		m, ok := NewResolver(table).Resolve("xx AAAA BBBB xx")
		if !ok || m.Key != "AAAA" {
			t.Fatalf("Resolve = %+v, want AAAA", m)
		}
	}
}

func TestTry_SingleTier(t *testing.T) {
	r := NewResolver(Table{"Cairo University": cairo})
	if _, ok := r.Try(TierExact, " Cairo University"); ok {
		t.Error("exact tier should not trim")
	}
	if m, ok := r.Try(TierTrimmed, " Cairo University"); !ok || m.Tier != TierTrimmed {
		t.Errorf("trimmed tier = %+v, %v", m, ok)
	}
	if _, ok := r.Try(TierContainsAffiliation, "Cairo University, Giza"); ok {
		t.Error("reverse containment should not match a longer affiliation")
	}
}

func TestTierString(t *testing.T) {
	if TierContainsKey.String() != "contains_key" || TierNone.String() != "none" {
		t.Error("unexpected tier names")
	}
}
