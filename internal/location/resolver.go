// Package location maps free-text affiliations onto geocoded places and
// attaches them to researcher records.
package location

import (
	"cmp"
	"slices"
	"strings"

	"github.com/starford/scholarmap/internal/models"
)

// Table maps an affiliation key to its location.
type Table map[string]models.Location

// Tier identifies which matching strategy produced a hit.
type Tier int

// Matching strategies in the order they are tried.
const (
	TierNone Tier = iota
	TierExact
	TierTrimmed
	TierContainsKey
	TierContainsAffiliation
)

func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierTrimmed:
		return "trimmed"
	case TierContainsKey:
		return "contains_key"
	case TierContainsAffiliation:
		return "contains_affiliation"
	}
	return "none"
}

// Match is a successful resolution.
type Match struct {
	Key      string
	Location models.Location
	Tier     Tier
}

type strategy struct {
	tier  Tier
	match func(r *Resolver, affiliation string) (string, bool)
}

var strategies = []strategy{
	{TierExact, (*Resolver).exact},
	{TierTrimmed, (*Resolver).trimmed},
	{TierContainsKey, (*Resolver).containsKey},
	{TierContainsAffiliation, (*Resolver).containsAffiliation},
}

// Resolver resolves affiliations against a fixed Table. It is safe for
// concurrent use once built.
type Resolver struct {
	table Table
	// keys is ordered by descending length, equal lengths in ascending byte order.
	keys  []string
	lower []string
}

// NewResolver indexes table. Keys that are blank after trimming are ignored
// by the substring tiers since they would match every affiliation.
func NewResolver(table Table) *Resolver {
	if table == nil {
		table = Table{}
	}
	keys := make([]string, 0, len(table))
	for k := range table {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if d := cmp.Compare(len(b), len(a)); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	lower := make([]string, len(keys))
	for i, k := range keys {
		lower[i] = strings.ToLower(k)
	}
	return &Resolver{table: table, keys: keys, lower: lower}
}

// Len returns the number of table entries.
func (r *Resolver) Len() int {
	return len(r.table)
}

// Resolvable reports whether an affiliation is worth looking up at all.
// Empty values and the "nan" placeholder are not.
func Resolvable(affiliation string) bool {
	return affiliation != "" && affiliation != "nan"
}

// Resolve tries every tier in order and returns the first hit.
func (r *Resolver) Resolve(affiliation string) (Match, bool) {
	if !Resolvable(affiliation) {
		return Match{}, false
	}
	for _, s := range strategies {
		if key, ok := s.match(r, affiliation); ok {
			return Match{Key: key, Location: r.table[key], Tier: s.tier}, true
		}
	}
	return Match{}, false
}

// Try runs a single tier.
func (r *Resolver) Try(tier Tier, affiliation string) (Match, bool) {
	if !Resolvable(affiliation) {
		return Match{}, false
	}
	for _, s := range strategies {
		if s.tier != tier {
			continue
		}
		if key, ok := s.match(r, affiliation); ok {
			return Match{Key: key, Location: r.table[key], Tier: tier}, true
		}
	}
	return Match{}, false
}

func (r *Resolver) exact(affiliation string) (string, bool) {
	_, ok := r.table[affiliation]
	return affiliation, ok
}

func (r *Resolver) trimmed(affiliation string) (string, bool) {
	key := strings.TrimSpace(affiliation)
	_, ok := r.table[key]
	return key, ok
}

// containsKey returns the longest key contained in the affiliation.
func (r *Resolver) containsKey(affiliation string) (string, bool) {
	aff := strings.ToLower(affiliation)
	for i, k := range r.lower {
		if strings.Contains(aff, k) {
			return r.keys[i], true
		}
	}
	return "", false
}

// containsAffiliation returns the longest key containing the affiliation.
func (r *Resolver) containsAffiliation(affiliation string) (string, bool) {
	aff := strings.ToLower(affiliation)
	for i, k := range r.lower {
		if strings.Contains(k, aff) {
			return r.keys[i], true
		}
	}
	return "", false
}
