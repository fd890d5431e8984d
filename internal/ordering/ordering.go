// Package ordering reorders researcher collections.
//
// The Sort* functions and Shuffle work in place and return the same slice.
// Callers that need the original order intact use Sorted, which clones first.
package ordering

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/starford/scholarmap/internal/models"
)

// Key names a sort order.
type Key string

// Supported sort keys.
const (
	KeyShuffle   Key = "shuffle"
	KeyName      Key = "az"
	KeyHIndex    Key = "hindex"
	KeyCitations Key = "citations"
)

// ParseKey maps a user-supplied key; an empty string selects KeyShuffle.
func ParseKey(s string) (Key, error) {
	switch k := Key(s); k {
	case "":
		return KeyShuffle, nil
	case KeyShuffle, KeyName, KeyHIndex, KeyCitations:
		return k, nil
	}
	return "", fmt.Errorf("ordering: unknown sort key %q", s)
}

// SortByName sorts ascending by name using collation rules for locale.
func SortByName(records []models.Researcher, locale language.Tag) []models.Researcher {
	c := collate.New(locale)
	slices.SortStableFunc(records, func(a, b models.Researcher) int {
		return c.CompareString(a.Name, b.Name)
	})
	return records
}

// SortByHIndex sorts by descending h-index. Ties keep their relative order.
func SortByHIndex(records []models.Researcher) []models.Researcher {
	slices.SortStableFunc(records, func(a, b models.Researcher) int {
		return cmp.Compare(b.HIndex, a.HIndex)
	})
	return records
}

// SortByCitations sorts by descending citation count. Ties keep their relative order.
func SortByCitations(records []models.Researcher) []models.Researcher {
	slices.SortStableFunc(records, func(a, b models.Researcher) int {
		return cmp.Compare(b.CitedBy, a.CitedBy)
	})
	return records
}

// Shuffle applies a Fisher–Yates shuffle using rng. A nil rng uses the
// package-level source.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(items) - 1; i > 0; i-- {
		j := intN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// MaxSeed bounds shuffle seeds so they survive a round trip through JSON numbers.
const MaxSeed = 1<<53 - 1

// NewSeed draws a shuffle seed in [1, MaxSeed] from rng, or from the
// package-level source when rng is nil.
func NewSeed(rng *rand.Rand) uint64 {
	draw := rand.Uint64
	if rng != nil {
		draw = rng.Uint64
	}
	return draw()%MaxSeed + 1
}

// SeededRand returns a generator whose sequence is fully determined by seed.
func SeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sorter applies a Key with a fixed locale and random source.
type Sorter struct {
	Locale language.Tag
	Rand   *rand.Rand
}

// Sort reorders records in place by key.
func (s Sorter) Sort(records []models.Researcher, key Key) []models.Researcher {
	switch key {
	case KeyName:
		return SortByName(records, s.Locale)
	case KeyHIndex:
		return SortByHIndex(records)
	case KeyCitations:
		return SortByCitations(records)
	default:
		return Shuffle(records, s.Rand)
	}
}

// Sorted returns a reordered copy, leaving records untouched.
func (s Sorter) Sorted(records []models.Researcher, key Key) []models.Researcher {
	return s.Sort(slices.Clone(records), key)
}
