// Package interest derives the interest vocabularies present in a dataset.
package interest

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/starford/scholarmap/internal/models"
)

// Vocabulary is the set of distinct tags seen in a collection and how often each occurs.
type Vocabulary struct {
	Present map[string]bool `json:"present"`
	Freq    map[string]int  `json:"freq"`
}

// ExtractRaw collects the free-text interests of every record. Repeats across
// records count separately.
func ExtractRaw(records []models.Researcher) Vocabulary {
	v := newVocabulary()
	for _, r := range records {
		for _, tag := range r.Interests {
			v.add(tag)
		}
	}
	return v
}

// ExtractStandardized collects standardized interests, skipping blank entries.
func ExtractStandardized(records []models.Researcher) Vocabulary {
	v := newVocabulary()
	for _, r := range records {
		for _, tag := range r.StandardizedInterests {
			if strings.TrimSpace(tag) == "" {
				continue
			}
			v.add(tag)
		}
	}
	return v
}

func newVocabulary() Vocabulary {
	return Vocabulary{Present: map[string]bool{}, Freq: map[string]int{}}
}

func (v Vocabulary) add(tag string) {
	v.Present[tag] = true
	v.Freq[tag]++
}

// Len returns the number of distinct tags.
func (v Vocabulary) Len() int {
	return len(v.Present)
}

// Selection returns a fresh selection map with every tag checked.
func (v Vocabulary) Selection() map[string]bool {
	sel := make(map[string]bool, len(v.Present))
	for tag := range v.Present {
		sel[tag] = true
	}
	return sel
}

// SortedAlpha returns tags in plain alphabetical order. Used for raw interests.
func (v Vocabulary) SortedAlpha() []string {
	tags := v.tags()
	slices.Sort(tags)
	return tags
}

// SortedByFrequency returns tags by descending frequency, ties broken by
// locale-aware collation and then by byte order, since the collator treats
// strings differing only in ignorable code points as equal. Used for
// standardized interests.
func (v Vocabulary) SortedByFrequency(locale language.Tag) []string {
	tags := v.tags()
	c := collate.New(locale)
	slices.SortFunc(tags, func(a, b string) int {
		if d := v.Freq[b] - v.Freq[a]; d != 0 {
			return d
		}
		if d := c.CompareString(a, b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	return tags
}

func (v Vocabulary) tags() []string {
	tags := make([]string, 0, len(v.Present))
	for tag := range v.Present {
		tags = append(tags, tag)
	}
	return tags
}
