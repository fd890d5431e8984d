package index

import (
	"database/sql"
	"strings"
	"unicode"
)

const defaultSearchLimit = 20

// ftsQuery turns free text into an FTS5 expression: every word becomes a
// quoted prefix term, so punctuation in user input cannot form operators.
func ftsQuery(q string) string {
	words := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, len(words))
	for i, w := range words {
		terms[i] = `"` + w + `"*`
	}
	return strings.Join(terms, " ")
}

// fold lowercases text for the LIKE fallback. SQLite's own case folding only
// covers ASCII, so both the stored column and the pattern are folded here.
func fold(s string) string {
	return strings.ToLower(s)
}

// likePattern builds a folded substring LIKE pattern with wildcards in q escaped.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(fold(strings.TrimSpace(q))) + "%"
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	defer rows.Close()
	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Name, &r.Affiliation, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
