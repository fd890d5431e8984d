//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

// Without FTS5 the case-folded researchers.folded column is scanned with LIKE.
func initFTS(*sql.DB) error { return nil }

func ftsUpsert(*sql.Tx, string, string, string) error { return nil }

func ftsDelete(*sql.Tx, string) {}

// Search matches q as a case-insensitive (full Unicode) substring of name,
// affiliation or interests. Results are ordered by name.
func (db *DB) Search(q string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	rows, err := db.conn.Query(`
		SELECT name, affiliation, substr(body, 1, 200)
		FROM researchers
		WHERE folded LIKE ? ESCAPE '\'
		ORDER BY name
		LIMIT ?`, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanResults(rows)
}
