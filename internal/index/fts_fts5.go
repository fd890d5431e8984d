//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

const ftsSchemaSQL = `
CREATE VIRTUAL TABLE IF NOT EXISTS researchers_fts USING fts5(
	name UNINDEXED,
	affiliation,
	body,
	tokenize = 'unicode61 remove_diacritics 2'
);`

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(ftsSchemaSQL)
	return err
}

func ftsUpsert(tx *sql.Tx, name, affiliation, body string) error {
	ftsDelete(tx, name)
	if _, err := tx.Exec(`INSERT INTO researchers_fts (name, affiliation, body) VALUES (?, ?, ?)`,
		name, affiliation, body); err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, name string) {
	_, _ = tx.Exec(`DELETE FROM researchers_fts WHERE name = ?`, name)
}

// Search runs q as prefix terms against the FTS5 table and returns hits with
// highlighted snippets, ordered by name. Matching is per token prefix, so
// "hass" finds "Hassan" but "assan" does not; case and diacritics are folded
// by the unicode61 tokenizer.
func (db *DB) Search(q string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	expr := ftsQuery(q)
	if expr == "" {
		return []SearchResult{}, nil
	}
	rows, err := db.conn.Query(`
		SELECT name, affiliation, snippet(researchers_fts, 2, '<b>', '</b>', '...', 32)
		FROM researchers_fts
		WHERE researchers_fts MATCH ?
		ORDER BY name
		LIMIT ?`, expr, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanResults(rows)
}
