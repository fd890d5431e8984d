// Package index provides a SQLite-backed researcher profile index with optional
// FTS5 full-text search.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS researchers (
	name         TEXT PRIMARY KEY,
	affiliation  TEXT NOT NULL DEFAULT '',
	position     TEXT NOT NULL DEFAULT '',
	hindex       INTEGER NOT NULL DEFAULT 0,
	citedby      INTEGER NOT NULL DEFAULT 0,
	interests    TEXT NOT NULL DEFAULT '[]',
	standardized TEXT NOT NULL DEFAULT '[]',
	country      TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	checksum     TEXT NOT NULL DEFAULT '',
	body         TEXT NOT NULL DEFAULT '',
	folded       TEXT NOT NULL DEFAULT '',
	doc          TEXT NOT NULL DEFAULT '{}',
	updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_researchers_country ON researchers(country);
`

// schemaVersion is bumped whenever the table layout changes. The index is
// derived from the data files, so an outdated one is dropped and rebuilt.
const schemaVersion = 3

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn: conn}, nil
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("index: read schema version: %w", err)
	}
	if version != 0 && version != schemaVersion {
		for _, table := range []string{"researchers_fts", "researchers"} {
			if _, err := conn.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
				return fmt.Errorf("index: drop %s: %w", table, err)
			}
		}
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		return fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		return fmt.Errorf("index: apply fts schema: %w", err)
	}
	if _, err := conn.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		return fmt.Errorf("index: write schema version: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
