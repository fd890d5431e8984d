package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/scholarmap/internal/apperr"
	"github.com/starford/scholarmap/internal/models"
)

// ProfileRow represents a row in the researchers table.
type ProfileRow struct {
	Name         string
	Affiliation  string
	Position     string
	HIndex       int
	CitedBy      int
	Interests    []string
	Standardized []string
	Country      string
	City         string
	Checksum     string
	UpdatedAt    time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
	Snippet     string `json:"snippet"`
}

// RowFor flattens a researcher into an index row.
func RowFor(r models.Researcher, checksum string) ProfileRow {
	row := ProfileRow{
		Name:         r.Name,
		Affiliation:  r.Affiliation,
		Position:     r.Position,
		HIndex:       r.HIndex,
		CitedBy:      r.CitedBy,
		Interests:    r.Interests,
		Standardized: r.StandardizedInterests,
		Checksum:     checksum,
		UpdatedAt:    time.Now().UTC(),
	}
	if r.Location != nil {
		row.Country = r.Location.Country
		row.City = r.Location.City
	}
	return row
}

// body is the text searched by the LIKE fallback and the FTS table.
func (p ProfileRow) body() string {
	parts := make([]string, 0, 2+len(p.Interests)+len(p.Standardized))
	parts = append(parts, p.Name, p.Affiliation)
	parts = append(parts, p.Interests...)
	parts = append(parts, p.Standardized...)
	return strings.Join(parts, "\n")
}

func marshalTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

// UpsertProfile inserts or replaces a profile and its FTS entry within a transaction.
// doc is the full JSON document returned by GetProfile.
func (db *DB) UpsertProfile(p ProfileRow, doc []byte) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	body := p.body()
	_, err = tx.Exec(`
		INSERT INTO researchers (name, affiliation, position, hindex, citedby, interests, standardized,
		                         country, city, checksum, body, folded, doc, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			affiliation  = excluded.affiliation,
			position     = excluded.position,
			hindex       = excluded.hindex,
			citedby      = excluded.citedby,
			interests    = excluded.interests,
			standardized = excluded.standardized,
			country      = excluded.country,
			city         = excluded.city,
			checksum     = excluded.checksum,
			body         = excluded.body,
			folded       = excluded.folded,
			doc          = excluded.doc,
			updated_at   = excluded.updated_at
	`, p.Name, p.Affiliation, p.Position, p.HIndex, p.CitedBy,
		marshalTags(p.Interests), marshalTags(p.Standardized),
		p.Country, p.City, p.Checksum, body, fold(body), string(doc), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert profile: %w", err)
	}

	// No-op when the FTS5 tag is absent.
	if err := ftsUpsert(tx, p.Name, p.Affiliation, body); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteProfile removes a profile and its FTS entry.
func (db *DB) DeleteProfile(name string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, name)
	if _, err := tx.Exec(`DELETE FROM researchers WHERE name = ?`, name); err != nil {
		return fmt.Errorf("index: delete profile: %w", err)
	}
	return tx.Commit()
}

// GetProfile returns the stored document for name, or apperr.ErrNotFound.
func (db *DB) GetProfile(name string) (models.Researcher, error) {
	var doc string
	err := db.conn.QueryRow(`SELECT doc FROM researchers WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Researcher{}, fmt.Errorf("index: profile %q: %w", name, apperr.ErrNotFound)
	}
	if err != nil {
		return models.Researcher{}, fmt.Errorf("index: get profile: %w", err)
	}
	var r models.Researcher
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return models.Researcher{}, fmt.Errorf("index: decode profile: %w", err)
	}
	return r, nil
}

// AllChecksums returns name → checksum for every indexed profile.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT name, checksum FROM researchers`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var n, cs string
		if err := rows.Scan(&n, &cs); err != nil {
			return nil, err
		}
		out[n] = cs
	}
	return out, rows.Err()
}

// Count returns the number of indexed profiles.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM researchers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

// CountByCountry returns the number of located profiles per country.
func (db *DB) CountByCountry() (map[string]int, error) {
	rows, err := db.conn.Query(`
		SELECT country, count(*) FROM researchers
		WHERE country != ''
		GROUP BY country
	`)
	if err != nil {
		return nil, fmt.Errorf("index: count by country: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[c] = n
	}
	return out, rows.Err()
}
