package index

import (
	"log/slog"

	"github.com/starford/scholarmap/internal/checksum"
	"github.com/starford/scholarmap/internal/models"
)

// SyncResult reports what a Sync pass changed.
type SyncResult struct {
	Upserted int
	Deleted  int
}

// Sync brings the index up to date with records:
//   - new or changed profiles (by document checksum) are upserted
//   - profiles no longer present are deleted
//
// When several records share a name the first one wins, matching the catalog.
func Sync(db ProfileIndex, records []models.Researcher, logger *slog.Logger) (SyncResult, error) {
	var res SyncResult
	checksums, err := db.AllChecksums()
	if err != nil {
		return res, err
	}

	present := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := present[r.Name]; dup {
			logger.Debug("sync: duplicate name skipped", slog.String("name", r.Name))
			continue
		}
		present[r.Name] = struct{}{}

		doc, cs, err := checksum.Document(r)
		if err != nil {
			logger.Warn("sync: encode failed", slog.String("name", r.Name), slog.String("error", err.Error()))
			continue
		}
		if checksums[r.Name] == cs {
			continue
		}
		if err := db.UpsertProfile(RowFor(r, cs), doc); err != nil {
			logger.Warn("sync: index failed", slog.String("name", r.Name), slog.String("error", err.Error()))
			continue
		}
		res.Upserted++
	}

	for name := range checksums {
		if _, ok := present[name]; ok {
			continue
		}
		if err := db.DeleteProfile(name); err != nil {
			logger.Warn("sync: delete failed", slog.String("name", name), slog.String("error", err.Error()))
			continue
		}
		res.Deleted++
	}

	logger.Debug("sync: done", slog.Int("upserted", res.Upserted), slog.Int("deleted", res.Deleted))
	return res, nil
}
