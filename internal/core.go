package internal

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/starford/scholarmap/internal/catalog"
	"github.com/starford/scholarmap/internal/index"
	"github.com/starford/scholarmap/internal/location"
	"github.com/starford/scholarmap/internal/ordering"
	"github.com/starford/scholarmap/internal/profileservice"
	"github.com/starford/scholarmap/internal/storage"
)

// core is the dependency graph shared by every command.
type core struct {
	logger  *slog.Logger
	store   *storage.FS
	db      *index.DB
	catalog *catalog.Catalog
	svc     *profileservice.Service
}

func newApplication(opts []Option) (*application, error) {
	app := &application{out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// locationSource picks the remote table when a URL is configured.
func locationSource(cfg *Config, store storage.Provider) location.Source {
	if cfg.Data.LocationsURL != "" {
		return location.HTTPSource{URL: cfg.Data.LocationsURL, Client: &http.Client{Timeout: 30 * time.Second}}
	}
	return location.FileSource{Store: store, Path: cfg.Data.LocationsFile}
}

func newCore(cfg *Config, logger *slog.Logger) (*core, error) {
	store, err := storage.NewFS(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	locator := location.NewLocator(locationSource(cfg, store), logger)
	cat := catalog.New(store, cfg.Data.Files(), locator, logger)
	svc := profileservice.New(cat, db, ordering.Sorter{Locale: cfg.App.Language()}, logger)

	return &core{logger: logger, store: store, db: db, catalog: cat, svc: svc}, nil
}

func (c *core) Close() error {
	return c.db.Close()
}
