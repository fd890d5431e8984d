package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/starford/scholarmap/internal/mcpserver"
	"github.com/starford/scholarmap/internal/models"
)

// RunMCP serves the MCP tools over stdio. Logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, app.config.App.LogLevel)

	c, err := newCore(app.config, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if _, err := c.svc.Load(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("MCP server starting on stdio")
	return mcpserver.New(c.svc).ServeStdio()
}

// ExportDocument is the enriched dataset written by Export.
type ExportDocument struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Stats       models.LocationStats `json:"stats"`
	Researchers []models.Researcher  `json:"researchers"`
}

// Export writes the enriched records and location stats to path, relative to the data dir.
func Export(ctx context.Context, path string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, app.config.App.LogLevel)

	c, err := newCore(app.config, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	snap, err := c.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	doc := ExportDocument{
		GeneratedAt: snap.LoadedAt.UTC(),
		Stats:       snap.Stats,
		Researchers: snap.Records,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := c.store.Write(path, data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	logger.Info("export written",
		slog.String("path", path),
		slog.Int("researchers", snap.Len()),
		slog.Int("mapped", snap.Stats.Mapped))
	_, err = fmt.Fprintf(app.out, "wrote %d researchers (%d mapped) to %s\n", snap.Len(), snap.Stats.Mapped, path)
	return err
}

// Stats prints location coverage and per-category counts.
func Stats(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, app.config.App.LogLevel)

	c, err := newCore(app.config, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	snap, err := c.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "researchers\t%d\n", snap.Stats.Total)
	fmt.Fprintf(tw, "mapped\t%d\n", snap.Stats.Mapped)
	fmt.Fprintf(tw, "countries\t%d\n", snap.Stats.DistinctCountries())
	for _, name := range snap.Categories.Names() {
		fmt.Fprintf(tw, "category %s\t%d\n", name, snap.CategoryCounts.Get(name))
	}
	return tw.Flush()
}
