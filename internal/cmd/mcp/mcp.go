// Package mcp boots the catalog MCP server over stdio.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/observerset/atlasview/internal/catalog"
	"github.com/observerset/atlasview/internal/platform/assets/dataset"
	"github.com/observerset/atlasview/internal/platform/config"
	"github.com/observerset/atlasview/internal/platform/otel"
	"github.com/observerset/atlasview/internal/services/mcp/service"
	"github.com/observerset/atlasview/internal/storage"
	"github.com/observerset/atlasview/internal/storage/sqlite"
)

// Config holds the MCP command configuration.
type Config struct {
	DatasetPath string
}

// ParseConfig parses flags into a Config, with env vars as defaults.
func ParseConfig(fs *flag.FlagSet, args []string, lookup config.EnvLookup) (Config, error) {
	cfg := Config{
		DatasetPath: config.EnvOrDefault(lookup, []string{"ATLASVIEW_DATASET_PATH"}, ""),
	}

	fs.StringVar(&cfg.DatasetPath, "dataset", cfg.DatasetPath, "CSV file to serve instead of the bundled catalog")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run serves the catalog over an MCP stdio transport until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "atlasview-mcp")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(sqlite.MemoryDSN)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	// Unlike the web service, MCP has no upload path, so a catalog that
	// fails to load leaves nothing to serve.
	if err := seedCatalog(ctx, store, cfg.DatasetPath); err != nil {
		return err
	}

	server, err := service.NewServer(store)
	if err != nil {
		return fmt.Errorf("init mcp server: %w", err)
	}

	if err := server.ServeStdio(ctx); err != nil {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

func seedCatalog(ctx context.Context, store *sqlite.Store, datasetPath string) error {
	reader := dataset.Reader()
	source := dataset.DefaultSource
	if datasetPath != "" {
		file, err := os.Open(datasetPath)
		if err != nil {
			return fmt.Errorf("open dataset: %w", err)
		}
		defer file.Close()
		reader = file
		source = "file:" + datasetPath
	}

	c, report, err := catalog.Load(reader)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", source, err)
	}

	audit := storage.LoadAudit{
		Source:      source,
		RowCount:    report.RowCount,
		DroppedRows: report.DroppedRows,
	}
	if err := store.ReplaceCatalog(ctx, c, audit); err != nil {
		return fmt.Errorf("store dataset: %w", err)
	}
	return nil
}
