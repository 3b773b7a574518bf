// Package web boots the catalog browser service.
package web

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/observerset/atlasview/internal/catalog"
	"github.com/observerset/atlasview/internal/platform/assets/dataset"
	"github.com/observerset/atlasview/internal/platform/config"
	"github.com/observerset/atlasview/internal/platform/otel"
	"github.com/observerset/atlasview/internal/services/web"
	"github.com/observerset/atlasview/internal/storage"
	"github.com/observerset/atlasview/internal/storage/sqlite"
	"github.com/observerset/atlasview/internal/telemetry"
)

const (
	defaultHTTPAddr = "localhost:8090"
	defaultAppName  = "Satellite Observer Set"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr    string
	AppName     string
	DatasetPath string
}

// ParseConfig parses flags into a Config, with env vars as defaults.
func ParseConfig(fs *flag.FlagSet, args []string, lookup config.EnvLookup) (Config, error) {
	cfg := Config{
		HTTPAddr:    config.EnvOrDefault(lookup, []string{"ATLASVIEW_WEB_HTTP_ADDR"}, defaultHTTPAddr),
		AppName:     config.EnvOrDefault(lookup, []string{"ATLASVIEW_APP_NAME"}, defaultAppName),
		DatasetPath: config.EnvOrDefault(lookup, []string{"ATLASVIEW_DATASET_PATH"}, ""),
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.AppName, "app-name", cfg.AppName, "application display name")
	fs.StringVar(&cfg.DatasetPath, "dataset", cfg.DatasetPath, "CSV file to load instead of the bundled catalog")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run starts the catalog browser server.
func Run(ctx context.Context, cfg Config) error {
	shutdownTracing, err := otel.Setup(ctx, "atlasview-web")
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

	// A dataset that fails to load is not fatal; the browser starts empty
	// and invites an upload instead.
	if err := seedCatalog(ctx, store, cfg.DatasetPath); err != nil {
		log.Printf("seed catalog: %v", err)
	}

	server, err := web.NewServer(web.Config{
		HTTPAddr: cfg.HTTPAddr,
		AppName:  cfg.AppName,
	}, store, telemetry.NewEmitter(store))
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

func seedCatalog(ctx context.Context, store *sqlite.Store, datasetPath string) error {
	var reader io.Reader
	source := dataset.DefaultSource
	if datasetPath != "" {
		file, err := os.Open(datasetPath)
		if err != nil {
			return fmt.Errorf("open dataset: %w", err)
		}
		defer file.Close()
		reader = file
		source = "file:" + datasetPath
	} else {
		reader = dataset.Reader()
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
	log.Printf("catalog seeded from %s: %d rows (%d dropped)", source, report.RowCount, report.DroppedRows)
	return nil
}
