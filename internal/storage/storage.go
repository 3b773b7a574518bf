// Package storage defines the session catalog persistence contracts.
//
// The catalog has exactly one writer (a successful load) and is read-only
// everywhere else; implementations must replace it wholesale, never
// mutate it in place.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/observerset/atlasview/internal/catalog"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// LoadAudit records one catalog load for the session history.
type LoadAudit struct {
	Source      string
	RowCount    int
	DroppedRows int
	Timestamp   time.Time
}

// CatalogStore persists the session catalog and its load history.
type CatalogStore interface {
	// ReplaceCatalog swaps the active catalog in a single transaction
	// and appends a load-audit record. On error nothing changes.
	ReplaceCatalog(ctx context.Context, c catalog.Catalog, audit LoadAudit) error
	// LoadCatalog returns the active catalog, or ErrNotFound before the
	// first successful load.
	LoadCatalog(ctx context.Context) (catalog.Catalog, error)
	// LoadHistory returns the most recent load audits, newest first.
	LoadHistory(ctx context.Context, limit int) ([]LoadAudit, error)
}

// TelemetryEvent is one operational event.
type TelemetryEvent struct {
	Severity  string
	Name      string
	Detail    string
	Timestamp time.Time
}

// TelemetryStore records operational telemetry events.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}
