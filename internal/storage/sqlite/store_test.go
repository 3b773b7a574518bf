package sqlite

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/observerset/atlasview/internal/catalog"
	"github.com/observerset/atlasview/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	input := "NORAD_ID,COSPAR_ID,Name,Operator,Launch_Date_UTC,Apogee_km\n" +
		"25544,1998-067A,ISS,NASA,1998-11-20,420\n" +
		"20580,1990-037B,Hubble,NASA,1990-04-24,540\n"
	c, _, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load test catalog: %v", err)
	}
	return c
}

func TestLoadCatalogBeforeFirstLoad(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadCatalog(context.Background())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceAndLoadCatalog(t *testing.T) {
	store := openTestStore(t)
	c := testCatalog(t)

	audit := storage.LoadAudit{Source: "bundled", RowCount: 2, DroppedRows: 0}
	if err := store.ReplaceCatalog(context.Background(), c, audit); err != nil {
		t.Fatalf("replace catalog: %v", err)
	}

	loaded, err := store.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if !reflect.DeepEqual(loaded.Columns, c.Columns) {
		t.Fatalf("columns mismatch: %v vs %v", loaded.Columns, c.Columns)
	}
	if !reflect.DeepEqual(loaded.Rows, c.Rows) {
		t.Fatalf("rows mismatch:\n%+v\nvs\n%+v", loaded.Rows, c.Rows)
	}
	if loaded.Rows[0].LaunchDate.IsZero() {
		t.Fatal("launch date lost in round trip")
	}
	if value, ok := loaded.Rows[0].Value("Apogee_km"); !ok || value != "420" {
		t.Fatalf("extras lost in round trip: %q ok=%v", value, ok)
	}
}

func TestReplaceCatalogIsWholesale(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := testCatalog(t)
	if err := store.ReplaceCatalog(ctx, first, storage.LoadAudit{Source: "bundled", RowCount: 2}); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	input := "NORAD_ID,Name\n43013,NOAA-20\n"
	second, _, err := catalog.Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load second: %v", err)
	}
	if err := store.ReplaceCatalog(ctx, second, storage.LoadAudit{Source: "upload", RowCount: 1}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	loaded, err := store.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if loaded.Len() != 1 || loaded.Rows[0].Name != "NOAA-20" {
		t.Fatalf("expected wholesale replacement, got %+v", loaded.Rows)
	}
}

func TestLoadHistoryNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	c := testCatalog(t)

	for _, source := range []string{"bundled", "upload-1", "upload-2"} {
		audit := storage.LoadAudit{Source: source, RowCount: c.Len(), Timestamp: time.Now().UTC()}
		if err := store.ReplaceCatalog(ctx, c, audit); err != nil {
			t.Fatalf("replace %s: %v", source, err)
		}
	}

	history, err := store.LoadHistory(ctx, 2)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 audits, got %d", len(history))
	}
	if history[0].Source != "upload-2" || history[1].Source != "upload-1" {
		t.Fatalf("expected newest first, got %v", history)
	}
}

func TestAppendTelemetryEvent(t *testing.T) {
	store := openTestStore(t)

	evt := storage.TelemetryEvent{Severity: "INFO", Name: "catalog.load", Detail: "2 rows"}
	if err := store.AppendTelemetryEvent(context.Background(), evt); err != nil {
		t.Fatalf("append telemetry: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.ReplaceCatalog(ctx, testCatalog(t), storage.LoadAudit{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if _, err := store.LoadCatalog(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
