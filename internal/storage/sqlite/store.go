// Package sqlite provides the SQLite-backed session catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/observerset/atlasview/internal/catalog"
	sqlitemigrate "github.com/observerset/atlasview/internal/platform/storage/sqlitemigrate"
	"github.com/observerset/atlasview/internal/storage"
	"github.com/observerset/atlasview/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the whole store inside the process: the session ends,
// the catalog is gone.
const MemoryDSN = ":memory:"

// Store persists the session catalog in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog store and applies embedded migrations.
// An empty dsn defaults to the in-memory database.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = MemoryDSN
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Every pooled connection to ":memory:" would get its own empty
	// database, so the pool is pinned to a single connection.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReplaceCatalog swaps the active catalog wholesale inside one
// transaction and appends a load-audit record. A failed replace leaves
// the previous catalog untouched.
func (s *Store) ReplaceCatalog(ctx context.Context, c catalog.Catalog, audit storage.LoadAudit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_rows"); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_columns"); err != nil {
		return fmt.Errorf("clear columns: %w", err)
	}

	for i, name := range c.Columns {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO catalog_columns (position, name) VALUES (?, ?)", i, name,
		); err != nil {
			return fmt.Errorf("insert column %q: %w", name, err)
		}
	}

	for i, row := range c.Rows {
		extras := "{}"
		if len(row.Extras) > 0 {
			encoded, err := json.Marshal(row.Extras)
			if err != nil {
				return fmt.Errorf("encode extras for row %d: %w", i, err)
			}
			extras = string(encoded)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_rows (
			   position, norad_id, cospar_id, name, operator, mission_type,
			   location, tle_available, view_utility, launch_date_raw,
			   launch_date, notes, extras
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, row.NoradID, row.CosparID, row.Name, row.Operator, row.MissionType,
			row.Location, row.TLEAvailable, row.ViewUtility, row.LaunchDateRaw,
			toMillis(row.LaunchDate), row.Notes, extras,
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	timestamp := audit.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO catalog_loads (source, row_count, dropped_rows, created_at) VALUES (?, ?, ?, ?)",
		audit.Source, audit.RowCount, audit.DroppedRows, toMillis(timestamp),
	); err != nil {
		return fmt.Errorf("record load audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// LoadCatalog returns the active catalog in source order, or
// storage.ErrNotFound before the first successful load.
func (s *Store) LoadCatalog(ctx context.Context) (catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Catalog{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.Catalog{}, fmt.Errorf("storage is not configured")
	}

	columnRows, err := s.sqlDB.QueryContext(ctx,
		"SELECT name FROM catalog_columns ORDER BY position",
	)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("query columns: %w", err)
	}
	defer func() { _ = columnRows.Close() }()

	var result catalog.Catalog
	for columnRows.Next() {
		var name string
		if err := columnRows.Scan(&name); err != nil {
			return catalog.Catalog{}, fmt.Errorf("scan column: %w", err)
		}
		result.Columns = append(result.Columns, name)
	}
	if err := columnRows.Err(); err != nil {
		return catalog.Catalog{}, fmt.Errorf("iterate columns: %w", err)
	}
	if len(result.Columns) == 0 {
		return catalog.Catalog{}, storage.ErrNotFound
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT norad_id, cospar_id, name, operator, mission_type, location,
		        tle_available, view_utility, launch_date_raw, launch_date,
		        notes, extras
		 FROM catalog_rows ORDER BY position`,
	)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("query rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var row catalog.Row
		var launchMillis int64
		var extras string
		if err := rows.Scan(
			&row.NoradID, &row.CosparID, &row.Name, &row.Operator,
			&row.MissionType, &row.Location, &row.TLEAvailable,
			&row.ViewUtility, &row.LaunchDateRaw, &launchMillis,
			&row.Notes, &extras,
		); err != nil {
			return catalog.Catalog{}, fmt.Errorf("scan row: %w", err)
		}
		row.LaunchDate = fromMillis(launchMillis)
		if extras != "" && extras != "{}" {
			decoded := make(map[string]string)
			if err := json.Unmarshal([]byte(extras), &decoded); err != nil {
				return catalog.Catalog{}, fmt.Errorf("decode extras: %w", err)
			}
			row.Extras = decoded
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return catalog.Catalog{}, fmt.Errorf("iterate rows: %w", err)
	}
	return result, nil
}

// LoadHistory returns the most recent load audits, newest first.
func (s *Store) LoadHistory(ctx context.Context, limit int) ([]storage.LoadAudit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT source, row_count, dropped_rows, created_at FROM catalog_loads ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query load history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var audits []storage.LoadAudit
	for rows.Next() {
		var audit storage.LoadAudit
		var createdAt int64
		if err := rows.Scan(&audit.Source, &audit.RowCount, &audit.DroppedRows, &createdAt); err != nil {
			return nil, fmt.Errorf("scan load audit: %w", err)
		}
		audit.Timestamp = fromMillis(createdAt)
		audits = append(audits, audit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load history: %w", err)
	}
	return audits, nil
}

// AppendTelemetryEvent records one operational event.
func (s *Store) AppendTelemetryEvent(ctx context.Context, evt storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	timestamp := evt.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO telemetry_events (severity, name, detail, created_at) VALUES (?, ?, ?, ?)",
		evt.Severity, evt.Name, evt.Detail, toMillis(timestamp),
	)
	if err != nil {
		return fmt.Errorf("append telemetry event: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is the missing-record sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
