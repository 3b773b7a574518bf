package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/observerset/atlasview/internal/errors"
)

// LoadReport summarizes one load for diagnostics. Dropped rows are a
// non-fatal condition surfaced to the user alongside the loaded catalog.
type LoadReport struct {
	RowCount    int
	DroppedRows int
	Columns     []string
}

// launchDateLayouts are tried in order; unparseable dates keep the row
// and leave the parsed value zero.
var launchDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Load parses a comma-delimited UTF-8 stream with a required header row
// into a Catalog. Cells map to fields by header name, not position, so
// reordered columns are tolerated; unrecognized columns pass through as
// extras. Rows missing both identifiers are dropped and counted in the
// report. The returned error carries CATALOG_FORMAT_INVALID for
// unreadable input and CATALOG_IDENTIFIER_COLUMNS_MISSING when the
// header names neither a NORAD nor a COSPAR column.
func Load(r io.Reader) (Catalog, LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Catalog{}, LoadReport{}, apperrors.Wrap(apperrors.CodeCatalogFormatInvalid, "read header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for _, cell := range header {
		if !utf8.ValidString(cell) {
			return Catalog{}, LoadReport{}, apperrors.New(apperrors.CodeCatalogFormatInvalid, "header is not valid UTF-8")
		}
	}

	columns := make([]string, 0, len(header))
	fieldByIndex := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, cell := range header {
		name, recognized := CanonicalColumn(cell)
		if !recognized {
			name = strings.TrimSpace(cell)
			if name == "" {
				name = fmt.Sprintf("Column_%d", i+1)
			}
		}
		// First occurrence wins; duplicate headers are ignored.
		if seen[name] {
			continue
		}
		seen[name] = true
		fieldByIndex[i] = name
		columns = append(columns, name)
	}

	if !seen[ColumnNoradID] && !seen[ColumnCosparID] {
		return Catalog{}, LoadReport{}, apperrors.New(
			apperrors.CodeCatalogIdentifierColumnsMissing,
			"header has neither a NORAD nor a COSPAR identifier column",
		)
	}

	result := Catalog{Columns: columns}
	report := LoadReport{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Catalog{}, LoadReport{}, apperrors.Wrap(apperrors.CodeCatalogFormatInvalid, "read row", err)
		}

		row := Row{}
		for i, cell := range record {
			if i >= len(fieldByIndex) || fieldByIndex[i] == "" {
				continue
			}
			setField(&row, fieldByIndex[i], strings.TrimSpace(cell))
		}
		report.RowCount++
		if row.NoradID == "" && row.CosparID == "" {
			report.DroppedRows++
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result, report, nil
}

func setField(row *Row, column, value string) {
	switch column {
	case ColumnNoradID:
		row.NoradID = value
	case ColumnCosparID:
		row.CosparID = value
	case ColumnName:
		row.Name = value
	case ColumnOperator:
		row.Operator = value
	case ColumnMissionType:
		row.MissionType = value
	case ColumnLocation:
		row.Location = value
	case ColumnTLEAvailable:
		row.TLEAvailable = value
	case ColumnViewUtility:
		row.ViewUtility = value
	case ColumnNotes:
		row.Notes = value
	case ColumnLaunchDate:
		row.LaunchDateRaw = value
		row.LaunchDate = parseLaunchDate(value)
	default:
		if row.Extras == nil {
			row.Extras = make(map[string]string)
		}
		row.Extras[column] = value
	}
}

func parseLaunchDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range launchDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
