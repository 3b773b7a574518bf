package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV exports the visible rows as CSV in the catalog's source
// column order, so a filtered export reloads cleanly.
func WriteCSV(w io.Writer, v View) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(v.catalog.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(v.catalog.Columns))
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		for j, column := range v.catalog.Columns {
			value, _ := row.Value(column)
			record[j] = value
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
