// Package catalog implements the spacecraft catalog: CSV loading,
// order-preserving filter views, facet aggregation and export.
package catalog

import "time"

// Row is one spacecraft record. Identifier fields hold their source text;
// a row is only kept when at least one identifier is non-empty.
type Row struct {
	NoradID      string
	CosparID     string
	Name         string
	Operator     string
	MissionType  string
	Location     string
	TLEAvailable string
	ViewUtility  string
	Notes        string

	// LaunchDateRaw is the source cell text; LaunchDate is its parsed
	// value, zero when the cell was empty or unparseable.
	LaunchDateRaw string
	LaunchDate    time.Time

	// Extras holds unrecognized passthrough columns keyed by their
	// trimmed source header.
	Extras map[string]string
}

// Value returns the cell text for a column, canonical or extra.
func (r Row) Value(column string) (string, bool) {
	switch column {
	case ColumnNoradID:
		return r.NoradID, true
	case ColumnCosparID:
		return r.CosparID, true
	case ColumnName:
		return r.Name, true
	case ColumnOperator:
		return r.Operator, true
	case ColumnMissionType:
		return r.MissionType, true
	case ColumnLocation:
		return r.Location, true
	case ColumnTLEAvailable:
		return r.TLEAvailable, true
	case ColumnViewUtility:
		return r.ViewUtility, true
	case ColumnLaunchDate:
		return r.LaunchDateRaw, true
	case ColumnNotes:
		return r.Notes, true
	}
	value, ok := r.Extras[column]
	return value, ok
}

// Catalog is the ordered session catalog: row order is source file order
// and Columns preserves the source header order (canonicalized names for
// recognized fields, trimmed source names for extras). A catalog is
// replaced wholesale on load and never mutated in place.
type Catalog struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (c Catalog) Len() int {
	return len(c.Rows)
}

// HasColumn reports whether name is one of the catalog's columns.
func (c Catalog) HasColumn(name string) bool {
	for _, column := range c.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// View is an ordered subsequence of a catalog, held as an index list so
// filtering and sorting never copy or mutate rows.
type View struct {
	catalog Catalog
	indices []int
}

// FullView returns a view over every row in source order.
func FullView(c Catalog) View {
	indices := make([]int, len(c.Rows))
	for i := range indices {
		indices[i] = i
	}
	return View{catalog: c, indices: indices}
}

// Len returns the number of visible rows.
func (v View) Len() int {
	return len(v.indices)
}

// Row returns the i-th visible row.
func (v View) Row(i int) Row {
	return v.catalog.Rows[v.indices[i]]
}

// Rows materializes the visible rows in view order.
func (v View) Rows() []Row {
	rows := make([]Row, 0, len(v.indices))
	for _, idx := range v.indices {
		rows = append(rows, v.catalog.Rows[idx])
	}
	return rows
}

// Columns returns the catalog's column order.
func (v View) Columns() []string {
	return v.catalog.Columns
}

// Catalog returns the backing catalog.
func (v View) Catalog() Catalog {
	return v.catalog
}
