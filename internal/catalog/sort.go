package catalog

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortBy returns a view with the same rows ordered by column. The sort
// is stable, so equal keys keep their source order, and the input view
// and catalog are untouched. An absent column returns the view as-is.
func SortBy(v View, column string, descending bool) View {
	if !v.catalog.HasColumn(column) {
		return v
	}

	indices := append([]int(nil), v.indices...)
	collator := collate.New(language.English, collate.IgnoreCase)

	less := func(a, b int) bool {
		rowA := v.catalog.Rows[indices[a]]
		rowB := v.catalog.Rows[indices[b]]

		if column == ColumnLaunchDate && !rowA.LaunchDate.IsZero() && !rowB.LaunchDate.IsZero() {
			return rowA.LaunchDate.Before(rowB.LaunchDate)
		}

		valueA, _ := rowA.Value(column)
		valueB, _ := rowB.Value(column)
		if numA, errA := strconv.ParseFloat(valueA, 64); errA == nil {
			if numB, errB := strconv.ParseFloat(valueB, 64); errB == nil {
				return numA < numB
			}
		}
		return collator.CompareString(valueA, valueB) < 0
	}

	if descending {
		sort.SliceStable(indices, func(a, b int) bool { return less(b, a) })
	} else {
		sort.SliceStable(indices, less)
	}
	return View{catalog: v.catalog, indices: indices}
}
