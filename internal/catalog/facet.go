package catalog

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// unknownValue stands in for blank cells in facet aggregation so rows
// without a value still show up in multiselects and counts.
const unknownValue = "Unknown"

// FacetValue is one distinct value of a categorical column with its
// occurrence count over the faceted view.
type FacetValue struct {
	Value string
	Count int
}

// Facet is the distinct-value summary of one column.
type Facet struct {
	Column string
	Values []FacetValue
}

// Facets aggregates distinct values and counts for the requested columns
// over the visible rows. Columns absent from the catalog are skipped.
// Values sort with a caseless collator so "nasa" and "NASA" group
// adjacently in widgets.
func Facets(v View, columns []string) []Facet {
	collator := collate.New(language.English, collate.IgnoreCase)

	var facets []Facet
	for _, column := range columns {
		if !v.catalog.HasColumn(column) {
			continue
		}
		counts := make(map[string]int)
		order := make([]string, 0)
		for i := 0; i < v.Len(); i++ {
			value, _ := v.Row(i).Value(column)
			if value == "" {
				value = unknownValue
			}
			if _, ok := counts[value]; !ok {
				order = append(order, value)
			}
			counts[value]++
		}
		collator.SortStrings(order)

		values := make([]FacetValue, 0, len(order))
		for _, value := range order {
			values = append(values, FacetValue{Value: value, Count: counts[value]})
		}
		facets = append(facets, Facet{Column: column, Values: values})
	}
	return facets
}

// Stats summarizes a view for the metric tiles.
type Stats struct {
	Rows         int
	Operators    int
	MissionTypes int
}

// Summarize counts visible rows and their distinct operators and
// mission types.
func Summarize(v View) Stats {
	operators := make(map[string]bool)
	missions := make(map[string]bool)
	for i := 0; i < v.Len(); i++ {
		row := v.Row(i)
		if row.Operator != "" {
			operators[row.Operator] = true
		}
		if row.MissionType != "" {
			missions[row.MissionType] = true
		}
	}
	return Stats{
		Rows:         v.Len(),
		Operators:    len(operators),
		MissionTypes: len(missions),
	}
}
