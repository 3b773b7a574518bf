package catalog

import (
	"reflect"
	"strings"
	"testing"
)

func TestFacetsCountsAndOrder(t *testing.T) {
	input := "NORAD_ID,Operator,Mission_Type\n" +
		"1,NASA,Telescope\n" +
		"2,ESA,Telescope\n" +
		"3,NASA,Weather\n" +
		"4,,Weather\n"

	c, _, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	facets := Facets(FullView(c), []string{ColumnOperator, ColumnMissionType, "No_Such_Column"})
	if len(facets) != 2 {
		t.Fatalf("expected absent column skipped, got %d facets", len(facets))
	}

	operators := facets[0]
	if operators.Column != ColumnOperator {
		t.Fatalf("expected operator facet first, got %s", operators.Column)
	}
	want := []FacetValue{
		{Value: "ESA", Count: 1},
		{Value: "NASA", Count: 2},
		{Value: "Unknown", Count: 1},
	}
	if !reflect.DeepEqual(operators.Values, want) {
		t.Fatalf("operator facet mismatch: %v", operators.Values)
	}

	missions := facets[1]
	if len(missions.Values) != 2 {
		t.Fatalf("expected 2 mission values, got %v", missions.Values)
	}
	if missions.Values[0].Value != "Telescope" || missions.Values[0].Count != 2 {
		t.Fatalf("mission counts mismatch: %v", missions.Values)
	}
}

func TestFacetsFollowView(t *testing.T) {
	c := loadFixture(t)
	view, _ := Apply(c, Criteria{Columns: map[string][]string{ColumnOperator: {"nasa"}}})

	facets := Facets(view, []string{ColumnMissionType})
	if len(facets) != 1 {
		t.Fatalf("expected one facet, got %d", len(facets))
	}
	total := 0
	for _, fv := range facets[0].Values {
		total += fv.Count
	}
	if total != view.Len() {
		t.Fatalf("facet counts %d do not cover view of %d rows", total, view.Len())
	}
}

func TestSummarize(t *testing.T) {
	c := loadFixture(t)

	stats := Summarize(FullView(c))
	if stats.Rows != 4 {
		t.Fatalf("expected 4 rows, got %d", stats.Rows)
	}
	// NASA and nasa are distinct raw values, matching the source data.
	if stats.Operators != 4 {
		t.Fatalf("expected 4 distinct operators, got %d", stats.Operators)
	}
	if stats.MissionTypes != 4 {
		t.Fatalf("expected 4 distinct mission types, got %d", stats.MissionTypes)
	}
}
