package catalog

import (
	"reflect"
	"strings"
	"testing"
)

func TestSortByNumericColumn(t *testing.T) {
	input := "NORAD_ID,Name\n43013,NOAA-20\n20580,Hubble\n25544,ISS\n"
	c, _, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sorted := SortBy(FullView(c), ColumnNoradID, false)
	got := names(sorted)
	want := []string{"Hubble", "ISS", "NOAA-20"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("numeric ascending: got %v", got)
	}

	desc := SortBy(FullView(c), ColumnNoradID, true)
	if got := names(desc); got[0] != "NOAA-20" {
		t.Fatalf("numeric descending: got %v", got)
	}
}

func TestSortByLaunchDate(t *testing.T) {
	input := "NORAD_ID,Name,Launch_Date_UTC\n" +
		"3,JWST,2021-12-25\n" +
		"1,Hubble,1990-04-24\n" +
		"2,ISS,1998-11-20\n"
	c, _, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sorted := SortBy(FullView(c), ColumnLaunchDate, false)
	got := names(sorted)
	want := []string{"Hubble", "ISS", "JWST"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("date ascending: got %v", got)
	}
}

func TestSortByIsStableAndNonMutating(t *testing.T) {
	input := "NORAD_ID,Name,Operator\n1,A,NASA\n2,B,NASA\n3,C,ESA\n"
	c, _, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	full := FullView(c)
	sorted := SortBy(full, ColumnOperator, false)

	// Equal keys keep source order.
	if got := names(sorted); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("stability: got %v", got)
	}
	// The input view is untouched.
	if got := names(full); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("input view mutated: %v", got)
	}
}

func TestSortByAbsentColumnIsNoop(t *testing.T) {
	c := loadFixture(t)
	full := FullView(c)

	sorted := SortBy(full, "No_Such_Column", false)
	if !reflect.DeepEqual(names(sorted), names(full)) {
		t.Fatal("expected unchanged order for absent column")
	}
}
