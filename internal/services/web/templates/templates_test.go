package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func renderPage(t *testing.T, data CatalogPage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Page(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render page: %v", err)
	}
	return buf.String()
}

func testPage() CatalogPage {
	return CatalogPage{
		AppName:     "Satellite Observer Set",
		SearchQuery: "hubble",
		Facets: []FacetGroup{
			{
				Column: "Operator",
				Param:  "f.Operator",
				Options: []FacetOption{
					{Value: "NASA", Count: 2, Selected: true},
					{Value: "ESA", Count: 1},
				},
			},
		},
		Metrics: []Metric{{Label: "Spacecraft (filtered)", Value: "3"}},
		Headers: []ColumnHeader{
			{Name: "Name", SortURL: "/?sort=Name", Active: true},
			{Name: "Operator", SortURL: "/?sort=Operator"},
		},
		Rows:      [][]string{{"Hubble", "NASA"}},
		Warnings:  []string{"filter column \"Orbit\" is not in the catalog; no rows match"},
		Notices:   []string{"2 rows were dropped during load"},
		Bars:      []FacetGroup{{Column: "Mission_Type", Options: []FacetOption{{Value: "Telescope", Count: 2}}}},
		ExportURL: "/export.csv?q=hubble",
	}
}

func TestPageRendersTable(t *testing.T) {
	body := renderPage(t, testPage())

	for _, want := range []string{
		"<title>Satellite Observer Set</title>",
		"<td>Hubble</td>",
		"<td>NASA</td>",
		"Download filtered CSV",
		"Count by Mission_Type",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page, got:\n%s", want, body)
		}
	}
}

func TestPageRendersSelectedFacet(t *testing.T) {
	body := renderPage(t, testPage())

	if !strings.Contains(body, `value="NASA" checked`) {
		t.Fatalf("expected selected NASA option, got:\n%s", body)
	}
	if strings.Contains(body, `value="ESA" checked`) {
		t.Fatal("ESA should not be selected")
	}
}

func TestPageEscapesUserText(t *testing.T) {
	data := testPage()
	data.Rows = [][]string{{`<script>alert(1)</script>`, "NASA"}}
	body := renderPage(t, data)

	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatal("cell text must be escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatal("expected escaped cell text")
	}
}

func TestPageRendersNotices(t *testing.T) {
	body := renderPage(t, testPage())

	if !strings.Contains(body, "2 rows were dropped during load") {
		t.Fatal("expected dropped-rows notice")
	}
	if !strings.Contains(body, "not in the catalog") {
		t.Fatal("expected column warning")
	}
}
