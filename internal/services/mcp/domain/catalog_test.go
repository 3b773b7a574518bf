package domain

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/observerset/atlasview/internal/catalog"
	apperrors "github.com/observerset/atlasview/internal/errors"
)

type fakeProvider struct {
	catalog catalog.Catalog
	err     error
}

func (f *fakeProvider) LoadCatalog(context.Context) (catalog.Catalog, error) {
	return f.catalog, f.err
}

func testProvider(t *testing.T) *fakeProvider {
	t.Helper()
	data := "NORAD_ID,COSPAR_ID,Name,Operator,Mission_Type,Notes\n" +
		"25544,1998-067A,ISS,NASA,Crewed Station,Primary reference\n" +
		"20580,1990-037B,Hubble,NASA,Telescope,Deep field imaging\n" +
		"45044,2020-010A,Solar Orbiter,ESA,Heliophysics,Inner heliosphere\n"
	c, _, err := catalog.Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return &fakeProvider{catalog: c}
}

func TestSearchHandler(t *testing.T) {
	t.Run("operator filter is caseless", func(t *testing.T) {
		handler := SearchHandler(testProvider(t))
		_, result, err := handler(context.Background(), nil, SearchInput{
			Filters: []ColumnFilter{{Column: "Operator", Values: []string{"nasa"}}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 2 || len(result.Rows) != 2 {
			t.Fatalf("expected 2 NASA rows, got total=%d rows=%d", result.Total, len(result.Rows))
		}
		if result.Rows[0].Name != "ISS" || result.Rows[1].Name != "Hubble" {
			t.Fatalf("expected catalog order preserved, got %q, %q", result.Rows[0].Name, result.Rows[1].Name)
		}
	})

	t.Run("unknown column fails closed with warning", func(t *testing.T) {
		handler := SearchHandler(testProvider(t))
		_, result, err := handler(context.Background(), nil, SearchInput{
			Filters: []ColumnFilter{{Column: "Orbit_Regime", Values: []string{"LEO"}}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 0 {
			t.Fatalf("expected zero rows, got %d", result.Total)
		}
		if len(result.Warnings) == 0 {
			t.Fatal("expected a filter warning")
		}
	})

	t.Run("limit truncates without changing total", func(t *testing.T) {
		handler := SearchHandler(testProvider(t))
		_, result, err := handler(context.Background(), nil, SearchInput{Limit: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Total != 3 || len(result.Rows) != 1 {
			t.Fatalf("expected total=3 rows=1, got total=%d rows=%d", result.Total, len(result.Rows))
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		handler := SearchHandler(&fakeProvider{err: fmt.Errorf("store closed")})
		_, _, err := handler(context.Background(), nil, SearchInput{})
		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestFacetsHandler(t *testing.T) {
	handler := FacetsHandler(testProvider(t))
	_, result, err := handler(context.Background(), nil, FacetsInput{Columns: []string{"Operator"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Facets) != 1 || result.Facets[0].Column != "Operator" {
		t.Fatalf("expected one Operator facet, got %+v", result.Facets)
	}
	counts := map[string]int{}
	for _, value := range result.Facets[0].Values {
		counts[value.Value] = value.Count
	}
	if counts["NASA"] != 2 || counts["ESA"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestGetHandler(t *testing.T) {
	t.Run("by norad id", func(t *testing.T) {
		handler := GetHandler(testProvider(t))
		_, result, err := handler(context.Background(), nil, GetInput{NoradID: "25544"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Row.Name != "ISS" {
			t.Fatalf("expected ISS, got %q", result.Row.Name)
		}
	})

	t.Run("by cospar id", func(t *testing.T) {
		handler := GetHandler(testProvider(t))
		_, result, err := handler(context.Background(), nil, GetInput{CosparID: "2020-010a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Row.Name != "Solar Orbiter" {
			t.Fatalf("expected caseless COSPAR match, got %q", result.Row.Name)
		}
	})

	t.Run("missing identifiers", func(t *testing.T) {
		handler := GetHandler(testProvider(t))
		if _, _, err := handler(context.Background(), nil, GetInput{}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("no match", func(t *testing.T) {
		handler := GetHandler(testProvider(t))
		_, _, err := handler(context.Background(), nil, GetInput{NoradID: "99999"})
		if err == nil {
			t.Fatal("expected error")
		}
		if apperrors.CodeOf(err) != apperrors.CodeNotFound {
			t.Fatalf("expected NOT_FOUND, got %v", apperrors.CodeOf(err))
		}
	})
}

func TestStatsHandler(t *testing.T) {
	handler := StatsHandler(testProvider(t))
	_, result, err := handler(context.Background(), nil, StatsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Rows != 3 || result.Operators != 2 || result.MissionTypes != 3 {
		t.Fatalf("unexpected stats: %+v", result)
	}
}

func TestRowsResourceHandler(t *testing.T) {
	handler := RowsResourceHandler(testProvider(t))
	result, err := handler(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Contents))
	}
	content := result.Contents[0]
	if content.URI != RowsResourceURI || content.MIMEType != "application/json" {
		t.Fatalf("unexpected content metadata: %+v", content)
	}
	if !strings.Contains(content.Text, "\"name\": \"ISS\"") {
		t.Fatal("expected row payload in resource text")
	}
}
