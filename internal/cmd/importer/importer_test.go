package importer

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "observers.csv")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestParseConfigRequiresPath(t *testing.T) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestRunReportsColumnsAndCounts(t *testing.T) {
	path := writeFixture(t, "NORAD_ID,Name,Operator,Orbit_Regime\n"+
		"25544,ISS,NASA,LEO\n"+
		",Ghost,None,LEO\n")

	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{path})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	var out bytes.Buffer
	if err := Run(cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	report := out.String()
	if !strings.Contains(report, "2 rows (1 dropped for missing identifiers)") {
		t.Fatalf("expected load counts in report, got:\n%s", report)
	}
	if !strings.Contains(report, "NORAD_ID") || !strings.Contains(report, "canonical") {
		t.Fatalf("expected canonical column listing, got:\n%s", report)
	}
	if !strings.Contains(report, "Orbit_Regime") || !strings.Contains(report, "extra") {
		t.Fatalf("expected extra column listing, got:\n%s", report)
	}
}

func TestRunShowFacets(t *testing.T) {
	path := writeFixture(t, "NORAD_ID,Name,Operator\n"+
		"25544,ISS,NASA\n"+
		"20580,Hubble,NASA\n")

	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-facets", path})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	var out bytes.Buffer
	if err := Run(cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Operator:") {
		t.Fatalf("expected facet section, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "NASA") {
		t.Fatalf("expected facet values, got:\n%s", out.String())
	}
}

func TestRunRejectsMissingIdentifierColumns(t *testing.T) {
	path := writeFixture(t, "Name,Operator\nISS,NASA\n")

	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{path})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}

	var out bytes.Buffer
	if err := Run(cfg, &out); err == nil {
		t.Fatal("expected load error")
	}
}
