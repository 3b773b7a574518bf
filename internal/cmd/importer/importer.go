// Package importer validates observer catalog CSV files from the command
// line and reports what a load would produce.
package importer

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/observerset/atlasview/internal/catalog"
)

// Config holds the importer command configuration.
type Config struct {
	Path       string
	ShowFacets bool
}

// ParseConfig parses flags into a Config. The CSV path is the single
// positional argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{}
	fs.BoolVar(&cfg.ShowFacets, "facets", false, "print value counts for the default facet columns")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("usage: catalog-importer [-facets] <file.csv>")
	}
	cfg.Path = fs.Arg(0)
	return cfg, nil
}

// Run loads the CSV and writes a load report to out.
func Run(cfg Config, out io.Writer) error {
	file, err := os.Open(cfg.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	defer file.Close()

	c, report, err := catalog.Load(file)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Path, err)
	}

	fmt.Fprintf(out, "%s: %d rows (%d dropped for missing identifiers)\n", cfg.Path, report.RowCount, report.DroppedRows)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tKIND")
	for _, column := range c.Columns {
		kind := "extra"
		if _, ok := catalog.CanonicalColumn(column); ok {
			kind = "canonical"
		}
		fmt.Fprintf(w, "%s\t%s\n", column, kind)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write column report: %w", err)
	}

	if cfg.ShowFacets {
		writeFacets(out, c)
	}
	return nil
}

func writeFacets(out io.Writer, c catalog.Catalog) {
	for _, facet := range catalog.Facets(catalog.FullView(c), catalog.DefaultFacetColumns) {
		fmt.Fprintf(out, "\n%s:\n", facet.Column)
		for _, value := range facet.Values {
			fmt.Fprintf(out, "  %-30s %d\n", value.Value, value.Count)
		}
	}
}
