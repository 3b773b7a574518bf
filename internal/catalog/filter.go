package catalog

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/observerset/atlasview/internal/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Criteria describes one filter pass. Search is a caseless substring
// matched against name, operator and notes; Columns holds per-column
// allowed term sets (caseless exact). Columns AND-compose; terms within
// a column OR-compose. The zero Criteria matches everything.
type Criteria struct {
	Search  string
	Columns map[string][]string
}

// IsEmpty reports whether the criteria constrain nothing.
func (c Criteria) IsEmpty() bool {
	if strings.TrimSpace(c.Search) != "" {
		return false
	}
	for _, terms := range c.Columns {
		if len(terms) > 0 {
			return false
		}
	}
	return true
}

// Merge unions two criteria sets. Column term lists concatenate without
// duplicates; a blank receiver search adopts the other side's.
func (c Criteria) Merge(other Criteria) Criteria {
	merged := Criteria{Search: c.Search}
	if strings.TrimSpace(merged.Search) == "" {
		merged.Search = other.Search
	}
	if len(c.Columns) == 0 && len(other.Columns) == 0 {
		return merged
	}
	merged.Columns = make(map[string][]string)
	for column, terms := range c.Columns {
		merged.Columns[column] = append([]string(nil), terms...)
	}
	for column, terms := range other.Columns {
		existing := toLowerSet(merged.Columns[column])
		for _, term := range terms {
			if !existing[strings.ToLower(term)] {
				merged.Columns[column] = append(merged.Columns[column], term)
			}
		}
	}
	return merged
}

// Warning is a non-fatal filter condition surfaced to the user.
type Warning struct {
	Code   apperrors.Code
	Column string
}

// Message renders the warning for display.
func (w Warning) Message() string {
	switch w.Code {
	case apperrors.CodeCatalogColumnNotFound:
		return fmt.Sprintf("filter column %q is not in the catalog; no rows match", w.Column)
	case apperrors.CodeCatalogEmptyResult:
		return "the current filters exclude every row"
	}
	return string(w.Code)
}

// Apply returns the order-preserving subset of c satisfying every
// criteria predicate. The catalog is never mutated; the result is a
// fresh index view. A criteria column absent from the catalog fails
// closed: the view is empty and a column-not-found warning is returned.
func Apply(c Catalog, criteria Criteria) (View, []Warning) {
	if criteria.IsEmpty() {
		return FullView(c), nil
	}

	var warnings []Warning
	missing := false
	columns := make([]string, 0, len(criteria.Columns))
	for column, terms := range criteria.Columns {
		if len(terms) == 0 {
			continue
		}
		if !c.HasColumn(column) {
			warnings = append(warnings, Warning{Code: apperrors.CodeCatalogColumnNotFound, Column: column})
			missing = true
			continue
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)
	if missing {
		return View{catalog: c}, warnings
	}

	sets := make(map[string]map[string]bool, len(columns))
	for _, column := range columns {
		sets[column] = toLowerSet(criteria.Columns[column])
	}

	matcher := search.New(language.Und, search.IgnoreCase)
	needle := strings.TrimSpace(criteria.Search)

	indices := make([]int, 0, len(c.Rows))
	for i, row := range c.Rows {
		if needle != "" && !rowMatchesSearch(matcher, row, needle) {
			continue
		}
		pass := true
		for _, column := range columns {
			value, _ := row.Value(column)
			if !sets[column][strings.ToLower(value)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	view := View{catalog: c, indices: indices}
	if view.Len() == 0 {
		warnings = append(warnings, Warning{Code: apperrors.CodeCatalogEmptyResult})
	}
	return view, warnings
}

// rowMatchesSearch checks the free-text haystack columns for a caseless
// substring match. Matching goes through x/text search so folding covers
// more than ASCII.
func rowMatchesSearch(matcher *search.Matcher, row Row, needle string) bool {
	for _, hay := range []string{row.Name, row.Operator, row.Notes} {
		if hay == "" {
			continue
		}
		if start, _ := matcher.IndexString(hay, needle); start >= 0 {
			return true
		}
	}
	return false
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
