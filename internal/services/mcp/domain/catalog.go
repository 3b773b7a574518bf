// Package domain exposes the observer catalog as MCP tools and resources.
package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/observerset/atlasview/internal/catalog"
	apperrors "github.com/observerset/atlasview/internal/errors"
)

// defaultSearchLimit bounds tool responses so a broad query does not flood
// the client with the whole catalog.
const defaultSearchLimit = 50

// CatalogProvider loads the active catalog snapshot for each tool call.
type CatalogProvider interface {
	LoadCatalog(ctx context.Context) (catalog.Catalog, error)
}

// ColumnFilter selects rows whose column value matches any listed value.
type ColumnFilter struct {
	Column string   `json:"column" jsonschema:"canonical column name, e.g. Operator or Mission_Type"`
	Values []string `json:"values" jsonschema:"accepted values, matched case-insensitively"`
}

// RowEntry is one catalog row in tool and resource payloads.
type RowEntry struct {
	NoradID       string            `json:"norad_id,omitempty" jsonschema:"NORAD catalog number"`
	CosparID      string            `json:"cospar_id,omitempty" jsonschema:"COSPAR international designator"`
	Name          string            `json:"name" jsonschema:"spacecraft name"`
	Operator      string            `json:"operator,omitempty" jsonschema:"operating agency"`
	MissionType   string            `json:"mission_type,omitempty" jsonschema:"mission category"`
	Location      string            `json:"location,omitempty" jsonschema:"current orbital location"`
	TLEAvailable  string            `json:"tle_available,omitempty" jsonschema:"whether an Earth TLE exists for the spacecraft"`
	ViewUtility   string            `json:"view_utility,omitempty" jsonschema:"assessed utility for observing 3I/ATLAS"`
	LaunchDateUTC string            `json:"launch_date_utc,omitempty" jsonschema:"launch date as recorded in the source data"`
	Notes         string            `json:"notes,omitempty" jsonschema:"free-form notes"`
	Extras        map[string]string `json:"extras,omitempty" jsonschema:"columns beyond the canonical set"`
}

// SearchInput narrows the catalog by free text and column filters.
type SearchInput struct {
	Query   string         `json:"query,omitempty" jsonschema:"substring matched case-insensitively against Name, Operator, and Notes"`
	Filters []ColumnFilter `json:"filters,omitempty" jsonschema:"column filters, all of which must match"`
	Limit   int            `json:"limit,omitempty" jsonschema:"maximum rows to return (default 50)"`
}

// SearchResult reports matching rows plus any filter warnings.
type SearchResult struct {
	Rows     []RowEntry `json:"rows" jsonschema:"matching rows, truncated to the limit"`
	Total    int        `json:"total" jsonschema:"total matches before truncation"`
	Warnings []string   `json:"warnings,omitempty" jsonschema:"non-fatal filter warnings"`
}

// SearchTool defines the MCP tool schema for catalog search.
func SearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "catalog_search",
		Description: "Searches the observer spacecraft catalog by free text and column filters. Filters on columns the catalog lacks return zero rows with a warning.",
	}
}

// SearchHandler executes a catalog search request.
func SearchHandler(provider CatalogProvider) mcp.ToolHandlerFor[SearchInput, SearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchResult, error) {
		c, err := loadCatalog(ctx, provider)
		if err != nil {
			return nil, SearchResult{}, err
		}

		criteria := catalog.Criteria{Search: input.Query, Columns: map[string][]string{}}
		for _, filter := range input.Filters {
			column := strings.TrimSpace(filter.Column)
			if column == "" {
				continue
			}
			criteria.Columns[column] = append(criteria.Columns[column], filter.Values...)
		}

		view, warnings := catalog.Apply(c, criteria)

		limit := input.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		result := SearchResult{Total: view.Len(), Rows: []RowEntry{}}
		for i := 0; i < view.Len() && i < limit; i++ {
			result.Rows = append(result.Rows, rowEntry(view.Row(i)))
		}
		for _, warning := range warnings {
			result.Warnings = append(result.Warnings, warning.Message())
		}
		return nil, result, nil
	}
}

// FacetsInput names the columns to summarize. Empty means the default
// facet columns.
type FacetsInput struct {
	Columns []string `json:"columns,omitempty" jsonschema:"columns to compute value counts for (default facet set when empty)"`
}

// FacetEntry is one distinct value with its row count.
type FacetEntry struct {
	Value string `json:"value" jsonschema:"distinct cell value, Unknown for blanks"`
	Count int    `json:"count" jsonschema:"rows carrying the value"`
}

// FacetGroup holds the value counts for one column.
type FacetGroup struct {
	Column string       `json:"column" jsonschema:"column name"`
	Values []FacetEntry `json:"values" jsonschema:"distinct values ordered alphabetically"`
}

// FacetsResult lists value counts per requested column.
type FacetsResult struct {
	Facets []FacetGroup `json:"facets" jsonschema:"per-column value counts"`
}

// FacetsTool defines the MCP tool schema for facet summaries.
func FacetsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "catalog_facets",
		Description: "Returns distinct values and row counts for catalog columns. Columns absent from the catalog are skipped.",
	}
}

// FacetsHandler executes a facet summary request.
func FacetsHandler(provider CatalogProvider) mcp.ToolHandlerFor[FacetsInput, FacetsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FacetsInput) (*mcp.CallToolResult, FacetsResult, error) {
		c, err := loadCatalog(ctx, provider)
		if err != nil {
			return nil, FacetsResult{}, err
		}

		columns := input.Columns
		if len(columns) == 0 {
			columns = catalog.DefaultFacetColumns
		}

		result := FacetsResult{Facets: []FacetGroup{}}
		for _, facet := range catalog.Facets(catalog.FullView(c), columns) {
			group := FacetGroup{Column: facet.Column}
			for _, value := range facet.Values {
				group.Values = append(group.Values, FacetEntry{Value: value.Value, Count: value.Count})
			}
			result.Facets = append(result.Facets, group)
		}
		return nil, result, nil
	}
}

// GetInput identifies a single spacecraft by either identifier.
type GetInput struct {
	NoradID  string `json:"norad_id,omitempty" jsonschema:"NORAD catalog number"`
	CosparID string `json:"cospar_id,omitempty" jsonschema:"COSPAR international designator"`
}

// GetResult returns the matched row.
type GetResult struct {
	Row RowEntry `json:"row" jsonschema:"the matched catalog row"`
}

// GetTool defines the MCP tool schema for single-row lookup.
func GetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "catalog_get",
		Description: "Looks up a single spacecraft by NORAD or COSPAR identifier.",
	}
}

// GetHandler executes a single-row lookup request.
func GetHandler(provider CatalogProvider) mcp.ToolHandlerFor[GetInput, GetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetResult, error) {
		norad := strings.TrimSpace(input.NoradID)
		cospar := strings.TrimSpace(input.CosparID)
		if norad == "" && cospar == "" {
			return nil, GetResult{}, fmt.Errorf("either norad_id or cospar_id is required")
		}

		c, err := loadCatalog(ctx, provider)
		if err != nil {
			return nil, GetResult{}, err
		}

		for _, row := range c.Rows {
			if norad != "" && !strings.EqualFold(row.NoradID, norad) {
				continue
			}
			if cospar != "" && !strings.EqualFold(row.CosparID, cospar) {
				continue
			}
			return nil, GetResult{Row: rowEntry(row)}, nil
		}
		return nil, GetResult{}, apperrors.Newf(apperrors.CodeNotFound, "no spacecraft matches norad_id=%q cospar_id=%q", norad, cospar)
	}
}

// StatsInput carries no parameters.
type StatsInput struct{}

// StatsResult summarizes the active catalog.
type StatsResult struct {
	Rows         int `json:"rows" jsonschema:"total rows in the catalog"`
	Operators    int `json:"operators" jsonschema:"distinct non-blank operators"`
	MissionTypes int `json:"mission_types" jsonschema:"distinct non-blank mission types"`
}

// StatsTool defines the MCP tool schema for catalog statistics.
func StatsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "catalog_stats",
		Description: "Reports row, operator, and mission-type counts for the active catalog.",
	}
}

// StatsHandler executes a catalog statistics request.
func StatsHandler(provider CatalogProvider) mcp.ToolHandlerFor[StatsInput, StatsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatsInput) (*mcp.CallToolResult, StatsResult, error) {
		c, err := loadCatalog(ctx, provider)
		if err != nil {
			return nil, StatsResult{}, err
		}
		stats := catalog.Summarize(catalog.FullView(c))
		return nil, StatsResult{Rows: stats.Rows, Operators: stats.Operators, MissionTypes: stats.MissionTypes}, nil
	}
}

func loadCatalog(ctx context.Context, provider CatalogProvider) (catalog.Catalog, error) {
	if provider == nil {
		return catalog.Catalog{}, fmt.Errorf("catalog provider is not configured")
	}
	c, err := provider.LoadCatalog(ctx)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func rowEntry(row catalog.Row) RowEntry {
	entry := RowEntry{
		NoradID:       row.NoradID,
		CosparID:      row.CosparID,
		Name:          row.Name,
		Operator:      row.Operator,
		MissionType:   row.MissionType,
		Location:      row.Location,
		TLEAvailable:  row.TLEAvailable,
		ViewUtility:   row.ViewUtility,
		LaunchDateUTC: row.LaunchDateRaw,
		Notes:         row.Notes,
	}
	if len(row.Extras) > 0 {
		entry.Extras = row.Extras
	}
	return entry
}
