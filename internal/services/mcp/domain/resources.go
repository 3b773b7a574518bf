package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RowsResourceURI addresses the full active catalog as a readable resource.
const RowsResourceURI = "catalog://rows"

// RowsPayload is the JSON body of the catalog rows resource.
type RowsPayload struct {
	Columns []string   `json:"columns"`
	Rows    []RowEntry `json:"rows"`
}

// RowsResource defines the catalog rows resource.
func RowsResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         RowsResourceURI,
		Name:        "catalog-rows",
		Description: "Every row of the active observer spacecraft catalog as JSON.",
		MIMEType:    "application/json",
	}
}

// RowsResourceHandler returns a readable listing of the active catalog.
func RowsResourceHandler(provider CatalogProvider) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := RowsResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		c, err := loadCatalog(ctx, provider)
		if err != nil {
			return nil, err
		}

		payload := RowsPayload{Columns: c.Columns, Rows: []RowEntry{}}
		for _, row := range c.Rows {
			payload.Rows = append(payload.Rows, rowEntry(row))
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal catalog rows: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
