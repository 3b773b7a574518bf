// Package service assembles the MCP server that exposes the observer
// catalog over a stdio transport.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/observerset/atlasview/internal/services/mcp/domain"
)

const (
	serverName = "atlasview"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server wires catalog tool and resource handlers onto an MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer registers every catalog tool and resource against provider.
func NewServer(provider domain.CatalogProvider) (*Server, error) {
	if provider == nil {
		return nil, fmt.Errorf("catalog provider is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	mcp.AddTool(mcpServer, domain.SearchTool(), domain.SearchHandler(provider))
	mcp.AddTool(mcpServer, domain.FacetsTool(), domain.FacetsHandler(provider))
	mcp.AddTool(mcpServer, domain.GetTool(), domain.GetHandler(provider))
	mcp.AddTool(mcpServer, domain.StatsTool(), domain.StatsHandler(provider))

	mcpServer.AddResource(domain.RowsResource(), domain.RowsResourceHandler(provider))

	return &Server{mcpServer: mcpServer}, nil
}

// ServeStdio runs the server over stdin/stdout until ctx is canceled or
// the client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("mcp server is not initialized")
	}
	err := s.mcpServer.Run(ctx, transport)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run mcp server: %w", err)
	}
	return nil
}
