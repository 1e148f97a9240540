// Package mcpserver exposes the course search service to AI clients over
// the Model Context Protocol (stdio transport).
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/antoinebou12/horaire-ets/internal/search"
	"github.com/antoinebou12/horaire-ets/pkg/version"
)

// Server bridges MCP clients with the search service.
type Server struct {
	mcp    *mcp.Server
	svc    *search.Service
	logger *slog.Logger
}

// NewServer creates the MCP server and registers the search tools.
func NewServer(svc *search.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		svc:    svc,
		logger: logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "horaire-ets",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run serves MCP requests over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp_serving", slog.String("transport", "stdio"))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
