// Package mcp exposes journal entries as MCP tools over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	journalSvc "journal/internal/domain/services/journal"
)

const serverName = "Journal MCP Server"

// Server is an MCP server backed by the entry service
type Server struct {
	mcpServer *server.MCPServer
	entries   journalSvc.EntryService
	logger    *slog.Logger
}

// NewServer creates a server with the entry tools registered
func NewServer(entries journalSvc.EntryService, version string, logger *slog.Logger) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			serverName,
			version,
			server.WithLogging(),
			server.WithRecovery(),
		),
		entries: entries,
		logger:  logger,
	}
	s.registerTools()
	return s
}

// Start runs the stdio event loop until stdin closes
func (s *Server) Start() error {
	s.logger.Info("mcp server listening on stdio")
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the underlying mcp-go server
func (s *Server) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
