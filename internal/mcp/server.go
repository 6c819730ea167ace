// Package mcp exposes the view commands as Model Context Protocol tools so
// an agent can fold and unfold a generated site.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/docview/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// SessionID is the single view session shared by every tool call.
const SessionID = "mcp"

// Server wraps an MCP server over a view registry.
type Server struct {
	views *view.Registry
	mcp   *server.MCPServer
}

// NewServer creates an MCP server whose tools act on views.
func NewServer(views *view.Registry) *Server {
	s := &Server{views: views}

	s.mcp = server.NewMCPServer(
		"docview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(toggleFolderTool, s.handleToggleFolder)
	s.mcp.AddTool(setExpansionLevelTool, s.handleSetExpansionLevel)
	s.mcp.AddTool(toggleSectionTool, s.handleToggleSection)
	s.mcp.AddTool(toggleInheritedGroupTool, s.handleToggleInheritedGroup)
	s.mcp.AddTool(foldRegionTool, s.handleFoldRegion)
	s.mcp.AddTool(foldAllTool, s.handleFoldAll)
	s.mcp.AddTool(getViewStateTool, s.handleGetViewState)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
