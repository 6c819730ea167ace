package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/docview/internal/view"
)

func (s *Server) handleToggleFolder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.targeted(request, view.OpToggleFolder, "row")
}

func (s *Server) handleToggleSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.targeted(request, view.OpToggleSection, "section")
}

func (s *Server) handleToggleInheritedGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.targeted(request, view.OpToggleInherit, "group")
}

func (s *Server) handleFoldRegion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.targeted(request, view.OpFoldRegion, "region")
}

func (s *Server) handleSetExpansionLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}
	level := request.GetInt("level", 0)
	return s.execute(page, view.Command{Op: view.OpSetLevel, Level: level})
}

func (s *Server) handleFoldAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}
	return s.execute(page, view.Command{Op: view.OpFoldAll})
}

func (s *Server) handleGetViewState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}
	snap, err := s.views.Snapshot(SessionID, page)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get_view_state failed: %v", err)), nil
	}
	return jsonResult(snap)
}

// targeted runs a command whose target comes from the named parameter.
func (s *Server) targeted(request mcp.CallToolRequest, op view.Op, param string) (*mcp.CallToolResult, error) {
	page, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}
	target, err := request.RequireString(param)
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: " + param), nil
	}
	return s.execute(page, view.Command{Op: op, Target: target})
}

func (s *Server) execute(page string, cmd view.Command) (*mcp.CallToolResult, error) {
	res, err := s.views.Execute(SessionID, page, cmd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", cmd.Op, err)), nil
	}
	return jsonResult(res)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
