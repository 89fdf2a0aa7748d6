// Package mcp provides the MCP (Model Context Protocol) server
// implementation, exposing activity suggestions to agent clients.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvidal/spur/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server   *server.MCPServer
	provider ports.ActivityProvider
	ctx      context.Context
	cancel   context.CancelFunc
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// NewServer creates a new MCP server instance.
func NewServer(provider ports.ActivityProvider) *Server {
	s := &Server{
		provider: provider,
	}

	s.server = server.NewMCPServer(
		"spur-activities",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools. Destructive store
// operations are not exposed here; they need interactive confirmation.
func (s *Server) registerTools() {
	suggestTool := mcp.NewTool(
		"suggest_activity",
		mcp.WithDescription("Suggest a random activity for the given amount of spare time"),
		mcp.WithNumber(
			"minutes",
			mcp.Required(),
			mcp.Description("How many spare minutes are available; must match an existing duration bucket"),
		),
	)
	s.server.AddTool(suggestTool, s.handleSuggestActivity)

	s.server.AddTool(
		mcp.NewTool(
			"list_buckets",
			mcp.WithDescription("List all duration buckets and their activities"),
		),
		s.handleListBuckets,
	)

	addActivityTool := mcp.NewTool(
		"add_activity",
		mcp.WithDescription("Add an activity to an existing duration bucket"),
		mcp.WithNumber(
			"minutes",
			mcp.Required(),
			mcp.Description("The duration bucket to add to"),
		),
		mcp.WithString(
			"label",
			mcp.Required(),
			mcp.Description("The activity label"),
		),
	)
	s.server.AddTool(addActivityTool, s.handleAddActivity)

	historyTool := mcp.NewTool(
		"get_history",
		mcp.WithDescription("Get recent activity picks, most recent first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Maximum number of picks to return (default: 10)"),
		),
	)
	s.server.AddTool(historyTool, s.handleGetHistory)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// handleSuggestActivity handles the suggest_activity tool.
func (s *Server) handleSuggestActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes := int(request.GetFloat("minutes", 0))
	if minutes <= 0 {
		return mcp.NewToolResultError("minutes must be a positive integer"), nil
	}

	pick, err := s.provider.Pick(ctx, minutes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := map[string]interface{}{
		"minutes":  pick.Minutes,
		"activity": pick.Activity,
	}
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestion: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleListBuckets handles the list_buckets tool.
func (s *Server) handleListBuckets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buckets := s.provider.Buckets()

	var result []map[string]interface{}
	for _, minutes := range buckets.Keys() {
		result = append(result, map[string]interface{}{
			"minutes":    minutes,
			"activities": buckets[minutes],
		})
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal buckets: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleAddActivity handles the add_activity tool.
func (s *Server) handleAddActivity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minutes := int(request.GetFloat("minutes", 0))
	label := request.GetString("label", "")
	if label == "" {
		return mcp.NewToolResultError("label must not be empty"), nil
	}

	if err := s.provider.AddActivityLabel(ctx, minutes, label); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("added %q to the %d minute bucket", label, minutes)), nil
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(request.GetFloat("limit", 10))
	if limit <= 0 {
		limit = 10
	}

	picks, err := s.provider.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	var result []map[string]interface{}
	for _, p := range picks {
		result = append(result, map[string]interface{}{
			"id":        p.ID,
			"minutes":   p.Minutes,
			"activity":  p.Activity,
			"picked_at": p.PickedAt.Format("2006-01-02T15:04:05"),
			"completed": p.Completed,
		})
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
