// Package mcptools exposes song request moderation as MCP tools, so staff can run
// the queue from an assistant during an event.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/cdentertainment/site-api/internal/app/model"
	"github.com/cdentertainment/site-api/internal/app/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Moderator holds the tool handlers.
type Moderator struct {
	logger *zap.Logger
	svc    service.SongRequestService
}

// NewModerator creates the moderation tool set.
func NewModerator(svc service.SongRequestService, logger *zap.Logger) *Moderator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Moderator{logger: logger, svc: svc}
}

// Register adds every moderation tool to s.
func (m *Moderator) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_song_requests",
		mcp.WithDescription("List active (not archived) song requests, newest first."),
	), m.ListRequests)

	s.AddTool(mcp.NewTool("get_request_gate",
		mcp.WithDescription("Report whether guests can currently submit song requests."),
	), m.GetGate)

	s.AddTool(mcp.NewTool("set_request_gate",
		mcp.WithDescription("Open or close song requests for guests."),
		mcp.WithBoolean("accepting",
			mcp.Required(),
			mcp.Description("true to accept new requests, false to close them"),
		),
	), m.SetGate)

	s.AddTool(mcp.NewTool("toggle_request_gate",
		mcp.WithDescription("Flip the song request gate and report the new state."),
	), m.ToggleGate)

	s.AddTool(mcp.NewTool("archive_song_request",
		mcp.WithDescription("Mark one song request as played or handled. It leaves the active list."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Song request id")),
	), m.ArchiveRequest)

	s.AddTool(mcp.NewTool("delete_song_request",
		mcp.WithDescription("Permanently delete one song request, archived or not."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Song request id")),
	), m.DeleteRequest)

	s.AddTool(mcp.NewTool("archive_all_song_requests",
		mcp.WithDescription("Archive every active song request, e.g. at the end of an event."),
	), m.ArchiveAll)
}

type requestSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	ArtistNames string `json:"artistNames"`
	URL         string `json:"url"`
	RequestedAt string `json:"requestedAt"`
}

func (m *Moderator) ListRequests(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requests, err := m.svc.ListActiveRequests(ctx)
	if err != nil {
		return toolError("list song requests", err), nil
	}
	out := make([]requestSummary, 0, len(requests))
	for _, r := range requests {
		out = append(out, summarize(r))
	}
	return jsonResult(out)
}

func (m *Moderator) GetGate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accepting, err := m.svc.IsAcceptingRequests(ctx)
	if err != nil {
		return toolError("read request gate", err), nil
	}
	return jsonResult(map[string]bool{"acceptingRequests": accepting})
}

func (m *Moderator) SetGate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accepting, err := request.RequireBool("accepting")
	if err != nil {
		return mcp.NewToolResultError("accepting is required"), nil
	}
	got, err := m.svc.SetAcceptingRequests(ctx, accepting)
	if err != nil {
		return toolError("set request gate", err), nil
	}
	m.logger.Info("request gate set via mcp", zap.Bool("accepting", got))
	return jsonResult(map[string]bool{"acceptingRequests": got})
}

func (m *Moderator) ToggleGate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	got, err := m.svc.ToggleAcceptingRequests(ctx)
	if err != nil {
		return toolError("toggle request gate", err), nil
	}
	m.logger.Info("request gate toggled via mcp", zap.Bool("accepting", got))
	return jsonResult(map[string]bool{"acceptingRequests": got})
}

func (m *Moderator) ArchiveRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}
	if err := m.svc.ArchiveRequest(ctx, id); err != nil {
		return toolError(fmt.Sprintf("archive song request %d", id), err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Archived song request %d.", id)), nil
}

func (m *Moderator) DeleteRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(request)
	if errResult != nil {
		return errResult, nil
	}
	if err := m.svc.DeleteRequest(ctx, id); err != nil {
		return toolError(fmt.Sprintf("delete song request %d", id), err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted song request %d.", id)), nil
}

func (m *Moderator) ArchiveAll(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := m.svc.ArchiveAllActive(ctx)
	if err != nil {
		return toolError("archive all song requests", err), nil
	}
	return jsonResult(map[string]int64{"archived": n})
}

func requireID(request mcp.CallToolRequest) (uint, *mcp.CallToolResult) {
	raw, err := request.RequireFloat("id")
	if err != nil {
		return 0, mcp.NewToolResultError("id is required")
	}
	if raw < 1 || raw != math.Trunc(raw) || raw > math.MaxUint32 {
		return 0, mcp.NewToolResultError("id must be a positive whole number")
	}
	return uint(raw), nil
}

// toolError reports a failure to the model without leaking store details.
func toolError(action string, err error) *mcp.CallToolResult {
	if errors.Is(err, service.ErrNotFound) {
		return mcp.NewToolResultError(action + ": song request not found")
	}
	return mcp.NewToolResultError(action + ": the request store is unavailable, try again")
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func summarize(r model.SongRequest) requestSummary {
	return requestSummary{
		ID:          r.ID,
		Title:       r.Title,
		ArtistNames: r.ArtistNames,
		URL:         r.URL,
		RequestedAt: r.RequestedAt.UTC().Format("2006-01-02 15:04"),
	}
}
