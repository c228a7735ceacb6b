package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "tunesearch://"

	// recentRuns bounds the runs resource.
	recentRuns = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent indexing runs, newest first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "tracks/{trackId}",
		Name:        "track",
		Description: "An indexed track",
		MIMEType:    "application/json",
	}, s.handleTrackResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "playlists/{playlistId}",
		Name:        "playlist",
		Description: "An indexed playlist with its resolved tracks",
		MIMEType:    "application/json",
	}, s.handlePlaylistResource)
}

func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Runs == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	runs, err := s.ports.Runs.Recent(ctx, recentRuns)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type runInfo struct {
		ID        string `json:"id"`
		Operation string `json:"operation"`
		Status    string `json:"status"`
		Indexed   int    `json:"indexed"`
		Skipped   int    `json:"skipped"`
		Error     string `json:"error,omitempty"`
		StartedAt string `json:"started_at"`
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = runInfo{
			ID:        runs[i].ID,
			Operation: string(runs[i].Operation),
			Status:    string(runs[i].Status),
			Indexed:   runs[i].Indexed,
			Skipped:   runs[i].Skipped,
			Error:     runs[i].Error,
			StartedAt: runs[i].StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling runs: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handleTrackResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractID(req.Params.URI, "tracks/")
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	track, err := s.ports.Search.GetTrack(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting track: %w", err)
	}

	data, err := json.MarshalIndent(track, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling track: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handlePlaylistResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractID(req.Params.URI, "playlists/")
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	playlist, err := s.ports.Search.GetPlaylist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting playlist: %w", err)
	}

	data, err := json.MarshalIndent(playlist, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling playlist: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractID extracts the numeric id from a URI like tunesearch://tracks/{id}.
func extractID(uri, collection string) (int64, bool) {
	prefix := uriScheme + collection

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
