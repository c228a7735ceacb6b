package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// FindTrackInput is the input schema for the find_track tool.
type FindTrackInput struct {
	Field string `json:"field" jsonschema:"track field to match, e.g. Artist, Year or content"`
	Value string `json:"value" jsonschema:"exact value the field must equal"`
}

// GetByIDInput is the input schema for the id lookup tools.
type GetByIDInput struct {
	ID int64 `json:"id" jsonschema:"Track ID or Playlist ID from the library export"`
}

// TrackOutput is the output schema for the track tools.
type TrackOutput struct {
	Track *domain.TrackDocument `json:"track"`
}

// PlaylistOutput is the output schema for the playlist tool.
type PlaylistOutput struct {
	Playlist *domain.PlaylistDocument `json:"playlist"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolFindTrack,
		Description: "Find the first indexed track whose field exactly equals a value",
	}, s.handleFindTrack)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolGetTrack,
		Description: "Get an indexed track by Track ID",
	}, s.handleGetTrack)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolGetPlaylist,
		Description: "Get an indexed playlist and its resolved tracks by Playlist ID",
	}, s.handleGetPlaylist)
}

func (s *Server) handleFindTrack(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindTrackInput,
) (*mcp.CallToolResult, TrackOutput, error) {
	track, err := s.ports.Search.FindTrack(ctx, input.Field, input.Value)
	if err != nil {
		return nil, TrackOutput{}, err
	}
	return nil, TrackOutput{Track: track}, nil
}

func (s *Server) handleGetTrack(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetByIDInput,
) (*mcp.CallToolResult, TrackOutput, error) {
	track, err := s.ports.Search.GetTrack(ctx, input.ID)
	if err != nil {
		return nil, TrackOutput{}, err
	}
	return nil, TrackOutput{Track: track}, nil
}

func (s *Server) handleGetPlaylist(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetByIDInput,
) (*mcp.CallToolResult, PlaylistOutput, error) {
	playlist, err := s.ports.Search.GetPlaylist(ctx, input.ID)
	if err != nil {
		return nil, PlaylistOutput{}, err
	}
	return nil, PlaylistOutput{Playlist: playlist}, nil
}
