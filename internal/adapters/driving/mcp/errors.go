// Package mcp provides an MCP (Model Context Protocol) server adapter for tunesearch.
// It lets AI assistants look up indexed tracks and playlists.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
