package mcp

import (
	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search looks up tracks and playlists.
	Search driving.LibrarySearch

	// Runs reports indexing history. Optional.
	Runs driving.RunHistory
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
