// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// LookupKind selects what a query looks up.
type LookupKind int

const (
	// LookupTrack looks up tracks by id or field value.
	LookupTrack LookupKind = iota
	// LookupPlaylist looks up playlists by id.
	LookupPlaylist
)

// String returns the label shown in the prompt.
func (k LookupKind) String() string {
	if k == LookupPlaylist {
		return "Playlist"
	}
	return "Track"
}

// Next cycles to the other kind.
func (k LookupKind) Next() LookupKind {
	if k == LookupTrack {
		return LookupPlaylist
	}
	return LookupTrack
}

// LookupRequested is a command to run a query.
type LookupRequested struct {
	Kind  LookupKind
	Query string
}

// LookupCompleted carries a lookup result back to the model.
// Exactly one of Track, Playlist or Err is set.
type LookupCompleted struct {
	Query    string
	Track    *domain.TrackDocument
	Playlist *domain.PlaylistDocument
	Err      error
}
