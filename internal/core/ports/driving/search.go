package driving

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// LibrarySearch looks up indexed documents.
type LibrarySearch interface {
	// GetTrack returns the track with the given Track ID.
	GetTrack(ctx context.Context, id int64) (*domain.TrackDocument, error)

	// FindTrack returns the first track whose field exactly equals value.
	// The value is interpreted according to the field's schema type.
	FindTrack(ctx context.Context, field, value string) (*domain.TrackDocument, error)

	// GetPlaylist returns the playlist with the given Playlist ID.
	GetPlaylist(ctx context.Context, id int64) (*domain.PlaylistDocument, error)
}
