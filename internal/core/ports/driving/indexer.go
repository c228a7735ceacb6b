package driving

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// LibraryIndexer publishes the library export into the search index.
type LibraryIndexer interface {
	// DeleteIndex removes the index.
	DeleteIndex(ctx context.Context) error

	// CreateMapping creates the index with the library schema.
	CreateMapping(ctx context.Context) error

	// IndexTracks walks, normalises and upserts every track.
	// Tracks are visible to searches when it returns.
	IndexTracks(ctx context.Context) (*domain.Run, error)

	// IndexPlaylists walks, normalises, resolves and upserts every playlist.
	// Tracks must already be indexed.
	IndexPlaylists(ctx context.Context) (*domain.Run, error)

	// IndexAll indexes tracks, then playlists.
	IndexAll(ctx context.Context) ([]domain.Run, error)
}
