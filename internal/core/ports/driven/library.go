package driven

import (
	"context"
	"iter"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// Library reads raw records out of a library export.
// Each call re-reads the export from the start.
type Library interface {
	// Tracks yields every track record in document order.
	// Iteration stops after the first error.
	Tracks(ctx context.Context) iter.Seq2[domain.RawRecord, error]

	// Playlists yields every playlist record in document order.
	// Iteration stops after the first error.
	Playlists(ctx context.Context) iter.Seq2[domain.RawRecord, error]

	// Path returns the export location.
	Path() string
}
