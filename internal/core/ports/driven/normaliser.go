package driven

import (
	"context"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// TrackNormaliser projects raw track records onto the track schema.
type TrackNormaliser interface {
	// Normalise returns the track document, or a skipped result when a filter rejects the record.
	Normalise(ctx context.Context, raw domain.RawRecord) (*TrackResult, error)
}

// PlaylistNormaliser projects raw playlist records and resolves their tracks.
type PlaylistNormaliser interface {
	// Normalise returns the playlist document, or a skipped result when a filter rejects the record.
	Normalise(ctx context.Context, raw domain.RawRecord) (*PlaylistResult, error)
}

// TrackResolver looks up already-indexed tracks by id.
type TrackResolver interface {
	// ResolveTracks returns the indexed tracks for ids. Unknown ids are dropped.
	ResolveTracks(ctx context.Context, ids []string) ([]domain.TrackDocument, error)
}

// TrackResult contains the output of track normalisation.
// Exactly one of Document and SkipReason is set.
type TrackResult struct {
	// Document is the normalised track.
	Document *domain.TrackDocument

	// SkipReason explains why the record was filtered out.
	SkipReason string
}

// Skipped reports whether the record was filtered out.
func (r *TrackResult) Skipped() bool {
	return r.Document == nil
}

// PlaylistResult contains the output of playlist normalisation.
// Exactly one of Document and SkipReason is set.
type PlaylistResult struct {
	// Document is the normalised playlist.
	Document *domain.PlaylistDocument

	// SkipReason explains why the record was filtered out.
	SkipReason string
}

// Skipped reports whether the record was filtered out.
func (r *PlaylistResult) Skipped() bool {
	return r.Document == nil
}
