package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
)

// Ensure TrackResolver implements the interface.
var _ driven.TrackResolver = (*TrackResolver)(nil)

// TrackResolver looks up playlist track references among indexed tracks.
type TrackResolver struct {
	index driven.IndexGateway
}

// NewTrackResolver creates a resolver over index.
func NewTrackResolver(index driven.IndexGateway) *TrackResolver {
	return &TrackResolver{index: index}
}

// ResolveTracks returns the indexed tracks for ids in the order the ids
// first appear. Ids with no indexed track are dropped.
func (r *TrackResolver) ResolveTracks(ctx context.Context, ids []string) ([]domain.TrackDocument, error) {
	docs, err := r.index.FindByIDs(ctx, domain.EntityTrack, ids)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.TrackDocument, 0, len(docs))
	for _, doc := range docs {
		track, err := decodeTrack(doc)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *track)
	}
	return tracks, nil
}

func decodeTrack(doc domain.StoredDocument) (*domain.TrackDocument, error) {
	var track domain.TrackDocument
	if err := json.Unmarshal(doc.Source, &track); err != nil {
		return nil, fmt.Errorf("decoding track %d: %w", doc.ID, err)
	}
	return &track, nil
}

func decodePlaylist(doc domain.StoredDocument) (*domain.PlaylistDocument, error) {
	var playlist domain.PlaylistDocument
	if err := json.Unmarshal(doc.Source, &playlist); err != nil {
		return nil, fmt.Errorf("decoding playlist %d: %w", doc.ID, err)
	}
	return &playlist, nil
}
