package playlist

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.PlaylistNormaliser = (*Normaliser)(nil)

const tonesPlaylist = "Tones"

// Normaliser turns raw playlist records into playlist documents and
// resolves their track references against the index.
type Normaliser struct {
	resolver driven.TrackResolver
}

// New creates a new playlist normaliser.
// The resolver may be nil, in which case Tracks are never resolved.
func New(resolver driven.TrackResolver) *Normaliser {
	return &Normaliser{resolver: resolver}
}

// Normalise filters, projects and resolves a raw playlist record.
func (n *Normaliser) Normalise(ctx context.Context, raw domain.RawRecord) (*driven.PlaylistResult, error) {
	if reason := skipReason(raw); reason != "" {
		return &driven.PlaylistResult{SkipReason: reason}, nil
	}

	doc, err := project(raw)
	if err != nil {
		return nil, err
	}

	if doc.IsTopLevelFolder() {
		doc.Items = nil
	}

	if len(doc.Items) > 0 && n.resolver != nil {
		tracks, err := n.resolver.ResolveTracks(ctx, doc.Items)
		if err != nil {
			return nil, fmt.Errorf("playlist %d: resolving tracks: %w", doc.PlaylistID, err)
		}
		if len(tracks) > 0 {
			doc.Tracks = tracks
		}
	}

	return &driven.PlaylistResult{Document: doc}, nil
}

// skipReason returns why raw should not be indexed, or "" to keep it.
func skipReason(raw domain.RawRecord) string {
	switch {
	case isTrue(raw, domain.FieldMaster):
		return "library master playlist"
	case isTrue(raw, domain.FieldMusic):
		return "music media-kind playlist"
	case isTrue(raw, domain.FieldTVShows):
		return "tv shows media-kind playlist"
	case raw.Text(domain.FieldName) == tonesPlaylist:
		return "tones playlist"
	case !raw.Has(domain.FieldPlaylistItems):
		return "no playlist items"
	default:
		return ""
	}
}

func project(raw domain.RawRecord) (*domain.PlaylistDocument, error) {
	idValue, ok := raw.Get(domain.FieldPlaylistID)
	if !ok {
		return nil, fmt.Errorf("%w: playlist record without %q", domain.ErrInvalidInput, domain.FieldPlaylistID)
	}
	id, ok := idValue.AsInteger()
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s", domain.ErrMalformedInteger, domain.FieldPlaylistID, idValue.Kind())
	}

	doc := &domain.PlaylistDocument{
		PlaylistID:         id,
		PersistentID:       raw.Text(domain.FieldPlaylistPersistentID),
		Name:               raw.Text(domain.FieldName),
		Folder:             domain.Flag(isTrue(raw, domain.FieldFolder)),
		Master:             domain.Flag(isTrue(raw, domain.FieldMaster)),
		Music:              domain.Flag(isTrue(raw, domain.FieldMusic)),
		TVShows:            domain.Flag(isTrue(raw, domain.FieldTVShows)),
		ParentPersistentID: raw.Text(domain.FieldParentPersistentID),
	}

	if v, ok := raw.Get(domain.FieldPlaylistItems); ok {
		items, isList := v.AsStringList()
		if !isList {
			return nil, fmt.Errorf("%w: %q is %s", domain.ErrUnsupportedNodeKind, domain.FieldPlaylistItems, v.Kind())
		}
		doc.Items = items
	}

	return doc, nil
}

func isTrue(raw domain.RawRecord, key string) bool {
	v, ok := raw.Get(key)
	return ok && v.IsTrue()
}
