package track

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TrackNormaliser = (*Normaliser)(nil)

// ignoredKinds are track kinds that are never music.
var ignoredKinds = map[string]struct{}{
	"Ringtone":                    {},
	"PDF document":                {},
	"Purchased MPEG-4 video file": {},
	"Purchased AAC audio file":    {},
}

// ignoredKindSuffixes match audiobooks, podcasts in book form and apps.
var ignoredKindSuffixes = []string{"book", "app"}

const (
	remoteTrackType = "Remote"
	voiceMemos      = "voice memos"
)

// Normaliser turns raw track records into track documents.
type Normaliser struct{}

// New creates a new track normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise filters and projects a raw track record.
func (n *Normaliser) Normalise(_ context.Context, raw domain.RawRecord) (*driven.TrackResult, error) {
	if reason := skipReason(raw); reason != "" {
		return &driven.TrackResult{SkipReason: reason}, nil
	}

	doc, err := project(raw)
	if err != nil {
		return nil, err
	}
	return &driven.TrackResult{Document: doc}, nil
}

// skipReason returns why raw should not be indexed, or "" to keep it.
// Predicates are checked in order and the first match wins.
func skipReason(raw domain.RawRecord) string {
	if raw.Text(domain.FieldTrackType) == remoteTrackType {
		return "remote track"
	}

	kind := raw.Text(domain.FieldKind)
	if _, ok := ignoredKinds[kind]; ok {
		return fmt.Sprintf("ignored kind %q", kind)
	}
	lower := strings.ToLower(kind)
	for _, suffix := range ignoredKindSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return fmt.Sprintf("ignored kind %q", kind)
		}
	}

	if strings.Contains(strings.ToLower(raw.Text(domain.FieldAlbum)), voiceMemos) {
		return "voice memo"
	}
	return ""
}

// project maps the allow-listed fields of raw onto a TrackDocument.
func project(raw domain.RawRecord) (*domain.TrackDocument, error) {
	idValue, ok := raw.Get(domain.FieldTrackID)
	if !ok {
		return nil, fmt.Errorf("%w: track record without %q", domain.ErrInvalidInput, domain.FieldTrackID)
	}
	id, ok := idValue.AsInteger()
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s", domain.ErrMalformedInteger, domain.FieldTrackID, idValue.Kind())
	}

	doc := &domain.TrackDocument{
		TrackID:     id,
		DateAdded:   raw.Text(domain.FieldDateAdded),
		Name:        raw.Text(domain.FieldName),
		Artist:      raw.Text(domain.FieldArtist),
		AlbumArtist: raw.Text(domain.FieldAlbumArtist),
		Album:       raw.Text(domain.FieldAlbum),
		Genre:       raw.Text(domain.FieldGenre),
		Location:    raw.Text(domain.FieldLocation),
		Compilation: domain.Flag(raw.Has(domain.FieldCompilation)),
		Disabled:    domain.Flag(raw.Has(domain.FieldDisabled)),
	}

	ints := []struct {
		field string
		dst   **int64
	}{
		{domain.FieldTrackNumber, &doc.TrackNumber},
		{domain.FieldYear, &doc.Year},
		{domain.FieldPlayCount, &doc.PlayCount},
		{domain.FieldRating, &doc.Rating},
	}
	for _, f := range ints {
		v, err := optionalInt(raw, f.field)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", id, err)
		}
		*f.dst = v
	}

	// Computed ratings are derived from album ratings, not set by the listener.
	if raw.Has(domain.FieldRatingComputed) {
		doc.Rating = domain.Int64(0)
	}

	doc.Content = domain.ContentOf(raw.Text)
	return doc, nil
}

func optionalInt(raw domain.RawRecord, field string) (*int64, error) {
	v, ok := raw.Get(field)
	if !ok {
		return nil, nil
	}
	n, ok := v.AsInteger()
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s %q", domain.ErrMalformedInteger, field, v.Kind(), v.String())
	}
	return &n, nil
}
