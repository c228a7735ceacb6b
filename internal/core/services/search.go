package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
	"github.com/custodia-labs/tunesearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.LibrarySearch = (*SearchService)(nil)

// SearchService looks up indexed tracks and playlists.
type SearchService struct {
	index  driven.IndexGateway
	schema domain.IndexSchema
}

// NewSearchService creates a new search service.
func NewSearchService(index driven.IndexGateway) *SearchService {
	return &SearchService{
		index:  index,
		schema: domain.LibrarySchema(""),
	}
}

// GetTrack returns the track with the given Track ID.
func (s *SearchService) GetTrack(ctx context.Context, id int64) (*domain.TrackDocument, error) {
	doc, err := s.byID(ctx, domain.EntityTrack, id)
	if err != nil {
		return nil, err
	}
	return decodeTrack(*doc)
}

// GetPlaylist returns the playlist with the given Playlist ID.
func (s *SearchService) GetPlaylist(ctx context.Context, id int64) (*domain.PlaylistDocument, error) {
	doc, err := s.byID(ctx, domain.EntityPlaylist, id)
	if err != nil {
		return nil, err
	}
	return decodePlaylist(*doc)
}

// FindTrack returns the first track whose field equals value.
// String fields with an unanalysed sub-field match the whole value exactly;
// the content field matches a single lowercased term.
func (s *SearchService) FindTrack(ctx context.Context, field, value string) (*domain.TrackDocument, error) {
	spec, ok := s.schema.Field(domain.EntityTrack, field)
	if !ok {
		return nil, fmt.Errorf("%w: unknown track field %q", domain.ErrInvalidInput, field)
	}

	target, term, err := termFor(spec, value)
	if err != nil {
		return nil, err
	}

	logger.Section("Find Track")
	logger.Debug("Field: %s (%s), term: %s", target, spec.Type, term)

	doc, err := s.index.FindByTerm(ctx, domain.EntityTrack, target, term)
	if err != nil {
		return nil, err
	}
	return decodeTrack(*doc)
}

func (s *SearchService) byID(ctx context.Context, kind domain.EntityKind, id int64) (*domain.StoredDocument, error) {
	docs, err := s.index.FindByIDs(ctx, kind, []string{domain.FormatID(id)})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s %d", domain.ErrNotFound, kind, id)
	}
	return &docs[0], nil
}

// termFor picks the field to query and converts value to its schema type.
func termFor(spec domain.FieldSpec, value string) (string, domain.Value, error) {
	switch spec.Type {
	case domain.FieldTypeLong:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return "", domain.Value{}, fmt.Errorf("%w: %q is not an integer for %s", domain.ErrInvalidInput, value, spec.Name)
		}
		return spec.Name, domain.Integer(n), nil
	case domain.FieldTypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return "", domain.Value{}, fmt.Errorf("%w: %q is not a boolean for %s", domain.ErrInvalidInput, value, spec.Name)
		}
		return spec.Name, domain.Boolean(b), nil
	case domain.FieldTypeDate:
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
		if err != nil {
			return "", domain.Value{}, fmt.Errorf("%w: %q is not an RFC 3339 date for %s", domain.ErrInvalidInput, value, spec.Name)
		}
		return spec.Name, domain.Date(t), nil
	default:
		if spec.Raw {
			return spec.RawField(), domain.Text(value), nil
		}
		return spec.Name, domain.Text(strings.ToLower(value)), nil
	}
}
