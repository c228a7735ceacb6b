package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityKind labels the kind of document stored in the index.
// Both kinds live in one index and are told apart by this label.
type EntityKind string

const (
	// EntityTrack labels track documents.
	EntityTrack EntityKind = "itunes_track"

	// EntityPlaylist labels playlist documents.
	EntityPlaylist EntityKind = "itunes_playlist"
)

// KindField is the document field carrying the entity kind label.
const KindField = "entity_kind"

// DefaultIndexName is the index used when none is configured.
const DefaultIndexName = "itunes_tracks"

// MaxResultWindow is the largest number of hits a single lookup may return.
const MaxResultWindow = 10000

// IsValid returns true if the entity kind is recognised.
func (k EntityKind) IsValid() bool {
	return k == EntityTrack || k == EntityPlaylist
}

// String returns the label.
func (k EntityKind) String() string {
	return string(k)
}

// DocumentKey builds the index-wide key for a document of kind k.
func DocumentKey(k EntityKind, id string) string {
	return string(k) + ":" + id
}

// ParseDocumentKey splits an index-wide key into its kind and numeric id.
func ParseDocumentKey(key string) (EntityKind, int64, error) {
	kind, id, ok := strings.Cut(key, ":")
	if !ok {
		return "", 0, fmt.Errorf("%w: document key %q", ErrInvalidInput, key)
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: document key %q", ErrMalformedInteger, key)
	}
	return EntityKind(kind), n, nil
}

// StoredDocument is a document read back from the index.
type StoredDocument struct {
	// Kind is the entity kind label.
	Kind EntityKind

	// ID is the document id within its kind.
	ID int64

	// Source is the JSON encoding of the document fields as last written.
	Source []byte
}
