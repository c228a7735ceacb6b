package playlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

// mockResolver records lookups and answers from a fixed track set.
type mockResolver struct {
	tracks map[string]domain.TrackDocument
	calls  [][]string
	err    error
}

func (m *mockResolver) ResolveTracks(_ context.Context, ids []string) ([]domain.TrackDocument, error) {
	m.calls = append(m.calls, ids)
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.TrackDocument
	for _, id := range ids {
		if t, ok := m.tracks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func newResolver() *mockResolver {
	return &mockResolver{tracks: map[string]domain.TrackDocument{
		"55": {TrackID: 55, Name: "Foo", Content: "Foo"},
		"58": {TrackID: 58, Name: "Hymn", Content: "Hymn"},
	}}
}

type field struct {
	key   string
	value domain.Value
}

func record(fields ...field) domain.RawRecord {
	b := domain.NewRecordBuilder()
	for _, f := range fields {
		b.Set(f.key, f.value)
	}
	return b.Build()
}

func id(n int64) field               { return field{"Playlist ID", domain.Integer(n)} }
func name(s string) field            { return field{"Name", domain.Text(s)} }
func yes(key string) field           { return field{key, domain.Boolean(true)} }
func items(ids ...string) field      { return field{"Playlist Items", domain.StringList(ids)} }
func parent(persistent string) field { return field{"Parent Persistent ID", domain.Text(persistent)} }

func TestNormaliser_Skips(t *testing.T) {
	tests := []struct {
		name   string
		raw    domain.RawRecord
		reason string
	}{
		{"library master", record(id(1), name("Library"), yes("Master"), items("55")), "library master"},
		{"music", record(id(2), name("Music"), yes("Music"), items("55")), "music"},
		{"tv shows", record(id(3), name("TV Shows"), yes("TV Shows"), items("55")), "tv shows"},
		{"tones", record(id(9), name("Tones"), items()), "tones"},
		{"tones without items", record(id(9), name("Tones")), "tones"},
		{"no items key", record(id(10), name("Empty Smart List")), "no playlist items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newResolver()
			result, err := New(resolver).Normalise(context.Background(), tt.raw)
			require.NoError(t, err)
			assert.True(t, result.Skipped())
			assert.Contains(t, result.SkipReason, tt.reason)
			assert.Empty(t, resolver.calls)
		})
	}
}

func TestNormaliser_ResolvesTracks(t *testing.T) {
	resolver := newResolver()
	raw := record(
		id(21),
		name("Road Trip"),
		field{"Playlist Persistent ID", domain.Text("0000000000000021")},
		parent("0000000000000020"),
		items("58", "55", "999"),
	)

	result, err := New(resolver).Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.False(t, result.Skipped())

	doc := result.Document
	assert.Equal(t, int64(21), doc.PlaylistID)
	assert.Equal(t, "Road Trip", doc.Name)
	assert.Equal(t, "0000000000000021", doc.PersistentID)
	assert.Equal(t, "0000000000000020", doc.ParentPersistentID)
	assert.Equal(t, []string{"58", "55", "999"}, doc.Items)
	require.Len(t, doc.Tracks, 2)
	assert.Equal(t, int64(58), doc.Tracks[0].TrackID)
	assert.Equal(t, int64(55), doc.Tracks[1].TrackID)
	assert.Equal(t, [][]string{{"58", "55", "999"}}, resolver.calls)
}

func TestNormaliser_TopLevelFolderDropsItems(t *testing.T) {
	resolver := newResolver()
	raw := record(id(20), name("Favourites"), yes("Folder"), items("55", "58"))

	result, err := New(resolver).Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.False(t, result.Skipped())

	doc := result.Document
	assert.True(t, doc.Folder.Set())
	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.Tracks)
	assert.NotContains(t, doc.Fields(), "Playlist Items")
	assert.Empty(t, resolver.calls)
}

func TestNormaliser_NestedFolderKeepsItems(t *testing.T) {
	resolver := newResolver()
	raw := record(id(23), name("Sub Folder"), yes("Folder"), parent("0000000000000020"), items("55"))

	result, err := New(resolver).Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"55"}, result.Document.Items)
	assert.Len(t, result.Document.Tracks, 1)
}

func TestNormaliser_EmptyItemsLeavesTracksUnset(t *testing.T) {
	resolver := newResolver()
	result, err := New(resolver).Normalise(context.Background(), record(id(30), name("New Playlist"), items()))
	require.NoError(t, err)
	require.False(t, result.Skipped())
	assert.Nil(t, result.Document.Tracks)
	assert.Empty(t, resolver.calls)
}

func TestNormaliser_UnresolvedTracksLeaveTracksUnset(t *testing.T) {
	resolver := newResolver()
	result, err := New(resolver).Normalise(context.Background(), record(id(31), name("Gone"), items("404")))
	require.NoError(t, err)
	assert.Equal(t, []string{"404"}, result.Document.Items)
	assert.Nil(t, result.Document.Tracks)
	assert.NotContains(t, result.Document.Fields(), "Tracks")
}

func TestNormaliser_FalseFlagsAreNotSet(t *testing.T) {
	raw := record(id(32), name("Visible"), field{"Master", domain.Boolean(false)}, items())
	result, err := New(nil).Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.False(t, result.Skipped())
	assert.False(t, result.Document.Master.Set())
	assert.NotContains(t, result.Document.Fields(), "Master")
}

func TestNormaliser_ResolverError(t *testing.T) {
	resolver := &mockResolver{err: domain.ErrResultSetTooLarge}
	_, err := New(resolver).Normalise(context.Background(), record(id(33), name("Huge"), items("1")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrResultSetTooLarge))
	assert.Contains(t, err.Error(), "playlist 33")
}

func TestNormaliser_Errors(t *testing.T) {
	t.Run("missing playlist id", func(t *testing.T) {
		_, err := New(nil).Normalise(context.Background(), record(name("x"), items()))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("items not a list", func(t *testing.T) {
		raw := record(id(1), name("x"), field{"Playlist Items", domain.Text("55")})
		_, err := New(nil).Normalise(context.Background(), raw)
		assert.ErrorIs(t, err, domain.ErrUnsupportedNodeKind)
	})
}
