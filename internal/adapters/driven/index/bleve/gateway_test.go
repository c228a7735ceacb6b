package bleve

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

func newGateway(t *testing.T, opts ...Option) *Gateway {
	t.Helper()
	g := New(filepath.Join(t.TempDir(), "library.bleve"), opts...)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func newIndexed(t *testing.T, opts ...Option) *Gateway {
	t.Helper()
	g := newGateway(t, opts...)
	require.NoError(t, g.CreateIndex(context.Background(), domain.LibrarySchema("")))
	return g
}

func track(id int64, name string) map[string]any {
	doc := domain.TrackDocument{TrackID: id, Name: name, Content: name}
	return doc.Fields()
}

func decode(t *testing.T, doc domain.StoredDocument) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(doc.Source, &out))
	return out
}

func TestGateway_CreateIndex(t *testing.T) {
	ctx := context.Background()
	g := newGateway(t)

	require.NoError(t, g.CreateIndex(ctx, domain.LibrarySchema("")))
	assert.DirExists(t, g.Path())

	err := g.CreateIndex(ctx, domain.LibrarySchema(""))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestGateway_DeleteIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("missing index is not an error", func(t *testing.T) {
		assert.NoError(t, newGateway(t).DeleteIndex(ctx))
	})

	t.Run("removes directory and allows recreate", func(t *testing.T) {
		g := newIndexed(t)
		require.NoError(t, g.Upsert(ctx, domain.EntityTrack, 1, track(1, "One")))

		require.NoError(t, g.DeleteIndex(ctx))
		assert.NoDirExists(t, g.Path())

		require.NoError(t, g.CreateIndex(ctx, domain.LibrarySchema("")))
		docs, err := g.FindByIDs(ctx, domain.EntityTrack, []string{"1"})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestGateway_UpsertWithoutIndex(t *testing.T) {
	err := newGateway(t).Upsert(context.Background(), domain.EntityTrack, 1, track(1, "One"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "create-mapping")
}

func TestGateway_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	g := newIndexed(t)

	first := track(1001, "First")
	first[domain.FieldRating] = int64(80)
	require.NoError(t, g.Upsert(ctx, domain.EntityTrack, 1001, first))
	require.NoError(t, g.Upsert(ctx, domain.EntityTrack, 1001, track(1001, "Second")))

	docs, err := g.FindByIDs(ctx, domain.EntityTrack, []string{"1001"})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	got := decode(t, docs[0])
	assert.Equal(t, "Second", got["Name"])
	assert.NotContains(t, got, "Rating")
	assert.Equal(t, int64(1001), docs[0].ID)
	assert.Equal(t, domain.EntityTrack, docs[0].Kind)
}

func TestGateway_FindByIDs(t *testing.T) {
	ctx := context.Background()
	g := newIndexed(t)
	for _, id := range []int64{55, 58} {
		require.NoError(t, g.Upsert(ctx, domain.EntityTrack, id, track(id, "t"+strconv.FormatInt(id, 10))))
	}
	require.NoError(t, g.Upsert(ctx, domain.EntityPlaylist, 55, map[string]any{"Playlist ID": int64(55), "Name": "p"}))

	t.Run("follows id order and drops unknown", func(t *testing.T) {
		docs, err := g.FindByIDs(ctx, domain.EntityTrack, []string{"58", "999", "55", "58"})
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, int64(58), docs[0].ID)
		assert.Equal(t, int64(55), docs[1].ID)
	})

	t.Run("scoped to kind", func(t *testing.T) {
		docs, err := g.FindByIDs(ctx, domain.EntityPlaylist, []string{"55", "58"})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "p", decode(t, docs[0])["Name"])
	})

	t.Run("repeated ids collapse", func(t *testing.T) {
		ids := make([]string, 0, 2*domain.MaxResultWindow)
		for range domain.MaxResultWindow {
			ids = append(ids, "55", "58")
		}
		docs, err := g.FindByIDs(ctx, domain.EntityTrack, ids)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, int64(55), docs[0].ID)
		assert.Equal(t, int64(58), docs[1].ID)
	})

	t.Run("empty ids", func(t *testing.T) {
		docs, err := g.FindByIDs(ctx, domain.EntityTrack, []string{})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestGateway_FindByIDs_Ceiling(t *testing.T) {
	ctx := context.Background()
	g := newIndexed(t, WithMaxResultWindow(2))

	ids := []string{"1", "2", "3"}
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, g.Upsert(ctx, domain.EntityTrack, i, track(i, "x")))
	}

	docs, err := g.FindByIDs(ctx, domain.EntityTrack, []string{"1", "2", "404"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	_, err = g.FindByIDs(ctx, domain.EntityTrack, ids)
	assert.ErrorIs(t, err, domain.ErrResultSetTooLarge)
}

func TestGateway_FindByTerm(t *testing.T) {
	ctx := context.Background()
	g := newIndexed(t)

	hymn := domain.TrackDocument{
		TrackID:     58,
		Name:        "Hymn & Anthem",
		Artist:      "Various",
		Year:        domain.Int64(1999),
		DateAdded:   "2014-11-02T18:25:03Z",
		Compilation: true,
		Content:     "1999 Hymn & Anthem Various",
	}
	require.NoError(t, g.Upsert(ctx, domain.EntityTrack, 58, hymn.Fields()))
	require.NoError(t, g.Upsert(ctx, domain.EntityTrack, 55, track(55, "Foo")))

	tests := []struct {
		name  string
		field string
		value domain.Value
		want  int64
	}{
		{"raw exact", "Name.raw", domain.Text("Hymn & Anthem"), 58},
		{"analysed term", "Name", domain.Text("anthem"), 58},
		{"long", "Year", domain.Integer(1999), 58},
		{"track id", "Track ID", domain.Integer(55), 55},
		{"boolean", "Compilation", domain.Boolean(true), 58},
		{"date", "Date Added", domain.Date(time.Date(2014, 11, 2, 18, 25, 3, 0, time.UTC)), 58},
		{"date in another zone", "Date Added", domain.Date(time.Date(2014, 11, 2, 19, 25, 3, 0, time.FixedZone("CET", 3600))), 58},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := g.FindByTerm(ctx, domain.EntityTrack, tt.field, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.ID)
		})
	}

	t.Run("raw is not analysed", func(t *testing.T) {
		_, err := g.FindByTerm(ctx, domain.EntityTrack, "Name.raw", domain.Text("hymn"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("date off by a second", func(t *testing.T) {
		_, err := g.FindByTerm(ctx, domain.EntityTrack, "Date Added", domain.Date(time.Date(2014, 11, 2, 18, 25, 4, 0, time.UTC)))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("other kind", func(t *testing.T) {
		_, err := g.FindByTerm(ctx, domain.EntityPlaylist, "Track ID", domain.Integer(55))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := g.FindByTerm(ctx, domain.EntityTrack, "Name", domain.StringList([]string{"a"}))
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestGateway_ReopensExistingIndex(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.bleve")

	g := New(path)
	require.NoError(t, g.CreateIndex(ctx, domain.LibrarySchema("")))
	require.NoError(t, g.Upsert(ctx, domain.EntityTrack, 55, track(55, "Foo")))
	require.NoError(t, g.Close())

	reopened := New(path)
	t.Cleanup(func() { _ = reopened.Close() })
	doc, err := reopened.FindByTerm(ctx, domain.EntityTrack, "Name.raw", domain.Text("Foo"))
	require.NoError(t, err)
	assert.Equal(t, int64(55), doc.ID)
}

func TestGateway_PlaylistWithNestedTracks(t *testing.T) {
	ctx := context.Background()
	g := newIndexed(t)

	playlist := domain.PlaylistDocument{
		PlaylistID: 21,
		Name:       "Road Trip",
		Items:      []string{"58", "55"},
		Tracks:     []domain.TrackDocument{{TrackID: 58, Name: "Hymn"}, {TrackID: 55, Name: "Foo"}},
	}
	require.NoError(t, g.Upsert(ctx, domain.EntityPlaylist, 21, playlist.Fields()))

	docs, err := g.FindByIDs(ctx, domain.EntityPlaylist, []string{"21"})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var got domain.PlaylistDocument
	require.NoError(t, json.Unmarshal(docs[0].Source, &got))
	assert.Equal(t, "Road Trip", got.Name)
	require.Len(t, got.Tracks, 2)
	assert.Equal(t, int64(58), got.Tracks[0].TrackID)
}
