package services

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexmem "github.com/custodia-labs/tunesearch/internal/adapters/driven/index/memory"
	"github.com/custodia-labs/tunesearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tunesearch/internal/connectors/itunes"
	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/normalisers/playlist"
	"github.com/custodia-labs/tunesearch/internal/normalisers/track"
)

const fixture = "../../plist/testdata/library.xml"

type pipeline struct {
	indexer *Indexer
	index   *indexmem.Gateway
	runs    *memory.RunStore
	search  *SearchService
}

func newPipeline(t *testing.T, opts ...IndexerOption) *pipeline {
	t.Helper()
	lib, err := itunes.New(fixture)
	require.NoError(t, err)

	index := indexmem.New()
	runs := memory.NewRunStore()
	opts = append([]IndexerOption{WithRunStore(runs)}, opts...)
	indexer := NewIndexer(lib, index, track.New(), playlist.New(NewTrackResolver(index)), opts...)

	return &pipeline{indexer: indexer, index: index, runs: runs, search: NewSearchService(index)}
}

func (p *pipeline) prepare(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, p.indexer.DeleteIndex(ctx))
	require.NoError(t, p.indexer.CreateMapping(ctx))
}

func TestIndexer_IndexTracks(t *testing.T) {
	p := newPipeline(t)
	p.prepare(t)
	ctx := context.Background()

	run, err := p.indexer.IndexTracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationIndexTracks, run.Operation)
	assert.Equal(t, domain.RunSucceeded, run.Status)
	assert.Equal(t, 2, run.Indexed)
	assert.Equal(t, 2, run.Skipped)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 2, p.index.Count(domain.EntityTrack))

	foo, err := p.search.GetTrack(ctx, 55)
	require.NoError(t, err)
	assert.Equal(t, "Foo", foo.Name)
	assert.Equal(t, "Bar", foo.Artist)
	require.NotNil(t, foo.Rating)
	assert.Equal(t, int64(0), *foo.Rating)
	assert.Equal(t, "Foo Bar", foo.Content)
	assert.Equal(t, "2014-11-02T18:25:03Z", foo.DateAdded)

	_, err = p.search.GetTrack(ctx, 56)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = p.search.GetTrack(ctx, 57)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIndexer_IndexPlaylists(t *testing.T) {
	p := newPipeline(t)
	p.prepare(t)
	ctx := context.Background()

	_, err := p.indexer.IndexTracks(ctx)
	require.NoError(t, err)

	run, err := p.indexer.IndexPlaylists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Indexed)
	assert.Equal(t, 3, run.Skipped)

	for _, id := range []int64{1, 9, 22} {
		_, err := p.search.GetPlaylist(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "playlist %d", id)
	}

	folder, err := p.search.GetPlaylist(ctx, 20)
	require.NoError(t, err)
	assert.True(t, folder.Folder.Set())
	assert.Empty(t, folder.Items)
	assert.Empty(t, folder.Tracks)

	trip, err := p.search.GetPlaylist(ctx, 21)
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", trip.Name)
	assert.Equal(t, []string{"58", "55", "999"}, trip.Items)
	require.Len(t, trip.Tracks, 2)
	assert.Equal(t, "Hymn & Anthem", trip.Tracks[0].Name)
	assert.Equal(t, "Foo", trip.Tracks[1].Name)
}

func TestIndexer_PlaylistsBeforeTracksResolveNothing(t *testing.T) {
	p := newPipeline(t)
	p.prepare(t)

	_, err := p.indexer.IndexPlaylists(context.Background())
	require.NoError(t, err)

	trip, err := p.search.GetPlaylist(context.Background(), 21)
	require.NoError(t, err)
	assert.Nil(t, trip.Tracks)
}

func TestIndexer_IndexAll(t *testing.T) {
	p := newPipeline(t, WithWorkers(4))
	p.prepare(t)
	ctx := context.Background()

	runs, err := p.indexer.IndexAll(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, domain.OperationIndexTracks, runs[0].Operation)
	assert.Equal(t, domain.OperationIndexPlaylists, runs[1].Operation)

	history, err := p.runs.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestIndexer_Reindex(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	for range 2 {
		p.prepare(t)
		_, err := p.indexer.IndexAll(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, p.index.Count(domain.EntityTrack))
	assert.Equal(t, 2, p.index.Count(domain.EntityPlaylist))
}

func TestIndexer_CreateMappingTwice(t *testing.T) {
	p := newPipeline(t)
	p.prepare(t)
	ctx := context.Background()

	err := p.indexer.CreateMapping(ctx)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	latest, err := p.runs.Latest(ctx, domain.OperationCreateMapping)
	require.NoError(t, err)
	assert.Equal(t, domain.RunFailed, latest.Status)
	assert.Contains(t, latest.Error, "already exists")
}

func TestIndexer_TracksWithoutMapping(t *testing.T) {
	p := newPipeline(t)

	run, err := p.indexer.IndexTracks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.RunFailed, run.Status)
	assert.Zero(t, run.Indexed)
}

// stubLibrary yields fixed records.
type stubLibrary struct {
	tracks []domain.RawRecord
	err    error
}

func (l *stubLibrary) Tracks(context.Context) iter.Seq2[domain.RawRecord, error] {
	return func(yield func(domain.RawRecord, error) bool) {
		for _, r := range l.tracks {
			if !yield(r, nil) {
				return
			}
		}
		if l.err != nil {
			yield(domain.RawRecord{}, l.err)
		}
	}
}

func (l *stubLibrary) Playlists(context.Context) iter.Seq2[domain.RawRecord, error] {
	return func(func(domain.RawRecord, error) bool) {}
}

func (l *stubLibrary) Path() string { return "stub" }

func trackRecord(id int64, name string) domain.RawRecord {
	return domain.NewRecordBuilder().
		Set(domain.FieldTrackID, domain.Integer(id)).
		Set(domain.FieldName, domain.Text(name)).
		Set(domain.FieldKind, domain.Text("MPEG audio file")).
		Build()
}

func TestIndexer_DuplicateTrackIDLastWins(t *testing.T) {
	lib := &stubLibrary{tracks: []domain.RawRecord{trackRecord(1001, "First"), trackRecord(1001, "Second")}}
	index := indexmem.New()
	indexer := NewIndexer(lib, index, track.New(), playlist.New(nil))
	ctx := context.Background()
	require.NoError(t, indexer.CreateMapping(ctx))

	run, err := indexer.IndexTracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Indexed)
	assert.Equal(t, 1, index.Count(domain.EntityTrack))

	got, err := NewSearchService(index).GetTrack(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
}

func TestIndexer_LibraryError(t *testing.T) {
	boom := errors.New("truncated export")
	lib := &stubLibrary{tracks: []domain.RawRecord{trackRecord(1, "One")}, err: boom}
	index := indexmem.New()
	runs := memory.NewRunStore()
	indexer := NewIndexer(lib, index, track.New(), playlist.New(nil), WithRunStore(runs))
	ctx := context.Background()
	require.NoError(t, indexer.CreateMapping(ctx))

	run, err := indexer.IndexTracks(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, domain.RunFailed, run.Status)
	assert.Equal(t, 1, run.Indexed)

	latest, err := runs.Latest(ctx, domain.OperationIndexTracks)
	require.NoError(t, err)
	assert.Contains(t, latest.Error, "truncated export")
}

func TestIndexer_NormaliseError(t *testing.T) {
	bad := domain.NewRecordBuilder().Set(domain.FieldName, domain.Text("no id")).Build()
	lib := &stubLibrary{tracks: []domain.RawRecord{bad}}
	index := indexmem.New()
	indexer := NewIndexer(lib, index, track.New(), playlist.New(nil))
	require.NoError(t, indexer.CreateMapping(context.Background()))

	_, err := indexer.IndexTracks(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexer_CancelledContext(t *testing.T) {
	p := newPipeline(t)
	p.prepare(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := p.indexer.IndexTracks(ctx)
	require.Error(t, err)
	assert.Equal(t, domain.RunFailed, run.Status)

	latest, err := p.runs.Latest(context.Background(), domain.OperationIndexTracks)
	require.NoError(t, err)
	assert.Equal(t, run.ID, latest.ID)
}

func TestWithWorkers_Floor(t *testing.T) {
	i := NewIndexer(nil, nil, nil, nil, WithWorkers(0))
	assert.Equal(t, 1, i.workers)
}

func TestWithIndexName(t *testing.T) {
	i := NewIndexer(nil, nil, nil, nil, WithIndexName("custom"))
	assert.Equal(t, "custom", i.schema.Name)
}
