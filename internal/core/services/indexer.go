package services

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
	"github.com/custodia-labs/tunesearch/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.LibraryIndexer = (*Indexer)(nil)

// Indexer publishes a library export into the search index.
type Indexer struct {
	library   driven.Library
	index     driven.IndexGateway
	tracks    driven.TrackNormaliser
	playlists driven.PlaylistNormaliser
	runs      driven.RunStore

	schema  domain.IndexSchema
	workers int
	now     func() time.Time
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithWorkers sets the number of concurrent upserts. Values below one mean one.
func WithWorkers(n int) IndexerOption {
	return func(i *Indexer) {
		i.workers = max(n, 1)
	}
}

// WithIndexName sets the name in the schema passed to CreateIndex.
func WithIndexName(name string) IndexerOption {
	return func(i *Indexer) {
		i.schema = domain.LibrarySchema(name)
	}
}

// WithRunStore records every operation in runs.
func WithRunStore(runs driven.RunStore) IndexerOption {
	return func(i *Indexer) {
		i.runs = runs
	}
}

// NewIndexer creates a new indexer.
func NewIndexer(
	library driven.Library,
	index driven.IndexGateway,
	tracks driven.TrackNormaliser,
	playlists driven.PlaylistNormaliser,
	opts ...IndexerOption,
) *Indexer {
	i := &Indexer{
		library:   library,
		index:     index,
		tracks:    tracks,
		playlists: playlists,
		schema:    domain.LibrarySchema(""),
		workers:   1,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// DeleteIndex removes the index.
func (i *Indexer) DeleteIndex(ctx context.Context) error {
	run := i.begin(domain.OperationDeleteIndex)
	logger.Section("Delete Index")

	err := i.index.DeleteIndex(ctx)
	if err != nil {
		err = fmt.Errorf("delete index: %w", err)
	}
	i.finish(ctx, run, err)
	return err
}

// CreateMapping creates the index with the library schema.
func (i *Indexer) CreateMapping(ctx context.Context) error {
	run := i.begin(domain.OperationCreateMapping)
	logger.Section("Create Mapping")
	logger.Debug("Index: %s, kinds: %d", i.schema.Name, len(i.schema.Kinds))

	err := i.index.CreateIndex(ctx, i.schema)
	if err != nil {
		err = fmt.Errorf("create mapping: %w", err)
	}
	i.finish(ctx, run, err)
	return err
}

// IndexTracks walks, normalises and upserts every track, then refreshes the
// index so the tracks are visible to playlist resolution.
func (i *Indexer) IndexTracks(ctx context.Context) (*domain.Run, error) {
	run := i.begin(domain.OperationIndexTracks)
	logger.Section("Index Tracks")
	logger.Debug("Library: %s, workers: %d", i.library.Path(), i.workers)

	err := i.publish(ctx, run, domain.EntityTrack, i.library.Tracks(ctx),
		func(ctx context.Context, raw domain.RawRecord) (int64, map[string]any, string, error) {
			res, err := i.tracks.Normalise(ctx, raw)
			if err != nil {
				return 0, nil, "", err
			}
			if res.Skipped() {
				return 0, nil, res.SkipReason, nil
			}
			return res.Document.TrackID, res.Document.Fields(), "", nil
		})
	if err == nil {
		if err = i.index.Refresh(ctx); err != nil {
			err = fmt.Errorf("refresh: %w", err)
		}
	}
	if err != nil {
		err = fmt.Errorf("index tracks: %w", err)
	}

	i.finish(ctx, run, err)
	return run, err
}

// IndexPlaylists walks, normalises, resolves and upserts every playlist.
func (i *Indexer) IndexPlaylists(ctx context.Context) (*domain.Run, error) {
	run := i.begin(domain.OperationIndexPlaylists)
	logger.Section("Index Playlists")

	err := i.publish(ctx, run, domain.EntityPlaylist, i.library.Playlists(ctx),
		func(ctx context.Context, raw domain.RawRecord) (int64, map[string]any, string, error) {
			res, err := i.playlists.Normalise(ctx, raw)
			if err != nil {
				return 0, nil, "", err
			}
			if res.Skipped() {
				return 0, nil, res.SkipReason, nil
			}
			logger.Debug("Playlist %d %q: %d items, %d tracks resolved",
				res.Document.PlaylistID, res.Document.Name, len(res.Document.Items), len(res.Document.Tracks))
			return res.Document.PlaylistID, res.Document.Fields(), "", nil
		})
	if err == nil {
		if err = i.index.Refresh(ctx); err != nil {
			err = fmt.Errorf("refresh: %w", err)
		}
	}
	if err != nil {
		err = fmt.Errorf("index playlists: %w", err)
	}

	i.finish(ctx, run, err)
	return run, err
}

// IndexAll indexes tracks, then playlists. It stops at the first failure.
func (i *Indexer) IndexAll(ctx context.Context) ([]domain.Run, error) {
	var runs []domain.Run

	run, err := i.IndexTracks(ctx)
	runs = append(runs, *run)
	if err != nil {
		return runs, err
	}

	run, err = i.IndexPlaylists(ctx)
	runs = append(runs, *run)
	return runs, err
}

// normaliseFunc projects one raw record. A non-empty skip reason means the
// record is filtered out.
type normaliseFunc func(ctx context.Context, raw domain.RawRecord) (id int64, fields map[string]any, skip string, err error)

// publish normalises records in document order on the calling goroutine and
// fans the upserts out to a bounded worker pool. Any error stops the walk.
func (i *Indexer) publish(
	ctx context.Context,
	run *domain.Run,
	kind domain.EntityKind,
	records iter.Seq2[domain.RawRecord, error],
	normalise normaliseFunc,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	var indexed atomic.Int64
	walkErr := func() error {
		for raw, err := range records {
			if err != nil {
				return err
			}
			if gctx.Err() != nil {
				return nil
			}

			id, fields, skip, err := normalise(gctx, raw)
			if err != nil {
				return err
			}
			if skip != "" {
				run.Skipped++
				logger.Debug("Skipped %s: %s", kind, skip)
				continue
			}

			g.Go(func() error {
				if err := i.index.Upsert(gctx, kind, id, fields); err != nil {
					return fmt.Errorf("upsert %s %d: %w", kind, id, err)
				}
				indexed.Add(1)
				return nil
			})
		}
		return nil
	}()

	poolErr := g.Wait()
	run.Indexed = int(indexed.Load())
	logger.Info("%s: %d indexed, %d skipped", kind, run.Indexed, run.Skipped)

	if walkErr != nil {
		return walkErr
	}
	if poolErr != nil {
		return poolErr
	}
	return ctx.Err()
}

func (i *Indexer) begin(op domain.Operation) *domain.Run {
	return &domain.Run{
		ID:        uuid.NewString(),
		Operation: op,
		StartedAt: i.now(),
	}
}

// finish stamps the outcome and records the run. A failure to record is
// logged, not returned.
func (i *Indexer) finish(ctx context.Context, run *domain.Run, err error) {
	run.FinishedAt = i.now()
	run.Status = domain.RunSucceeded
	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
	}
	if i.runs == nil {
		return
	}
	// Record even when ctx was cancelled mid-run.
	if saveErr := i.runs.Save(context.WithoutCancel(ctx), *run); saveErr != nil {
		logger.Warn("Recording %s run failed: %v", run.Operation, saveErr)
	}
}
