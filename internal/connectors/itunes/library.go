package itunes

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
	"github.com/custodia-labs/tunesearch/internal/plist"
)

// Ensure Library implements the interface.
var _ driven.Library = (*Library)(nil)

// Library is a file-backed iTunes library export.
type Library struct {
	path string
}

// New returns a library for the export at path.
// Returns domain.ErrSourceNotFound if path does not exist or is a directory.
func New(path string) (*Library, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrSourceNotFound, path)
	}
	return &Library{path: path}, nil
}

// Path returns the export location.
func (l *Library) Path() string {
	return l.path
}

// Tracks yields every track dictionary in the export.
func (l *Library) Tracks(ctx context.Context) iter.Seq2[domain.RawRecord, error] {
	return l.records(ctx, plist.TrackRecords)
}

// Playlists yields every playlist dictionary in the export.
func (l *Library) Playlists(ctx context.Context) iter.Seq2[domain.RawRecord, error] {
	return l.records(ctx, plist.PlaylistRecords)
}

func (l *Library) records(ctx context.Context, sel plist.Selector) iter.Seq2[domain.RawRecord, error] {
	return func(yield func(domain.RawRecord, error) bool) {
		f, err := os.Open(l.path)
		if err != nil {
			yield(domain.RawRecord{}, fmt.Errorf("%w: %w", domain.ErrSourceNotFound, err))
			return
		}
		defer f.Close()

		for rec, err := range plist.Walk(f, sel) {
			if err != nil {
				yield(domain.RawRecord{}, fmt.Errorf("%s: %w", l.path, err))
				return
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield(domain.RawRecord{}, ctxErr)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
