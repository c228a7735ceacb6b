package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tunesearch/internal/adapters/driven/config/file"
	bleveindex "github.com/custodia-labs/tunesearch/internal/adapters/driven/index/bleve"
	"github.com/custodia-labs/tunesearch/internal/adapters/driven/index/elastic"
	"github.com/custodia-labs/tunesearch/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tunesearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/tunesearch/internal/connectors/itunes"
	"github.com/custodia-labs/tunesearch/internal/core/domain"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driven"
	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
	"github.com/custodia-labs/tunesearch/internal/core/services"
	"github.com/custodia-labs/tunesearch/internal/logger"
	"github.com/custodia-labs/tunesearch/internal/normalisers/playlist"
	"github.com/custodia-labs/tunesearch/internal/normalisers/track"
)

// app wires driven adapters into the services the CLI drives.
type app struct {
	settings driving.SettingsService
}

var _ cli.Wiring = (*app)(nil)

// Settings opens the TOML config store.
func (a *app) Settings(o cli.Overrides) (driving.SettingsService, error) {
	store, err := file.NewConfigStore(o.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	a.settings = services.NewSettingsService(store)
	return a.settings, nil
}

// Open builds the index gateway, run store and, when withExport is set,
// the indexing pipeline over the library export.
func (a *app) Open(_ context.Context, o cli.Overrides, withExport bool) (*cli.Services, error) {
	if a.settings == nil {
		if _, err := a.Settings(o); err != nil {
			return nil, err
		}
	}

	settings, err := a.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := applyOverrides(settings, o); err != nil {
		return nil, err
	}

	dataDir, err := dataDirFor(o.ConfigDir)
	if err != nil {
		return nil, err
	}

	runs, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}

	index, err := newGateway(settings, dataDir)
	if err != nil {
		return nil, discard(err, runs.Close)
	}
	logger.Debug("index backend %s, index %s", settings.Index.Backend, settings.Index.Name)

	closeAll := func() error {
		return errors.Join(index.Close(), runs.Close())
	}

	svc := &cli.Services{
		Search:      services.NewSearchService(index),
		Runs:        services.NewRunService(runs),
		LibraryPath: settings.Library.Path,
		Close:       closeAll,
	}

	if withExport {
		library, err := itunes.New(settings.Library.Path)
		if err != nil {
			return nil, discard(err, closeAll)
		}
		svc.Indexer = services.NewIndexer(
			library,
			index,
			track.New(),
			playlist.New(services.NewTrackResolver(index)),
			services.WithWorkers(settings.Indexing.Workers),
			services.WithIndexName(settings.Index.Name),
			services.WithRunStore(runs),
		)
	}

	return svc, nil
}

func applyOverrides(settings *domain.AppSettings, o cli.Overrides) error {
	if o.LibraryPath != "" {
		settings.Library.Path = o.LibraryPath
	}
	if o.Backend != "" {
		backend := domain.IndexBackend(strings.ToLower(o.Backend))
		if !backend.IsValid() {
			return fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidInput, o.Backend)
		}
		settings.Index.Backend = backend
	}
	return nil
}

// discard releases what a failed Open already holds and joins any close
// failure into err.
func discard(err error, closeFn func() error) error {
	return errors.Join(err, closeFn())
}

// dataDirFor returns the directory holding the run database and embedded index.
func dataDirFor(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".tunesearch")
	}
	return filepath.Join(configDir, "data"), nil
}

func newGateway(settings *domain.AppSettings, dataDir string) (driven.IndexGateway, error) {
	switch settings.Index.Backend {
	case domain.IndexBackendBleve:
		path := settings.Index.Path
		if path == "" {
			path = filepath.Join(dataDir, settings.Index.Name+".bleve")
		}
		return bleveindex.New(path), nil
	case domain.IndexBackendElasticsearch:
		return elastic.New(
			settings.Elasticsearch.URL,
			settings.Index.Name,
			elastic.WithTimeout(settings.Elasticsearch.Timeout),
			elastic.WithRequestsPerSecond(settings.Elasticsearch.RequestsPerSecond),
		), nil
	default:
		return nil, fmt.Errorf("%w: index backend %q", domain.ErrUnsupportedType, settings.Index.Backend)
	}
}
