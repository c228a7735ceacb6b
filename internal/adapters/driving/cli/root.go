// Package cli provides the tunesearch command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tunesearch/internal/core/ports/driving"
	"github.com/custodia-labs/tunesearch/internal/logger"
)

// version is set at build time by SetVersion.
var version = "dev"

// Services populated before a command runs.
var (
	settingsService driving.SettingsService
	indexerService  driving.LibraryIndexer
	searchService   driving.LibrarySearch
	runService      driving.RunHistory
	libraryPath     string
)

// Persistent flag values.
var (
	flagConfigDir string
	flagLibrary   string
	flagBackend   string
	flagVerbose   bool
)

// Command annotations naming what a command needs wired before it runs.
const (
	annotationNeeds = "needs"
	needsExport     = "export"
	needsIndex      = "index"
)

var errNoCommand = errors.New("no command given")

// Overrides carries persistent flag values into service construction.
// Empty fields leave the configured value in place.
type Overrides struct {
	ConfigDir   string
	LibraryPath string
	Backend     string
}

// Services bundles the driving ports behind the library commands.
type Services struct {
	// Indexer is nil unless the export was opened.
	Indexer driving.LibraryIndexer
	Search  driving.LibrarySearch
	Runs    driving.RunHistory

	// LibraryPath is the resolved export location.
	LibraryPath string

	// Close releases the index and run store.
	Close func() error
}

// Wiring builds services once flags are parsed.
type Wiring interface {
	// Settings opens the settings service.
	Settings(o Overrides) (driving.SettingsService, error)

	// Open opens the index and run store, and the export when withExport is set.
	// A missing export is domain.ErrSourceNotFound.
	Open(ctx context.Context, o Overrides, withExport bool) (*Services, error)
}

var (
	wiring Wiring
	opened *Services
)

var rootCmd = &cobra.Command{
	Use:   "tunesearch",
	Short: "Index an iTunes library export for search",
	Long: `tunesearch reads the "iTunes Music Library.xml" export, normalises its
tracks and playlists, and publishes them to a search index.

Typical first run:
  tunesearch create-mapping
  tunesearch index`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_ = cmd.Usage()
		return errNoCommand
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.tunesearch)")
	flags.StringVar(&flagLibrary, "library", "", "path to the library export")
	flags.StringVar(&flagBackend, "backend", "", "index backend: bleve or elasticsearch")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "print debug and progress logs")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetWiring installs the service factory used by commands.
func SetWiring(w Wiring) {
	wiring = w
}

// Execute runs the root command and releases any opened services.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func prepare(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if wiring == nil {
		return nil
	}

	o := Overrides{
		ConfigDir:   flagConfigDir,
		LibraryPath: flagLibrary,
		Backend:     flagBackend,
	}

	settings, err := wiring.Settings(o)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	settingsService = settings

	needs := cmd.Annotations[annotationNeeds]
	if needs == "" || opened != nil {
		return nil
	}

	services, err := wiring.Open(cmd.Context(), o, needs == needsExport)
	if err != nil {
		return err
	}
	opened = services
	indexerService = services.Indexer
	searchService = services.Search
	runService = services.Runs
	libraryPath = services.LibraryPath
	return nil
}

func closeServices() {
	if opened == nil || opened.Close == nil {
		return
	}
	if err := opened.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	opened = nil
}
