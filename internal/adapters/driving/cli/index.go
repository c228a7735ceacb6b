package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

var deleteIndexCmd = &cobra.Command{
	Use:         "delete-index",
	Short:       "Delete the search index",
	Long:        `Deletes the configured index. Deleting an index that does not exist succeeds.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsExport},
	RunE:        runDeleteIndex,
}

var createMappingCmd = &cobra.Command{
	Use:   "create-mapping",
	Short: "Create the search index with the library schema",
	Long: `Creates the configured index with field mappings for tracks and playlists.
Fails if the index already exists; run delete-index first to rebuild.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsExport},
	RunE:        runCreateMapping,
}

var indexTracksCmd = &cobra.Command{
	Use:         "index-tracks",
	Short:       "Index every track in the library export",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsExport},
	RunE:        runIndexTracks,
}

var indexPlaylistsCmd = &cobra.Command{
	Use:   "index-playlists",
	Short: "Index every playlist in the library export",
	Long: `Indexes playlists with their member tracks embedded.
Tracks are looked up in the index, so run index-tracks first.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsExport},
	RunE:        runIndexPlaylists,
}

var indexCmd = &cobra.Command{
	Use:         "index",
	Short:       "Index tracks, then playlists",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsExport},
	RunE:        runIndexAll,
}

func init() {
	rootCmd.AddCommand(deleteIndexCmd)
	rootCmd.AddCommand(createMappingCmd)
	rootCmd.AddCommand(indexTracksCmd)
	rootCmd.AddCommand(indexPlaylistsCmd)
	rootCmd.AddCommand(indexCmd)
}

func requireIndexer() error {
	if indexerService == nil {
		return errors.New("indexer not configured")
	}
	return nil
}

func runDeleteIndex(cmd *cobra.Command, _ []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}
	if err := indexerService.DeleteIndex(cmd.Context()); err != nil {
		return fmt.Errorf("delete-index failed: %w", err)
	}
	printDone(cmd)
	return nil
}

func runCreateMapping(cmd *cobra.Command, _ []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}
	if err := indexerService.CreateMapping(cmd.Context()); err != nil {
		return fmt.Errorf("create-mapping failed: %w", err)
	}
	printDone(cmd)
	return nil
}

func runIndexTracks(cmd *cobra.Command, _ []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}
	run, err := indexerService.IndexTracks(cmd.Context())
	if err != nil {
		return fmt.Errorf("index-tracks failed: %w", err)
	}
	printRun(cmd, run)
	printDone(cmd)
	return nil
}

func runIndexPlaylists(cmd *cobra.Command, _ []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}
	run, err := indexerService.IndexPlaylists(cmd.Context())
	if err != nil {
		return fmt.Errorf("index-playlists failed: %w", err)
	}
	printRun(cmd, run)
	printDone(cmd)
	return nil
}

func runIndexAll(cmd *cobra.Command, _ []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}
	runs, err := indexerService.IndexAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}
	for i := range runs {
		printRun(cmd, &runs[i])
	}
	printDone(cmd)
	return nil
}

func printRun(cmd *cobra.Command, run *domain.Run) {
	if run == nil {
		return
	}
	cmd.Printf("%s: %d indexed, %d skipped %s\n",
		run.Operation, run.Indexed, run.Skipped,
		mutedStyle.Render(fmt.Sprintf("(%s)", run.Duration().Round(time.Millisecond))))
}

func printDone(cmd *cobra.Command) {
	cmd.Println(successStyle.Render(doneMarker))
}
