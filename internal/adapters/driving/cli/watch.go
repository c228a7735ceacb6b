package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tunesearch/internal/adapters/driving/watch"
	"github.com/custodia-labs/tunesearch/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-index whenever the library export changes",
	Long: `Watches the library export and runs a full index (tracks, then playlists)
each time it is rewritten. The index must already exist.

Press Ctrl+C to stop.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsExport},
	RunE:        runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period before re-indexing")
	watchCmd.Flags().Bool("initial", false, "index once before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := requireIndexer(); err != nil {
		return err
	}
	if libraryPath == "" {
		return errors.New("library path not configured")
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")
	initial, _ := cmd.Flags().GetBool("initial")

	reindex := func(ctx context.Context) error {
		logger.Section("Re-indexing")
		runs, err := indexerService.IndexAll(ctx)
		if err != nil {
			cmd.PrintErrln(errorStyle.Render("index failed: " + err.Error()))
			return err
		}
		for i := range runs {
			printRun(cmd, &runs[i])
		}
		printDone(cmd)
		return nil
	}

	if initial {
		if err := reindex(cmd.Context()); err != nil {
			return err
		}
	}

	cmd.Println(mutedStyle.Render("Watching " + libraryPath + " (Ctrl+C to stop)"))
	return watch.New(libraryPath, watch.WithDebounce(debounce)).Run(cmd.Context(), reindex)
}
