package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the library, index and Elasticsearch settings stored in
~/.tunesearch/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a single setting",
	Long: `Change a single setting and save it.

Keys:
  library.path                       path to the library export
  index.backend                      bleve or elasticsearch
  index.name                         index name
  index.path                         bleve index directory
  elasticsearch.url                  cluster base URL
  elasticsearch.timeout_seconds      per-request timeout
  elasticsearch.requests_per_second  request throttle, 0 disables
  indexing.workers                   concurrent upserts`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Println()

	cmd.Println("[Library]")
	cmd.Printf("  Path: %s\n", settings.Library.Path)
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Backend: %s\n", settings.Index.Backend.Description())
	cmd.Printf("  Name: %s\n", settings.Index.Name)
	if !settings.Index.Backend.IsRemote() {
		path := settings.Index.Path
		if path == "" {
			path = "(default)"
		}
		cmd.Printf("  Path: %s\n", path)
	}
	cmd.Println()

	if settings.Index.Backend.IsRemote() {
		cmd.Println("[Elasticsearch]")
		cmd.Printf("  URL: %s\n", settings.Elasticsearch.URL)
		cmd.Printf("  Timeout: %s\n", settings.Elasticsearch.Timeout)
		if settings.Elasticsearch.RequestsPerSecond > 0 {
			cmd.Printf("  Requests/sec: %g\n", settings.Elasticsearch.RequestsPerSecond)
		} else {
			cmd.Printf("  Requests/sec: unlimited\n")
		}
		cmd.Println()
	}

	cmd.Println("[Indexing]")
	cmd.Printf("  Workers: %d\n", settings.Indexing.Workers)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Println(warningStyle.Render(fmt.Sprintf("Warning: %v", err)))
		cmd.Println("Run 'tunesearch settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
