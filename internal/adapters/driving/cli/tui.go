package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tunesearch/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Look up tracks and playlists interactively",
	Long: `Launch an interactive terminal lookup over the index.

Controls:
  Enter   - Look up the query
  Tab     - Switch between track and playlist lookups
  Esc     - Clear, or quit when empty
  Ctrl+C  - Quit

Track queries are a Track ID or Field=value, e.g. Artist=Bar.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsIndex},
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	app, err := tui.NewApp(&tui.Ports{Search: searchService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
