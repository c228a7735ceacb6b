package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/tunesearch/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show recent indexing runs",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNeeds: needsIndex},
	RunE:        runStatus,
}

func init() {
	statusCmd.Flags().IntP("limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run history not configured")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}

	runs, err := runService.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println(mutedStyle.Render("No runs recorded yet."))
		return nil
	}

	cmd.Println(titleStyle.Render("Recent runs"))
	cmd.Println(runTable(runs))
	return nil
}

func runTable(runs []domain.Run) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("STARTED", "OPERATION", "STATUS", "INDEXED", "SKIPPED", "DURATION", "ERROR").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range runs {
		run := runs[i]
		t.Row(
			run.StartedAt.Local().Format(time.DateTime),
			string(run.Operation),
			renderStatus(run.Status),
			strconv.Itoa(run.Indexed),
			strconv.Itoa(run.Skipped),
			run.Duration().Round(time.Millisecond).String(),
			run.Error,
		)
	}
	return t.Render()
}

func renderStatus(status domain.RunStatus) string {
	if status == domain.RunFailed {
		return errorStyle.Render(string(status))
	}
	return string(status)
}
