package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/compass/internal/adapters/driving/tui"
	"github.com/custodia-labs/compass/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Compass.

The TUI shows matched resources as a carousel grouped by theme, with the
action plan underneath. Citations in the plan jump to their card.

Controls:
  Enter      - Ask / Select
  ←/h, →/l   - Previous / next card
  1-9        - Jump to theme
  Tab        - Cycle citations in the action plan
  Space      - Show the selected citation
  Esc        - Back / Cancel
  ?          - Toggle help
  q          - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	watchConfig(ctx)

	// Log lines would corrupt the alternate screen.
	prev := logger.Output()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(prev)

	app, err := tui.NewApp(&tui.Ports{
		Ask:       askService,
		Admin:     adminService,
		History:   historyService,
		Settings:  settingsService,
		Sanitizer: markupSanitizer,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
