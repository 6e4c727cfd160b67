package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/tui"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal client.

Controls:
  Enter       - Fetch
  Tab         - Switch between token and fields
  Ctrl+L      - Log in through the browser
  Ctrl+O      - Log out (local only)
  Ctrl+T      - Show/hide the token
  Ctrl+P      - Cycle the picture size
  Ctrl+Y      - Copy the raw JSON
  Ctrl+R      - Clear
  PgUp/PgDn   - Scroll the raw JSON
  F1          - Toggle help
  Esc         - Quit`,
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

	// Log lines would tear the alternate screen.
	logger.SetVerbose(false)

	presenter := tui.NewPresenter()
	services, err := buildServices(Options{Presenter: presenter, Out: presenter})
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		OAuth:     services.OAuth,
		Fetch:     services.Fetch,
		Login:     services.Login,
		Config:    services.Config,
		Presenter: presenter,
	}

	if services.WatchConfig != nil {
		updates, err := services.WatchConfig(cmd.Context())
		if err != nil {
			logger.Warn("Config reload disabled: %v", err)
		} else {
			ports.ConfigUpdates = updates
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
