// Package cli provides the command-line interface.
// It is a driving adapter: commands build the core services through the
// wiring installed by main and drive them.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphscope/internal/logger"
)

// version is set via SetVersion from build flags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "graphscope",
	Short: "Inspect the profile behind a Graph API access token",
	Long: `GraphScope logs in with the browser-redirect implicit grant and fetches
the user's profile, profile picture and granted permissions.

Configuration is read from ~/.graphscope/config.toml, then .env, then
GRAPHSCOPE_* environment variables.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.graphscope)")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and returns the process exit code.
// Errors already shown to the user are not printed again.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !isReported(err) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return 1
}

// reportedError marks an error whose message the presenter already showed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
