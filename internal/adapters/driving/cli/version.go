package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphscope/internal/core/domain"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("graphscope version %s (Graph API %s)\n", version, domain.DefaultGraphVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
