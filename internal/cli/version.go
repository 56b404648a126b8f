package cli

import (
	"fmt"

	"github.com/raveheart1/newsgen/internal/build"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "newsgen %s (commit %s, built %s)\n",
			build.Version, build.Commit, build.BuildDate)
		return nil
	},
}

func init() {
	versionCmd.GroupID = GroupInternal
	rootCmd.AddCommand(versionCmd)
}
