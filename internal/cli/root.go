// Package cli implements the newsgen command-line interface.
package cli

import (
	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/spf13/cobra"
)

// Command group identifiers for help output.
const (
	GroupRelease  = "release"
	GroupInternal = "internal"
)

var rootCmd = &cobra.Command{
	Use:   "newsgen",
	Short: "Aggregate news fragments into versioned release notes",
	Long: `newsgen merges per-change news fragment files into a single
chronological release notes file and tracks which workspace components
changed between consecutive releases.

Fragments live under news.d/<version>/ and are named {category}-{slug},
where category is one of security, added, fixed, changed, removed, or
deprecated. At release time 'newsgen generate' merges them newest-first
into the output file and records a component version snapshot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Internal Commands:"},
	)
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default .newsgen.yml)")
}

// Execute runs the root command and returns the process exit code.
// Structured errors are formatted for the terminal before returning;
// their category determines the code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		apperrors.PrintError(cliErr)
		return exitCodeFor(cliErr.Category)
	}

	// Plain errors at this level come from cobra itself: unknown
	// commands, unknown flags, bad argument counts.
	apperrors.PrintError(apperrors.NewArgumentErrorWithUsage(err.Error(), "newsgen [command] --help"))
	return ExitInvalidArguments
}

// exitCodeFor maps an error category to the process exit code.
func exitCodeFor(category apperrors.ErrorCategory) int {
	switch category {
	case apperrors.Argument:
		return ExitInvalidArguments
	case apperrors.Prerequisite:
		return ExitPreconditionFailed
	default:
		return ExitFailure
	}
}
