package cli

import (
	"github.com/raveheart1/newsgen/internal/changelog"
	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/spf13/cobra"
)

var (
	previewPlainFlag bool
	previewWidthFlag int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the release notes to the terminal without writing files",
	Long: `Render the release notes to the terminal.

Unlike generate, preview never touches components.json or the output
file: it shows exactly what would be rendered for the fragments on disk,
with colored headings when the terminal supports them.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPreview,
}

func init() {
	previewCmd.GroupID = GroupRelease
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	previewCmd.Flags().IntVar(&previewWidthFlag, "width", 0, "Wrap width (0 = auto-detect)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration")
	}

	log, _, err := loadChangelog(cfg, cmd.ErrOrStderr())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "loading news directory")
	}

	opts := changelog.PreviewOptions{
		Plain:    previewPlainFlag,
		MaxWidth: previewWidthFlag,
	}
	return changelog.Preview(log, cmd.OutOrStdout(), opts)
}
