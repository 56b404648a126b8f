package cli

import (
	"time"

	"github.com/briandowns/spinner"
	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/raveheart1/newsgen/internal/registry"
	"github.com/raveheart1/newsgen/internal/workspace"
	"github.com/spf13/cobra"
)

var publishDryRunFlag bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish workspace components not yet present in the registry",
	Long: `Publish workspace components to the package registry.

For each shippable component the registry is checked for the component's
current version; versions already present are skipped with a notice,
missing ones are published with the configured publish command. The
first failing publish aborts the run.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runPublish,
}

func init() {
	publishCmd.GroupID = GroupRelease
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().BoolVar(&publishDryRunFlag, "dry-run", false, "Report what would be published without publishing")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration")
	}

	provider := workspace.NewExecProvider(cfg.MetadataCmd, cfg.IgnoredPackages)
	live, err := provider.Components(cmd.Context())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "querying workspace metadata")
	}

	client := &registry.Client{
		BaseURL:        cfg.RegistryURL,
		PublishCommand: cfg.PublishCmd,
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
		DryRun:         publishDryRunFlag,
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Publishing components..."
	s.Writer = cmd.ErrOrStderr()
	if !publishDryRunFlag {
		s.Start()
		defer s.Stop()
	}

	if err := client.PublishAll(cmd.Context(), live, cmd.OutOrStdout()); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "publishing components")
	}
	return nil
}
