package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/raveheart1/newsgen/internal/components"
	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/raveheart1/newsgen/internal/workspace"
	"github.com/spf13/cobra"
)

var componentsDiffFlag bool

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List the workspace's shippable components",
	Long: `List the workspace's shippable components and their versions.

With --diff, each component is additionally marked changed or unchanged
against the snapshot persisted for the second-newest release, without
writing anything (the same diff 'generate' would persist).`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runComponents,
}

func init() {
	componentsCmd.GroupID = GroupInternal
	rootCmd.AddCommand(componentsCmd)

	componentsCmd.Flags().BoolVar(&componentsDiffFlag, "diff", false, "Mark components changed/unchanged against the previous release")
}

func runComponents(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration")
	}

	provider := workspace.NewExecProvider(cfg.MetadataCmd, cfg.IgnoredPackages)
	live, err := provider.Components(cmd.Context())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "querying workspace metadata")
	}

	if !componentsDiffFlag {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, c := range live {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Version, c.ManifestPath)
		}
		return w.Flush()
	}

	log, baseDir, err := loadChangelog(cfg, cmd.ErrOrStderr())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "loading news directory")
	}
	if log.Len() < 2 {
		return apperrors.NewPrerequisiteError(
			fmt.Sprintf("found %d release(s) in %s, need at least two to diff", log.Len(), baseDir),
			"Create a news.d/<version> directory for the release being cut",
		)
	}

	rels := log.Releases()
	previous := rels[len(rels)-2]
	prev, err := components.LoadPrevious(filepath.Join(baseDir, previous.Name))
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime,
			fmt.Sprintf("loading snapshot of release %s", previous.Name))
	}

	snap := components.Diff(live, prev)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, c := range snap.Components() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Version, c.State)
	}
	return w.Flush()
}
