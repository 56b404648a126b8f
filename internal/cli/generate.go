package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/raveheart1/newsgen/internal/changelog"
	"github.com/raveheart1/newsgen/internal/components"
	"github.com/raveheart1/newsgen/internal/config"
	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/raveheart1/newsgen/internal/workspace"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the release notes file and component snapshot",
	Long: `Generate the release notes file from the news directory.

Loads every release under the news directory, diffs the live workspace
component versions against the snapshot persisted for the second-newest
release, writes the resulting snapshot as components.json under the
newest release, and renders all releases newest-first into the output
file (overwriting it in full).

The run is fatal on any error other than an unknown fragment category
(warned and dropped) or a missing previous snapshot (every component is
treated as changed). Rerunning after a fix is always safe.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGenerate,
}

func init() {
	generateCmd.GroupID = GroupRelease
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration")
	}

	log, baseDir, err := loadChangelog(cfg, cmd.ErrOrStderr())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "loading news directory")
	}

	if log.Len() < 2 {
		return apperrors.NewPrerequisiteError(
			fmt.Sprintf("found %d release(s) in %s, need at least two", log.Len(), baseDir),
			"Create a news.d/<version> directory for the release being cut",
			"Keep the previous release's directory so component changes can be diffed",
		)
	}

	rels := log.Releases()
	newest := rels[len(rels)-1]
	previous := rels[len(rels)-2]

	snap, err := diffComponents(cmd, cfg, baseDir, previous.Name)
	if err != nil {
		return err
	}

	if err := snap.Write(filepath.Join(baseDir, newest.Name)); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "persisting component snapshot")
	}
	newest.Components = snap

	root, err := config.WorkspaceRoot()
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "locating workspace root")
	}
	outPath := resolvePath(root, cfg.OutFile)

	rendered, err := changelog.RenderString(log)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "rendering release notes")
	}
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "writing release notes")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d releases, %d components tracked)\n",
		outPath, log.Len(), snap.Len())
	return nil
}

// diffComponents queries live workspace metadata and diffs it against
// the previous release's persisted snapshot. A missing previous
// snapshot means the first tracked release: everything is changed.
func diffComponents(cmd *cobra.Command, cfg *config.Configuration, baseDir, previousName string) (*components.Snapshot, error) {
	provider := workspace.NewExecProvider(cfg.MetadataCmd, cfg.IgnoredPackages)
	live, err := provider.Components(cmd.Context())
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Runtime, "querying workspace metadata")
	}

	prev, err := components.LoadPrevious(filepath.Join(baseDir, previousName))
	if err != nil {
		return nil, apperrors.WrapWithMessage(err, apperrors.Runtime,
			fmt.Sprintf("loading snapshot of release %s", previousName))
	}

	return components.Diff(live, prev), nil
}
