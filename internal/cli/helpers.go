package cli

import (
	"io"
	"path/filepath"

	"github.com/raveheart1/newsgen/internal/changelog"
	"github.com/raveheart1/newsgen/internal/config"
	"github.com/spf13/cobra"
)

// loadConfig loads the configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	return config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
}

// resolvePath resolves a configured path against the workspace root.
// Absolute paths are used as-is.
func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// loadChangelog loads the news tree for the given configuration and
// applies the configured heading. Warnings for unknown fragment
// categories go to warn.
func loadChangelog(cfg *config.Configuration, warn io.Writer) (*changelog.Changelog, string, error) {
	root, err := config.WorkspaceRoot()
	if err != nil {
		return nil, "", err
	}

	baseDir := resolvePath(root, cfg.BaseDir)
	log, err := changelog.Load(baseDir, warn)
	if err != nil {
		return nil, "", err
	}
	log.Heading = cfg.Heading

	return log, baseDir, nil
}
