package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/raveheart1/newsgen/internal/changelog"
	"github.com/raveheart1/newsgen/internal/config"
	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces bursts of filesystem events (editors often
// write, chmod, and rename in quick succession) into one re-render.
const watchDebounce = 200 * time.Millisecond

var watchPlainFlag bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render the preview whenever news fragments change",
	Long: `Watch the news directory and re-render the preview on change.

Useful while drafting fragments for a release: the preview refreshes as
files are added, edited, or removed. Press Ctrl+C to stop.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	watchCmd.GroupID = GroupRelease
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Configuration, "loading configuration")
	}

	root, err := config.WorkspaceRoot()
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "locating workspace root")
	}
	baseDir := resolvePath(root, cfg.BaseDir)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "creating filesystem watcher")
	}
	defer watcher.Close()

	if err := watchTree(watcher, baseDir); err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "watching news directory")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	render := func() {
		if !watchPlainFlag {
			// Clear the screen between renders.
			fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")
		}
		if err := renderPreview(cfg, cmd, watchPlainFlag); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "render failed: %v\n", err)
		}
	}
	render()

	var debounce *time.Timer
	renderCh := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					// New release directory; watch it too.
					_ = watcher.Add(ev.Name)
				}
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case renderCh <- struct{}{}:
				default:
				}
			})
		case <-renderCh:
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		case <-ctx.Done():
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
	}
}

// watchTree adds the base directory and each release subdirectory.
func watchTree(watcher *fsnotify.Watcher, baseDir string) error {
	if err := watcher.Add(baseDir); err != nil {
		return err
	}
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(baseDir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderPreview reloads the changelog from disk and previews it.
func renderPreview(cfg *config.Configuration, cmd *cobra.Command, plain bool) error {
	log, _, err := loadChangelog(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return changelog.Preview(log, cmd.OutOrStdout(), changelog.PreviewOptions{Plain: plain})
}
