package config

import (
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
)

// ProjectConfigPath returns the project config path relative to the
// invocation directory.
func ProjectConfigPath() string {
	return ".newsgen.yml"
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return ".newsgen.json"
}

// WorkspaceRoot returns the root directory of the enclosing git
// repository, so newsgen resolves news.d and the output file
// consistently no matter which subdirectory it runs from. Outside a
// repository the current directory is the root.
func WorkspaceRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(cwd, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		// Not inside a repository; run where invoked.
		return cwd, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}
