// Package workspace queries the build workspace for its component
// packages. The metadata command is an external collaborator (cargo
// metadata by default) modeled as an injectable Provider so the
// aggregation and diffing logic can be tested without spawning real
// subprocesses.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
)

// Component is one independently versioned package in the workspace.
type Component struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	ManifestPath string `json:"manifest_path"`
}

// Provider lists the shippable components of the current workspace.
type Provider interface {
	Components(ctx context.Context) ([]Component, error)
}

// ExecProvider shells out to a metadata command and parses its JSON
// output. The command must print an object with a "packages" array of
// {name, version, manifest_path} entries (the cargo metadata shape).
type ExecProvider struct {
	// Command is the metadata command and its arguments.
	Command []string
	// Ignored lists non-shippable package names to exclude (tests,
	// dev tooling).
	Ignored []string
	// Dir is the working directory for the command. Empty means the
	// current directory.
	Dir string
}

// NewExecProvider creates a provider running the given command with the
// given exclusion list.
func NewExecProvider(command, ignored []string) *ExecProvider {
	return &ExecProvider{Command: command, Ignored: ignored}
}

// metadataOutput mirrors the relevant part of the metadata command's JSON.
type metadataOutput struct {
	Packages []Component `json:"packages"`
}

// Components runs the metadata command and returns the workspace's
// shippable components sorted by manifest path. The sort gives the
// snapshot a deterministic insertion order, which later governs the
// render order of component bullets. A non-zero exit is fatal.
func (p *ExecProvider) Components(ctx context.Context) ([]Component, error) {
	if len(p.Command) == 0 {
		return nil, errors.New("metadata command is not configured")
	}

	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Dir = p.Dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("metadata command failed: %w: %s", err, exitErr.Stderr)
		}
		return nil, fmt.Errorf("running metadata command: %w", err)
	}

	var meta metadataOutput
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata output: %w", err)
	}

	ignored := make(map[string]bool, len(p.Ignored))
	for _, name := range p.Ignored {
		ignored[name] = true
	}

	components := make([]Component, 0, len(meta.Packages))
	for _, pkg := range meta.Packages {
		if ignored[pkg.Name] {
			continue
		}
		components = append(components, pkg)
	}

	sort.Slice(components, func(i, j int) bool {
		return components[i].ManifestPath < components[j].ManifestPath
	})

	return components, nil
}
