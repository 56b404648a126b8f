// Package registry publishes workspace components to the package
// registry, skipping versions that are already present. The publish
// command is an external collaborator invoked as a one-shot blocking
// subprocess; a non-zero exit code is fatal.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"time"

	"github.com/raveheart1/newsgen/internal/workspace"
)

// DefaultCheckTimeout is the default timeout for registry existence checks.
const DefaultCheckTimeout = 5 * time.Second

// Client checks and publishes component versions against a registry.
type Client struct {
	// BaseURL is the registry API prefix; the existence check requests
	// {BaseURL}/{name}/{version}.
	BaseURL string
	// PublishCommand is the publish command; the component name is
	// appended as the final argument.
	PublishCommand []string
	// HTTPClient overrides the HTTP client used for existence checks.
	HTTPClient *http.Client
	// Stdout and Stderr receive the publish subprocess output.
	Stdout io.Writer
	Stderr io.Writer
	// DryRun reports what would be published without running anything.
	DryRun bool
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: DefaultCheckTimeout}
}

// Published reports whether name at version already exists in the
// registry. Only a 404 response means unpublished; any other status is
// treated as already present, matching the conservative behavior of the
// release process (never republish on an ambiguous answer).
func (c *Client) Published(ctx context.Context, name, version string) (bool, error) {
	url := fmt.Sprintf("%s/%s/%s", c.BaseURL, name, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating registry request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false, fmt.Errorf("checking registry for %s %s: %w", name, version, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode != http.StatusNotFound, nil
}

// Publish runs the publish command for one component.
func (c *Client) Publish(ctx context.Context, name string) error {
	if len(c.PublishCommand) == 0 {
		return errors.New("publish command is not configured")
	}

	args := append(append([]string{}, c.PublishCommand[1:]...), name)
	cmd := exec.CommandContext(ctx, c.PublishCommand[0], args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("publishing %s: %w", name, err)
	}
	return nil
}

// PublishAll walks the given components in order, publishing each
// version not yet present in the registry. Notices go to notices; the
// first error aborts the run.
func (c *Client) PublishAll(ctx context.Context, comps []workspace.Component, notices io.Writer) error {
	for _, comp := range comps {
		published, err := c.Published(ctx, comp.Name, comp.Version)
		if err != nil {
			return err
		}
		if published {
			fmt.Fprintf(notices, "%s %s already published, skipping\n", comp.Name, comp.Version)
			continue
		}

		if c.DryRun {
			fmt.Fprintf(notices, "would publish %s %s\n", comp.Name, comp.Version)
			continue
		}

		fmt.Fprintf(notices, "publishing %s %s\n", comp.Name, comp.Version)
		if err := c.Publish(ctx, comp.Name); err != nil {
			return err
		}
	}
	return nil
}
