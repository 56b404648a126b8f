package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raveheart1/newsgen/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRegistry serves 200 for listed name/version pairs and 404 otherwise.
func fakeRegistry(t *testing.T, published map[string]bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if published[strings.TrimPrefix(r.URL.Path, "/")] {
			fmt.Fprint(w, "{}")
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPublished(t *testing.T) {
	srv := fakeRegistry(t, map[string]bool{"lib-core/1.0.0": true})
	c := &Client{BaseURL: srv.URL}

	published, err := c.Published(context.Background(), "lib-core", "1.0.0")
	require.NoError(t, err)
	assert.True(t, published)

	published, err = c.Published(context.Background(), "lib-core", "1.1.0")
	require.NoError(t, err)
	assert.False(t, published)
}

func TestPublished_UnreachableRegistry(t *testing.T) {
	c := &Client{BaseURL: "http://127.0.0.1:1/nope"}
	_, err := c.Published(context.Background(), "lib-core", "1.0.0")
	require.Error(t, err)
}

func TestPublishAll_SkipsPublishedVersions(t *testing.T) {
	srv := fakeRegistry(t, map[string]bool{"lib-core/1.0.0": true})
	c := &Client{
		BaseURL:        srv.URL,
		PublishCommand: []string{"true"},
	}

	comps := []workspace.Component{
		{Name: "lib-core", Version: "1.0.0"},
		{Name: "lib-utils", Version: "2.0.0"},
	}

	var notices strings.Builder
	require.NoError(t, c.PublishAll(context.Background(), comps, &notices))

	assert.Contains(t, notices.String(), "lib-core 1.0.0 already published, skipping")
	assert.Contains(t, notices.String(), "publishing lib-utils 2.0.0")
}

func TestPublishAll_DryRun(t *testing.T) {
	srv := fakeRegistry(t, nil)
	c := &Client{
		BaseURL:        srv.URL,
		PublishCommand: []string{"false"}, // must never run
		DryRun:         true,
	}

	var notices strings.Builder
	err := c.PublishAll(context.Background(), []workspace.Component{{Name: "lib-core", Version: "1.0.0"}}, &notices)
	require.NoError(t, err)
	assert.Contains(t, notices.String(), "would publish lib-core 1.0.0")
}

func TestPublishAll_FailingPublishAborts(t *testing.T) {
	srv := fakeRegistry(t, nil)
	c := &Client{
		BaseURL:        srv.URL,
		PublishCommand: []string{"false"},
	}

	var notices strings.Builder
	err := c.PublishAll(context.Background(), []workspace.Component{{Name: "lib-core", Version: "1.0.0"}}, &notices)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publishing lib-core")
}

func TestPublish_MissingCommand(t *testing.T) {
	c := &Client{}
	require.Error(t, c.Publish(context.Background(), "lib-core"))
}
