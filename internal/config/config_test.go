package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, "news.d", cfg.BaseDir)
	assert.Equal(t, "NEWS", cfg.OutFile)
	assert.Empty(t, cfg.Heading)
	assert.Equal(t, []string{"tests"}, cfg.IgnoredPackages)
	assert.Equal(t, []string{"cargo", "metadata", "--format-version=1", "--no-deps"}, cfg.MetadataCmd)
	assert.Equal(t, []string{"cargo", "publish", "-p"}, cfg.PublishCmd)
}

func TestLoad_ProjectConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
base_dir: changes.d
out_file: CHANGELOG
heading: Release Notes
ignored_packages:
  - tests
  - dev-tools
metadata_cmd:
  - my-metadata-tool
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "changes.d", cfg.BaseDir)
	assert.Equal(t, "CHANGELOG", cfg.OutFile)
	assert.Equal(t, "Release Notes", cfg.Heading)
	assert.Equal(t, []string{"tests", "dev-tools"}, cfg.IgnoredPackages)
	assert.Equal(t, []string{"my-metadata-tool"}, cfg.MetadataCmd)
	// Untouched keys keep their defaults.
	assert.Equal(t, []string{"cargo", "publish", "-p"}, cfg.PublishCmd)
}

func TestLoad_EnvironmentOverridesProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("out_file: CHANGELOG\n"), 0o644))

	t.Setenv("NEWSGEN_OUT_FILE", "RELEASES")
	t.Setenv("NEWSGEN_HEADING", "From Env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "RELEASES", cfg.OutFile)
	assert.Equal(t, "From Env", cfg.Heading)
}

func TestLoad_InvalidYAMLSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("base_dir: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating project config syntax")
}

func TestLoad_EmptyBaseDirRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`base_dir: ""`+"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_dir")
}

func TestValidateConfigValues(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Configuration)
		wantErr bool
	}{
		"valid defaults":      {mutate: func(c *Configuration) {}, wantErr: false},
		"missing out_file":    {mutate: func(c *Configuration) { c.OutFile = "" }, wantErr: true},
		"missing metadata":    {mutate: func(c *Configuration) { c.MetadataCmd = nil }, wantErr: true},
		"missing publish cmd": {mutate: func(c *Configuration) { c.PublishCmd = nil }, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := &Configuration{
				BaseDir:     "news.d",
				OutFile:     "NEWS",
				MetadataCmd: []string{"cargo", "metadata"},
				PublishCmd:  []string{"cargo", "publish", "-p"},
			}
			tc.mutate(cfg)
			err := ValidateConfigValues(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
