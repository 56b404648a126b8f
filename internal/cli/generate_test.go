package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/raveheart1/newsgen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig writes a project config pointing all paths into the
// test's temp directory so the command runs fully isolated.
func writeTestConfig(t *testing.T, dir, baseDir, outFile, metadataJSON string) string {
	t.Helper()

	metadataPath := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(metadataPath, []byte(metadataJSON), 0o644))

	cfgPath := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf(`
base_dir: %s
out_file: %s
metadata_cmd: ["cat", %q]
`, baseDir, outFile, metadataPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath
}

func writeRelease(t *testing.T, baseDir, release string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(baseDir, release)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGenerate_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	baseDir := filepath.Join(dir, "news.d")
	outFile := filepath.Join(dir, "NEWS")

	writeRelease(t, baseDir, "1.0.0", map[string]string{
		"added-x":         "x",
		"components.json": `{"lib-core": {"version": "1.0.0", "state": "changed"}}`,
	})
	writeRelease(t, baseDir, "1.1.0", map[string]string{
		"added-z": "z",
	})

	metadata := `{
		"packages": [
			{"name": "lib-utils", "version": "0.5.0", "manifest_path": "b/lib-utils/Cargo.toml"},
			{"name": "lib-core", "version": "1.0.0", "manifest_path": "a/lib-core/Cargo.toml"}
		]
	}`
	cfgPath := writeTestConfig(t, dir, baseDir, outFile, metadata)

	stdout, _, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+outFile)

	news, err := os.ReadFile(outFile)
	require.NoError(t, err)

	expected := "## 1.1.0 (Unreleased)\n" +
		"\nThis release contains the following new component versions:\n\n" +
		"- lib-utils 0.5.0\n" +
		"\n### Added\n\n- z\n" +
		"\n## 1.0.0 (Unreleased)\n" +
		"\nThis release contains the following new component versions:\n\n" +
		"- lib-core 1.0.0\n" +
		"\n### Added\n\n- x\n"
	assert.Equal(t, expected, string(news))

	// The snapshot persists in manifest-path order with lib-core
	// unchanged (same version as the previous release's snapshot).
	snapshot, err := os.ReadFile(filepath.Join(baseDir, "1.1.0", "components.json"))
	require.NoError(t, err)
	expectedSnapshot := `{
    "lib-core": {
        "version": "1.0.0",
        "state": "unchanged"
    },
    "lib-utils": {
        "version": "0.5.0",
        "state": "changed"
    }
}`
	assert.Equal(t, expectedSnapshot, string(snapshot))
}

func TestGenerate_NoPreviousSnapshotMarksAllChanged(t *testing.T) {
	dir := t.TempDir()
	baseDir := filepath.Join(dir, "news.d")
	outFile := filepath.Join(dir, "NEWS")

	writeRelease(t, baseDir, "1.0.0", map[string]string{"added-x": "x"})
	writeRelease(t, baseDir, "1.1.0", map[string]string{"added-z": "z"})

	metadata := `{"packages": [{"name": "lib-core", "version": "1.0.0", "manifest_path": "a/Cargo.toml"}]}`
	cfgPath := writeTestConfig(t, dir, baseDir, outFile, metadata)

	_, _, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)

	news, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(news), "- lib-core 1.0.0\n")
}

func TestGenerate_FewerThanTwoReleasesFails(t *testing.T) {
	dir := t.TempDir()
	baseDir := filepath.Join(dir, "news.d")
	outFile := filepath.Join(dir, "NEWS")

	writeRelease(t, baseDir, "1.0.0", map[string]string{"added-x": "x"})

	metadata := `{"packages": []}`
	cfgPath := writeTestConfig(t, dir, baseDir, outFile, metadata)

	_, _, err := execute(t, "generate", "--config", cfgPath)
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Prerequisite, cliErr.Category)
	assert.NoFileExists(t, outFile)
}

func TestGenerate_UnknownFragmentWarnsButSucceeds(t *testing.T) {
	dir := t.TempDir()
	baseDir := filepath.Join(dir, "news.d")
	outFile := filepath.Join(dir, "NEWS")

	writeRelease(t, baseDir, "1.0.0", map[string]string{"added-x": "x"})
	writeRelease(t, baseDir, "1.1.0", map[string]string{
		"added-z":        "z",
		"improved-thing": "dropped",
	})

	metadata := `{"packages": []}`
	cfgPath := writeTestConfig(t, dir, baseDir, outFile, metadata)

	_, stderr, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, `unknown entry type "improved"`)

	news, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.NotContains(t, string(news), "dropped")
}

func TestGenerate_FailingMetadataCommandIsFatal(t *testing.T) {
	dir := t.TempDir()
	baseDir := filepath.Join(dir, "news.d")
	outFile := filepath.Join(dir, "NEWS")

	writeRelease(t, baseDir, "1.0.0", map[string]string{"added-x": "x"})
	writeRelease(t, baseDir, "1.1.0", map[string]string{"added-z": "z"})

	cfgPath := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf("base_dir: %s\nout_file: %s\nmetadata_cmd: [\"false\"]\n", baseDir, outFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	_, _, err := execute(t, "generate", "--config", cfgPath)
	require.Error(t, err)
	assert.NoFileExists(t, outFile)
}
