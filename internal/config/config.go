// Package config provides hierarchical configuration management for
// newsgen using koanf. Configuration is loaded with priority:
// environment variables > project config (.newsgen.yml) > defaults.
// A legacy JSON project config (.newsgen.json) is still read when no
// YAML config exists.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the newsgen CLI tool configuration.
type Configuration struct {
	// BaseDir is the news directory holding one subdirectory per release.
	// Relative paths resolve against the workspace root.
	BaseDir string `koanf:"base_dir"`

	// OutFile is the rendered release notes artifact, overwritten in
	// full on every successful run.
	OutFile string `koanf:"out_file"`

	// Heading is an optional top-level title for the output. Empty
	// means no heading line.
	Heading string `koanf:"heading"`

	// IgnoredPackages lists workspace packages excluded from component
	// tracking (tests, dev tooling).
	IgnoredPackages []string `koanf:"ignored_packages"`

	// MetadataCmd is the workspace metadata command. It must print
	// cargo-metadata-shaped JSON on stdout.
	MetadataCmd []string `koanf:"metadata_cmd"`

	// PublishCmd is the registry publish command; the component name is
	// appended as the final argument.
	PublishCmd []string `koanf:"publish_cmd"`

	// RegistryURL is the registry API prefix for existence checks.
	RegistryURL string `koanf:"registry_url"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .newsgen.yml)
	ProjectConfigPath string
	// WarningWriter receives legacy-format warnings (default: os.Stderr)
	WarningWriter io.Writer
}

// Load loads configuration from project and environment sources.
// Priority: Environment variables > Project config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config (YAML preferred, legacy
// JSON supported). A custom path override is used as-is.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	switch {
	case fileExists(yamlPath):
		if err := ValidateYAMLSyntax(yamlPath); err != nil {
			return fmt.Errorf("validating project config syntax: %w", err)
		}
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
	case customPath == "" && fileExists(legacyPath):
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
		fmt.Fprintf(warningWriter, "  Rename it to %s in YAML format.\n\n", ProjectConfigPath())
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("NEWSGEN_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := ValidateConfigValues(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.BaseDir = expandHomePath(cfg.BaseDir)
	cfg.OutFile = expandHomePath(cfg.OutFile)

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// Example: NEWSGEN_BASE_DIR -> base_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "NEWSGEN_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
