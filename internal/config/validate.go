package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidateYAMLSyntax parses the file with yaml.v3 before handing it to
// koanf, so syntax errors surface with line information instead of a
// flattened-key failure.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}

// ValidateConfigValues checks that a loaded configuration is usable.
func ValidateConfigValues(cfg *Configuration) error {
	if cfg.BaseDir == "" {
		return fmt.Errorf("base_dir must not be empty")
	}
	if cfg.OutFile == "" {
		return fmt.Errorf("out_file must not be empty")
	}
	if len(cfg.MetadataCmd) == 0 {
		return fmt.Errorf("metadata_cmd must not be empty")
	}
	if len(cfg.PublishCmd) == 0 {
		return fmt.Errorf("publish_cmd must not be empty")
	}
	return nil
}
