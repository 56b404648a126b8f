package config

// GetDefaults returns the default configuration values.
// The metadata and publish commands default to the cargo workspace
// tooling; both are overridable for other build systems.
func GetDefaults() map[string]any {
	return map[string]any{
		"base_dir":         "news.d",
		"out_file":         "NEWS",
		"heading":          "",
		"ignored_packages": []string{"tests"},
		"metadata_cmd":     []string{"cargo", "metadata", "--format-version=1", "--no-deps"},
		"publish_cmd":      []string{"cargo", "publish", "-p"},
		"registry_url":     "https://crates.io/api/v1/crates",
	}
}
