package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quillmd/quill/internal/constants"
)

// SearchConfig holds the user-tunable search knobs. The engine's scoring
// constants are deliberately not configurable.
type SearchConfig struct {
	// Exact disables fuzzy matching by default; the --exact flag still
	// overrides per invocation.
	Exact bool `yaml:"exact" json:"exact"`
	// MaxResults caps search output. Zero means the engine default.
	MaxResults int `yaml:"max_results" json:"max_results"`
}

// Config is quill's persisted configuration.
type Config struct {
	VaultDir       string       `yaml:"vaultdir"        json:"vault_dir"`
	Editor         string       `yaml:"editor"          json:"editor"`
	IgnoredFolders []string     `yaml:"ignoredfolders"  json:"ignored_folders"`
	Search         SearchConfig `yaml:"search"          json:"search"`
}

// DefaultIgnoredFolders are skipped when indexing unless overridden.
var DefaultIgnoredFolders = []string{"archive", "trash", ".obsidian", ".git"}

// FromFile loads the configuration from the provided path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if len(cfg.IgnoredFolders) == 0 {
		cfg.IgnoredFolders = append([]string(nil), DefaultIgnoredFolders...)
	}
	return cfg, nil
}

// Save writes the configuration to its standard location.
func (cfg *Config) Save(home string) error {
	path := StaticGetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// EnsureConfigExists writes a default configuration file when none is
// present, so first runs do not fail on a missing file.
func EnsureConfigExists(home string) error {
	path := StaticGetConfigPath(home)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	cfg := &Config{
		VaultDir:       filepath.Join(home, "quill"),
		IgnoredFolders: append([]string(nil), DefaultIgnoredFolders...),
	}
	return cfg.Save(home)
}

// StaticGetConfigPath returns the standard config file location under home.
func StaticGetConfigPath(home string) string {
	return filepath.Join(
		home+constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}
