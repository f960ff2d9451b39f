package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromFileAppliesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := "vaultdir: /tmp/notes\neditor: vim\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}

	if cfg.VaultDir != "/tmp/notes" || cfg.Editor != "vim" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.IgnoredFolders) == 0 {
		t.Fatalf("expected default ignored folders to apply")
	}
}

func TestSaveRoundTrips(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cfg := &Config{
		VaultDir:       "/srv/vault",
		Editor:         "hx",
		IgnoredFolders: []string{"archive"},
		Search:         SearchConfig{Exact: true, MaxResults: 25},
	}

	if err := cfg.Save(home); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := FromFile(StaticGetConfigPath(home))
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}

	if loaded.VaultDir != cfg.VaultDir || loaded.Editor != cfg.Editor {
		t.Fatalf("config did not round-trip: %+v", loaded)
	}
	if !loaded.Search.Exact || loaded.Search.MaxResults != 25 {
		t.Fatalf("search config did not round-trip: %+v", loaded.Search)
	}
}

func TestEnsureConfigExistsIsIdempotent(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}

	cfg, err := FromFile(StaticGetConfigPath(home))
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	cfg.Editor = "custom"
	if err := cfg.Save(home); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// A second call must not clobber the user's edits.
	if err := EnsureConfigExists(home); err != nil {
		t.Fatalf("second EnsureConfigExists returned error: %v", err)
	}

	reloaded, err := FromFile(StaticGetConfigPath(home))
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if reloaded.Editor != "custom" {
		t.Fatalf("expected existing config to be preserved, got %+v", reloaded)
	}
}
