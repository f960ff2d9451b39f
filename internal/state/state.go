package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/quillmd/quill/internal/config"
	indexsvc "github.com/quillmd/quill/internal/services/index"
	"github.com/quillmd/quill/internal/vault"
)

// State bundles everything a command needs: configuration, the vault store,
// and the shared index service. Commands receive it by reference instead of
// reaching for globals, which keeps tests able to build a fresh one.
type State struct {
	Config  *config.Config
	Home    string
	Vault   *vault.Vault
	Index   *indexsvc.Service
	Watcher *VaultWatcher
}

// NewState loads the configuration and wires the vault and index service.
func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, fmt.Errorf("ensure config: %w", err)
	}

	cfg, err := config.FromFile(config.StaticGetConfigPath(home))
	if err != nil {
		return nil, err
	}

	if cfg.VaultDir == "" {
		return nil, errors.New("no vault directory configured; run quill init")
	}

	v := vault.New(cfg.VaultDir, cfg.IgnoredFolders)
	return &State{
		Config: cfg,
		Home:   home,
		Vault:  v,
		Index:  indexsvc.NewService(v),
	}, nil
}

// StartWatcher begins feeding vault file changes into the index service's
// pending queue. Commands that exit immediately skip this; the interactive
// finder uses it to stay current while open.
func (s *State) StartWatcher() error {
	if s.Watcher != nil {
		return nil
	}

	w, err := NewVaultWatcher(s.Vault.Root())
	if err != nil {
		return fmt.Errorf("start vault watcher: %w", err)
	}
	w.OnChange(s.Index.QueueUpdate)
	s.Watcher = w
	return nil
}

// Close releases the watcher and the index service.
func (s *State) Close() error {
	var errs []error
	if s.Watcher != nil {
		errs = append(errs, s.Watcher.Close())
	}
	if s.Index != nil {
		errs = append(errs, s.Index.Close())
	}
	return errors.Join(errs...)
}

// GetHomeDir resolves the user's home directory.
func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return home, nil
}
