package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/fzf"
	"github.com/quillmd/quill/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Pick a note with the fuzzy finder and open it in your editor.",
		Long: heredoc.Doc(`
			Fuzzy-pick a note by title or path, with a rendered markdown
			preview, then open it in the configured editor.

			  quill open
			  quill open standup
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(s.Vault, "Select note to open")
			rel, err := finder.Run(query)
			if err != nil {
				if errors.Is(err, fuzzyfinder.ErrAbort) {
					return nil
				}
				return err
			}

			return openInEditor(s, rel)
		},
	}
}

func openInEditor(s *state.State, rel string) error {
	editor := s.Config.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return fmt.Errorf("no editor configured; set editor in the config or $EDITOR")
	}

	path := filepath.Join(s.Vault.Root(), filepath.FromSlash(rel))
	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}

	s.Index.QueueUpdate(rel)
	return nil
}
