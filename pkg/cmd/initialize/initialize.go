package initialize

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/config"
	"github.com/quillmd/quill/internal/state"
	inittui "github.com/quillmd/quill/internal/tui/initialize"
)

func NewCmdInit(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "initialize",
		Aliases: []string{"i", "init"},
		Short:   "Set up quill's configuration and vault directory.",
		Long: heredoc.Doc(`
			Walk through setting up quill: where the vault lives, which editor
			opens notes, and which folders the index should skip.

			  quill init
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.StaticGetConfigPath(s.Home)
			if _, err := os.Stat(path); err == nil {
				prompt := confirmation.New(
					fmt.Sprintf("Overwrite existing configuration at %s?", path),
					confirmation.No,
				)
				overwrite, err := prompt.RunPrompt()
				if err != nil {
					return err
				}
				if !overwrite {
					return nil
				}
			}

			return inittui.Run(s.Home)
		},
	}
}
