package find

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/state"
	findtui "github.com/quillmd/quill/internal/tui/find"
)

func NewCmdFind(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "find",
		Aliases: []string{"f"},
		Short:   "Search notes interactively with a live preview.",
		Long: heredoc.Doc(`
			Open the interactive finder: type to search, arrow keys to move
			through matches, enter to open the selected note in your editor.
			The index follows vault changes while the finder is open.

			  quill find
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return findtui.Run(s)
		},
	}
}
