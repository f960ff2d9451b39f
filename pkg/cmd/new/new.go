package new

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/state"
	"github.com/quillmd/quill/utils"
)

func NewCmdNew(s *state.State) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:     "new [title] [tags]",
		Aliases: []string{"n"},
		Short:   "Create a new note with front matter.",
		Long: heredoc.Doc(`
			Create a markdown note in the vault. The optional second argument
			is a space-separated tag list.

			             [title]         [tags]
			  quill new "Weekly Review" "work journal"
			  quill new "Standup Notes" --folder work/meetings
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]

			var tags []string
			if len(args) == 2 {
				parsed, err := utils.ValidateInput(args[1])
				if err != nil {
					return fmt.Errorf("invalid tags: %w", err)
				}
				tags = parsed
			}

			rel, err := s.Vault.Create(title, tags, folder)
			if err != nil {
				return err
			}

			s.Index.QueueUpdate(rel)
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", rel)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder to place the note in")
	return cmd
}
