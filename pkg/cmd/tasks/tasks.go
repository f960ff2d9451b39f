package tasks

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/state"
)

func NewCmdTasks(s *state.State) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "tasks <note>",
		Aliases: []string{"t"},
		Short:   "List the markdown checkboxes of a note.",
		Long: heredoc.Doc(`
			Show the checkbox items of a note with their completion state.
			Open items only by default; pass --all to include done ones.

			  quill tasks work/meetings/standup-notes.md
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := s.Vault.Tasks(args[0])
			if err != nil {
				return fmt.Errorf("tasks: %w", err)
			}

			out := cmd.OutOrStdout()
			shown := 0
			for _, task := range tasks {
				if task.Done && !all {
					continue
				}
				box := "[ ]"
				if task.Done {
					box = "[x]"
				}
				fmt.Fprintf(out, "%s %s\n", box, task.Text)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(out, "no tasks")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	return cmd
}
