package recent

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/state"
)

func NewCmdRecent(s *state.State) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "recent",
		Aliases: []string{"r"},
		Short:   "List the most recently modified notes.",
		Long: heredoc.Doc(`
			Show notes ordered by last-modified time, newest first.

			  quill recent
			  quill recent --limit 25
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := s.Index.Recent(limit)
			if err != nil {
				return fmt.Errorf("recent: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "no notes yet")
				return nil
			}
			for _, doc := range docs {
				fmt.Fprintf(out, "%s  %s  (%s)\n",
					doc.UpdatedAt.Local().Format("2006-01-02 15:04"),
					doc.Title,
					doc.ID,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "number of notes to list")
	return cmd
}
