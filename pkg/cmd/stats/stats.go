package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/search"
	"github.com/quillmd/quill/internal/state"
)

func NewCmdStats(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index diagnostics.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reads go through Search/Recent so the index is built before
			// stats are read; an empty probe does not scan the index.
			if _, err := s.Index.Search(search.NewRequest("")); err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			st := s.Index.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vault:             %s\n", s.Vault.Root())
			fmt.Fprintf(out, "indexed notes:     %d\n", st.Engine.IndexedDocuments)
			fmt.Fprintf(out, "stored tokens:     %d\n", st.Engine.TotalTokens)
			fmt.Fprintf(out, "pending updates:   %d\n", st.Pending)
			if !st.LastRebuild.IsZero() {
				fmt.Fprintf(out, "last full rebuild: %s\n", st.LastRebuild.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
