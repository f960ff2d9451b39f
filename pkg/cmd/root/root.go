package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/constants"
	"github.com/quillmd/quill/internal/state"
	"github.com/quillmd/quill/pkg/cmd/find"
	"github.com/quillmd/quill/pkg/cmd/guide"
	"github.com/quillmd/quill/pkg/cmd/initialize"
	"github.com/quillmd/quill/pkg/cmd/new"
	"github.com/quillmd/quill/pkg/cmd/open"
	"github.com/quillmd/quill/pkg/cmd/recent"
	"github.com/quillmd/quill/pkg/cmd/search"
	"github.com/quillmd/quill/pkg/cmd/stats"
	"github.com/quillmd/quill/pkg/cmd/tasks"
)

func NewCmdRoot(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quill",
		Aliases: []string{"ql"},
		Short:   "Local-first markdown notes with fast full-text search.",
		Long: heredoc.Doc(`
			quill keeps your notes as plain markdown files in a vault directory
			and gives you an in-memory full-text search over them: weighted
			title matches, typo-tolerant fuzzy terms, folder and tag filters,
			and context snippets.

			  quill search kubernetes deployment
			  quill find
			  quill new "Weekly Review" "work journal"
		`),
		Version: constants.Version,
		// The interactive finder is the default surface.
		RunE: find.NewCmdFind(s).RunE,
	}

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		search.NewCmdSearch(s),
		find.NewCmdFind(s),
		recent.NewCmdRecent(s),
		stats.NewCmdStats(s),
		new.NewCmdNew(s),
		open.NewCmdOpen(s),
		tasks.NewCmdTasks(s),
		guide.NewCmdGuide(s),
	)

	return cmd
}
