package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/quillmd/quill/internal/search"
	"github.com/quillmd/quill/internal/state"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	snippetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var (
		folder     string
		tags       []string
		fromFlag   string
		toFlag     string
		exact      bool
		maxResults int
	)

	cmd := &cobra.Command{
		Use:     "search [terms...]",
		Aliases: []string{"s"},
		Short:   "Search notes by content, title, folder, tag, and date.",
		Long: heredoc.Doc(`
			Run a full-text search over the vault. Title matches rank above
			body matches, exact phrases above scattered terms, and recently
			edited notes get a small boost. Typos are tolerated unless --exact
			is given.

			  quill search kubernetes deployment
			  quill search --folder dev --tag go generics
			  quill search --from "jan 1" --to "jun 30" roadmap
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(s, args, folder, tags, fromFlag, toFlag, exact, maxResults)
			if err != nil {
				return err
			}

			results, err := s.Index.Search(req)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			printResults(cmd, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "", "restrict to a folder and its subfolders")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "keep only notes with a matching tag (repeatable)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "earliest last-modified date")
	cmd.Flags().StringVar(&toFlag, "to", "", "latest last-modified date")
	cmd.Flags().BoolVar(&exact, "exact", false, "disable fuzzy matching")
	cmd.Flags().IntVarP(&maxResults, "limit", "l", 0, "maximum number of results")

	return cmd
}

func buildRequest(
	s *state.State,
	terms []string,
	folder string,
	tags []string,
	fromFlag, toFlag string,
	exact bool,
	maxResults int,
) (search.Request, error) {
	req := search.NewRequest(strings.Join(terms, " "))

	if exact || s.Config.Search.Exact {
		req.Fuzzy = false
	}
	if maxResults > 0 {
		req.MaxResults = maxResults
	} else if s.Config.Search.MaxResults > 0 {
		req.MaxResults = s.Config.Search.MaxResults
	}

	filters := &search.Filters{ContainerID: folder, Tags: tags}
	if fromFlag != "" || toFlag != "" {
		dr, err := parseDateRange(fromFlag, toFlag)
		if err != nil {
			return search.Request{}, err
		}
		filters.DateRange = dr
	}
	if folder != "" || len(tags) > 0 || filters.DateRange != nil {
		req.Filters = filters
	}

	return req, nil
}

// parseDateRange accepts loose human date input for both bounds. A missing
// bound leaves that side of the range open.
func parseDateRange(fromFlag, toFlag string) (*search.DateRange, error) {
	dr := &search.DateRange{}

	if fromFlag != "" {
		from, err := dateparse.ParseAny(fromFlag)
		if err != nil {
			return nil, fmt.Errorf("parsing --from %q: %w", fromFlag, err)
		}
		dr.Start = from
	}

	if toFlag != "" {
		to, err := dateparse.ParseAny(toFlag)
		if err != nil {
			return nil, fmt.Errorf("parsing --to %q: %w", toFlag, err)
		}
		dr.End = to
	} else {
		dr.End = maxDate
	}

	return dr, nil
}

// maxDate stands in for an open upper bound; the engine's range check is
// inclusive on both sides.
var maxDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func printResults(cmd *cobra.Command, results []search.Result) {
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintln(out, "no matches")
		return
	}

	for _, r := range results {
		header := titleStyle.Render(r.Title)
		if r.ContainerPath != "" {
			header += "  " + pathStyle.Render(r.ContainerPath)
		}
		fmt.Fprintln(out, header)

		if snippet := strings.TrimSpace(r.Snippet); snippet != "" {
			fmt.Fprintln(out, snippetStyle.Render("  "+snippet))
		}
		fmt.Fprintln(out, metaStyle.Render(fmt.Sprintf(
			"  %s · %d match(es) · %s",
			r.DocumentID,
			r.MatchCount,
			r.LastModified.Local().Format("2006-01-02"),
		)))
		fmt.Fprintln(out)
	}
}
