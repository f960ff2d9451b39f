package guide

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	guidecontent "github.com/quillmd/quill/internal/guide"
	"github.com/quillmd/quill/internal/state"
	"github.com/quillmd/quill/utils"
)

func NewCmdGuide(s *state.State) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:     "guide [query]",
		Aliases: []string{"g", "help-pages"},
		Short:   "Browse or search the built-in user guide.",
		Long: heredoc.Doc(`
			The guide ships with the binary. With no arguments it lists every
			page; with a query it searches the guide the same way search works
			on notes.

			  quill guide
			  quill guide fuzzy matching
			  quill guide --section search/fuzzy-matching.md
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := guidecontent.Load()
			if err != nil {
				return err
			}

			if section != "" {
				return printSection(cmd, g, section)
			}
			if len(args) > 0 {
				return printSearch(cmd, g, strings.Join(args, " "))
			}
			return printIndex(cmd, g)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "guide page to display")
	return cmd
}

func printSection(cmd *cobra.Command, g *guidecontent.Guide, id string) error {
	sec, ok := g.Section(id)
	if !ok {
		return fmt.Errorf("no guide page %q; run quill guide to list pages", id)
	}

	width := 100
	if w, _, err := term.GetSize(0); err == nil && w > 0 {
		width = w
	}

	fmt.Fprint(cmd.OutOrStdout(), utils.RenderMarkdown("# "+sec.Title+"\n\n"+sec.Body, width))
	return nil
}

func printSearch(cmd *cobra.Command, g *guidecontent.Guide, query string) error {
	results := g.Search(query)
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintf(out, "no guide pages match %q\n", query)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(out, "%s  (%s)\n", r.Title, r.DocumentID)
		if r.Snippet != "" {
			fmt.Fprintf(out, "    %s\n", r.Snippet)
		}
	}
	return nil
}

func printIndex(cmd *cobra.Command, g *guidecontent.Guide) error {
	out := cmd.OutOrStdout()
	category := ""
	for _, sec := range g.Sections() {
		if sec.Category != category {
			category = sec.Category
			fmt.Fprintf(out, "%s\n", strings.ToUpper(category))
		}
		fmt.Fprintf(out, "  %-24s %s\n", sec.Title, sec.ID)
	}
	fmt.Fprintln(out, "\nquill guide --section <id> shows a page")
	return nil
}
