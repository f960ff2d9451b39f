package find

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillmd/quill/internal/search"
	"github.com/quillmd/quill/internal/state"
	"github.com/quillmd/quill/utils"
)

// model is the interactive search screen: a query input on top, matching
// notes on the left, a rendered preview of the selection on the right.
type model struct {
	state   *state.State
	input   textinput.Model
	list    list.Model
	width   int
	height  int
	status  string
	loadErr error

	// opening holds the note to launch in the editor after the program
	// exits; editors need the terminal to themselves.
	opening string
}

func newModel(s *state.State) model {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "type to search your notes"
	input.Focus()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)

	m := model{
		state: s,
		input: input,
		list:  l,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(resultItem); ok {
				m.opening = item.result.DocumentID
				return m, tea.Quit
			}
			return m, nil

		case "ctrl+y":
			if item, ok := m.list.SelectedItem().(resultItem); ok {
				path := m.notePath(item.result.DocumentID)
				if err := clipboard.WriteAll(path); err != nil {
					m.status = "clipboard unavailable"
				} else {
					m.status = "copied " + item.result.DocumentID
				}
			}
			return m, nil

		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.status = ""
		m.refresh()
	}
	return m, cmd
}

func (m model) View() string {
	left := listStyle.Render(m.list.View())
	right := previewStyle.Render(m.preview())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := m.statusLine()

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		inputStyle.Width(max(20, m.width-6)).Render(m.input.View()),
		body,
		status,
	))
}

func (m model) statusLine() string {
	if m.loadErr != nil {
		return statusStyle("index error: " + m.loadErr.Error())
	}
	line := helpStyle("enter: open  ctrl+y: copy path  esc: quit")
	if m.status != "" {
		line = statusStyle(m.status) + "  " + line
	}
	return line
}

// refresh re-runs the query against the index. An empty query falls back to
// the most recently modified notes.
func (m *model) refresh() {
	query := m.input.Value()
	if query == "" {
		docs, err := m.state.Index.Recent(0)
		if err != nil {
			m.loadErr = err
			return
		}
		m.loadErr = nil
		m.list.SetItems(documentItems(docs))
		m.list.ResetSelected()
		return
	}

	req := search.NewRequest(query)
	req.Fuzzy = !m.state.Config.Search.Exact
	if m.state.Config.Search.MaxResults > 0 {
		req.MaxResults = m.state.Config.Search.MaxResults
	}

	results, err := m.state.Index.Search(req)
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.list.SetItems(resultItems(results))
	m.list.ResetSelected()
}

func (m *model) layout() {
	contentWidth := max(20, m.width-6)
	contentHeight := max(5, m.height-8)
	m.list.SetSize(contentWidth/2, contentHeight)
}

func (m model) preview() string {
	item, ok := m.list.SelectedItem().(resultItem)
	if !ok {
		return ""
	}

	width := max(20, m.width-6) / 2
	height := max(5, m.height-8)
	return utils.RenderMarkdownPreview(m.notePath(item.result.DocumentID), width, height)
}

func (m model) notePath(id string) string {
	return filepath.Join(m.state.Vault.Root(), filepath.FromSlash(id))
}

// Run opens the interactive finder. The vault watcher keeps the index
// current while the screen is up.
func Run(s *state.State) error {
	if err := s.StartWatcher(); err != nil {
		return err
	}

	final, err := tea.NewProgram(newModel(s), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	m, ok := final.(model)
	if !ok || m.opening == "" {
		return nil
	}
	return openInEditor(s, m.opening)
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
