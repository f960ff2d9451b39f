package initialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillmd/quill/internal/config"
)

var (
	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cba6f7"))
	focusedDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#585b70"))
	noStyle   = lipgloss.NewStyle()
	helpStyle = focusedDimStyle.Copy()

	focusedButton = focusedStyle.Copy().Render("[ Submit ]")
	blurredButton = fmt.Sprintf(
		"[ %s ]",
		focusedDimStyle.Render("Submit"),
	)
)

type initPromptModel struct {
	home       string
	inputs     []textinput.Model
	focusIndex int
	err        error
}

func initialPrompt(home string) initPromptModel {
	m := initPromptModel{
		inputs: make([]textinput.Model, 3),
		home:   home,
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.CharLimit = 128
		t.PlaceholderStyle = focusedDimStyle
		t.PromptStyle = noStyle

		switch i {
		case 0:
			t.Prompt = "Vault Directory: "
			t.Placeholder = filepath.Join(home, "quill")
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Prompt = "Editor: "
			t.Placeholder = "nvim"
		case 2:
			t.Prompt = "Ignored Folders: "
			t.Placeholder = strings.Join(config.DefaultIgnoredFolders, " ")
		}

		m.inputs[i] = t
	}

	return m
}

func (m initPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m initPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			if s == "enter" && m.focusIndex == len(m.inputs) {
				m.err = m.submit()
				return m, tea.Quit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
					continue
				}
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	return m, m.updateInputs(msg)
}

func (m *initPromptModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m initPromptModel) View() string {
	var b strings.Builder

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		b.WriteRune('\n')
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}
	fmt.Fprintf(&b, "\n%s\n\n", *button)

	b.WriteString(helpStyle.Render("(leave inputs blank for default values)"))

	return b.String()
}

// submit fills unset inputs with their placeholders, writes the config, and
// creates the vault directory.
func (m *initPromptModel) submit() error {
	vaultDir := m.inputs[0].Value()
	if vaultDir == "" {
		vaultDir = m.inputs[0].Placeholder
	}

	editor := m.inputs[1].Value()
	if editor == "" {
		editor = m.inputs[1].Placeholder
	}

	ignored := strings.Fields(m.inputs[2].Value())
	if len(ignored) == 0 {
		ignored = append([]string(nil), config.DefaultIgnoredFolders...)
	}

	cfg := &config.Config{
		VaultDir:       vaultDir,
		Editor:         editor,
		IgnoredFolders: ignored,
	}
	if err := cfg.Save(m.home); err != nil {
		return err
	}

	if err := os.MkdirAll(vaultDir, 0o755); err != nil {
		return fmt.Errorf("creating vault directory: %w", err)
	}
	return nil
}

// Run walks the user through initial setup and persists the result.
func Run(home string) error {
	final, err := tea.NewProgram(initialPrompt(home)).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(initPromptModel); ok && m.err != nil {
		return m.err
	}

	fmt.Println("Initialization complete!")
	return nil
}
