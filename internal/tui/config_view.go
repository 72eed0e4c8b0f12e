package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/config"
	"nathanbeddoewebdev/opsdeck/internal/tui/components"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type configSavedMsg struct {
	key string
}

type configSaveErrorMsg struct {
	err error
}

type configViewModel struct {
	cfg  *config.Config
	keys []config.KeySpec
	save func(*config.Config) error

	cursor  int
	editing bool
	editor  textinput.Model

	width  int
	height int

	status  string
	isError bool
}

func newConfigViewModel(cfg *config.Config, save func(*config.Config) error) configViewModel {
	return configViewModel{cfg: cfg, keys: config.Keys, save: save}
}

// RunConfigView opens the interactive config editor.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m := newConfigViewModel(cfg, (*config.Config).Save)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run config editor: %w", err)
	}
	return nil
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case configSavedMsg:
		m.editing = false
		m.status = "Saved " + msg.key + "."
		m.isError = false
		return m, nil

	case configSaveErrorMsg:
		m.status = msg.err.Error()
		m.isError = true
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m configViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.keys)-1 {
			m.cursor++
		}
	case "enter", "e":
		spec := m.keys[m.cursor]
		ti := textinput.New()
		ti.SetValue(spec.Get(m.cfg))
		ti.Width = 48
		ti.Placeholder = "empty resets to default"
		m.editor = ti
		m.editing = true
		m.status = ""
		return m, m.editor.Focus()
	}
	return m, nil
}

func (m configViewModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		spec := m.keys[m.cursor]
		value := strings.TrimSpace(m.editor.Value())
		// A rejected value leaves m.cfg untouched.
		next := *m.cfg
		if value == "" {
			spec.Clear(&next)
		} else if err := spec.Set(&next, value); err != nil {
			m.status = err.Error()
			m.isError = true
			return m, nil
		}
		*m.cfg = next
		return m, m.saveConfig(spec.Name)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m configViewModel) saveConfig(key string) tea.Cmd {
	cfg, save := *m.cfg, m.save
	return func() tea.Msg {
		if err := save(&cfg); err != nil {
			return configSaveErrorMsg{err: err}
		}
		return configSavedMsg{key: key}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", "")

	var bindings []components.KeyBinding
	if m.editing {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	} else {
		bindings = []components.KeyBinding{
			{Key: "j/k", Desc: "navigate"},
			{Key: "e", Desc: "edit"},
			{Key: "q", Desc: "quit"},
		}
	}
	footer := components.Footer(m.width, bindings)
	status := components.StatusBar(m.width, m.status, m.isError)

	contentH := components.ContentHeight(m.height, header, status, footer)
	return components.Layout(m.height, header, m.renderContent(contentH), status, footer)
}

func (m configViewModel) renderContent(height int) string {
	title := styles.Title.Render("Configuration")

	labelWidth := 14
	rows := make([]string, 0, len(m.keys)+1)
	for i, spec := range m.keys {
		value := spec.Get(m.cfg)
		if value == "" {
			value = "(default)"
		}

		if i != m.cursor {
			rows = append(rows, "  "+styles.MutedText.Width(labelWidth).Render(spec.Name)+styles.MutedText.Render(value))
			continue
		}

		name := styles.Label.Width(labelWidth).Render(spec.Name)
		if m.editing {
			rows = append(rows, styles.AccentText.Render("> ")+name+m.editor.View())
			continue
		}
		rows = append(rows,
			styles.AccentText.Render("> ")+name+styles.Value.Bold(true).Render(value),
			strings.Repeat(" ", 4)+styles.MutedText.Italic(true).Render(spec.Description),
		)
	}

	card := styles.Card.Width(72).Render(strings.Join(rows, "\n"))
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title, "", card))
}
