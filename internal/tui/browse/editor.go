package browse

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EditorAction is what the user asked for on the last key press.
type EditorAction int

const (
	EditorNone EditorAction = iota
	EditorSubmit
	EditorCancel
)

// Editor drives a form.Model from the keyboard. Text-like fields are typed
// into a textinput; enum and bool fields cycle through their options.
type Editor[D any] struct {
	form  *form.Model[D]
	focus int
	input textinput.Model
}

// NewEditor wraps f. Call Reset after every f.Open.
func NewEditor[D any](f *form.Model[D]) Editor[D] {
	ti := textinput.New()
	ti.PromptStyle = styles.AccentText
	ti.TextStyle = styles.Value
	ti.PlaceholderStyle = styles.MutedText
	ti.Width = 40
	return Editor[D]{form: f, input: ti}
}

// Form returns the wrapped form.
func (e *Editor[D]) Form() *form.Model[D] { return e.form }

// Focus is the index of the focused field.
func (e *Editor[D]) Focus() int { return e.focus }

// Reset moves focus to the first field and loads its value.
func (e *Editor[D]) Reset() tea.Cmd {
	e.focus = 0
	return e.load()
}

func (e *Editor[D]) current() (form.Field[D], bool) {
	fields := e.form.Fields()
	if e.focus < 0 || e.focus >= len(fields) {
		return form.Field[D]{}, false
	}
	return fields[e.focus], true
}

func cycles(k form.Kind) bool { return k == form.KindEnum || k == form.KindBool }

func (e *Editor[D]) load() tea.Cmd {
	f, ok := e.current()
	if !ok || cycles(f.Kind) {
		e.input.Blur()
		return nil
	}
	e.input.SetValue(e.form.Value(f.Key))
	e.input.Placeholder = f.Hint
	e.input.CursorEnd()
	return e.input.Focus()
}

// commit writes the textinput back into the draft. A parse error stays on
// the field and is shown next to it.
func (e *Editor[D]) commit() {
	f, ok := e.current()
	if !ok || cycles(f.Kind) {
		return
	}
	_ = e.form.Set(f.Key, e.input.Value())
}

func (e *Editor[D]) move(delta int) tea.Cmd {
	e.commit()
	n := len(e.form.Fields())
	if n == 0 {
		return nil
	}
	e.focus = (e.focus + delta + n) % n
	return e.load()
}

func (e *Editor[D]) cycle(delta int) {
	f, ok := e.current()
	if !ok || len(f.Options) == 0 {
		return
	}
	cur := e.form.Value(f.Key)
	i := slices.IndexFunc(f.Options, func(o string) bool { return strings.EqualFold(o, cur) })
	next := (i + delta + len(f.Options)) % len(f.Options)
	if i < 0 && delta < 0 {
		next = len(f.Options) - 1
	}
	_ = e.form.Set(f.Key, f.Options[next])
}

// Update handles one key press.
func (e *Editor[D]) Update(msg tea.KeyMsg) (EditorAction, tea.Cmd) {
	if e.form.Submitting() {
		return EditorNone, nil
	}
	f, _ := e.current()

	switch msg.String() {
	case "esc":
		return EditorCancel, nil
	case "ctrl+s":
		e.commit()
		return EditorSubmit, nil
	case "enter":
		if e.focus == len(e.form.Fields())-1 {
			e.commit()
			return EditorSubmit, nil
		}
		return EditorNone, e.move(1)
	case "tab", "down":
		return EditorNone, e.move(1)
	case "shift+tab", "up":
		return EditorNone, e.move(-1)
	}

	if cycles(f.Kind) {
		switch msg.String() {
		case "right", "l", " ":
			e.cycle(1)
		case "left", "h":
			e.cycle(-1)
		}
		return EditorNone, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return EditorNone, cmd
}

// View renders one line per field with its error, followed by the form
// error, if any.
func (e *Editor[D]) View(title string, width int) string {
	fields := e.form.Fields()
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label)+2)
	}

	rows := []string{styles.Title.Render(title), ""}
	for i, f := range fields {
		label := f.Label
		if f.Required {
			label += "*"
		}
		prefix := "  "
		labelStyle := styles.MutedText
		if i == e.focus {
			prefix = styles.AccentText.Render("> ")
			labelStyle = styles.Label
		}

		var value string
		switch {
		case i == e.focus && cycles(f.Kind):
			value = styles.AccentText.Render("‹ " + e.form.Value(f.Key) + " ›")
		case i == e.focus:
			value = e.input.View()
		default:
			value = styles.Value.Render(e.form.Value(f.Key))
		}

		row := prefix + labelStyle.Width(labelWidth).Render(label) + value
		if msg := e.form.FieldErr(f.Key); msg != "" {
			row += "  " + styles.ErrorText.Render(msg)
		}
		rows = append(rows, row)
	}

	if e.form.Submitting() {
		rows = append(rows, "", styles.MutedText.Render("  Saving..."))
	} else if msg := e.form.Err(); msg != "" {
		rows = append(rows, "", styles.ErrorText.Render("  "+msg))
	}

	return styles.CardActive.Width(min(width-4, 96)).Render(strings.Join(rows, "\n"))
}

func formTitle(mode form.Mode, noun, name string) string {
	if mode == form.ModeEdit {
		return fmt.Sprintf("Edit %s %s", noun, name)
	}
	return "New " + noun
}
