package browse

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/tui/components"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func (m Model[T, C, U, D]) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.view == viewScreen && m.screen != nil {
		return m.screen.View(m.width, m.height)
	}

	header := components.Header(m.width, m.breadcrumb(), m.cfg.Origin)
	footer := components.Footer(m.width, m.bindings())
	status := m.statusLine()
	height := components.ContentHeight(m.height, header, status, footer)

	var content string
	switch m.view {
	case viewDetail:
		content = m.renderDetail(height)
	case viewForm:
		f := m.editor.Form()
		content = "\n" + m.editor.View(formTitle(f.Mode(), m.cfg.Area.Nouns.Singular, m.formName()), m.width)
	case viewConfirm:
		content = m.renderConfirm(height)
	default:
		content = m.renderList(height)
	}

	return components.Layout(m.height, header, content, status, footer)
}

func (m Model[T, C, U, D]) statusLine() string {
	if m.busy != "" {
		return components.StatusBar(m.width, m.spinner.View()+" "+m.busy, false)
	}
	return components.StatusBar(m.width, m.status, m.isError)
}

func (m Model[T, C, U, D]) breadcrumb() string {
	plural := m.cfg.Area.Nouns.Plural
	switch m.view {
	case viewDetail:
		name := m.loader.ID()
		if item, ok := m.loader.Item(); ok {
			name = item.Label()
		}
		return components.Breadcrumb(plural, name)
	case viewForm:
		return components.Breadcrumb(plural, m.editor.Form().Mode().String())
	case viewConfirm:
		return components.Breadcrumb(plural, "delete")
	}
	return plural
}

func (m Model[T, C, U, D]) formName() string {
	f := m.editor.Form()
	if item, ok := m.list.Get(f.Target()); ok {
		return item.Label()
	}
	return f.Target()
}

func (m Model[T, C, U, D]) bindings() []components.KeyBinding {
	switch m.view {
	case viewForm:
		return []components.KeyBinding{
			{Key: "tab/↑↓", Desc: "field"},
			{Key: "←→", Desc: "choose"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewConfirm:
		return []components.KeyBinding{
			{Key: "y", Desc: "delete"},
			{Key: "n", Desc: "cancel"},
		}
	case viewDetail:
		b := []components.KeyBinding{
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "delete"},
			{Key: "r", Desc: "refresh"},
		}
		b = append(b, m.extraBindings()...)
		return append(b, components.KeyBinding{Key: "esc", Desc: "back"}, components.KeyBinding{Key: "q", Desc: "quit"})
	}

	if m.searching {
		return []components.KeyBinding{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "clear"},
		}
	}
	b := []components.KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "enter", Desc: "show"},
		{Key: "c", Desc: "create"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "/", Desc: "search"},
	}
	if n := len(m.list.FacetDefs()); n > 0 {
		b = append(b, components.KeyBinding{Key: fmt.Sprintf("1-%d", n), Desc: "filter"})
	}
	b = append(b, components.KeyBinding{Key: "x", Desc: "reset"}, components.KeyBinding{Key: "r", Desc: "reload"})
	b = append(b, m.extraBindings()...)
	return append(b, components.KeyBinding{Key: "q", Desc: "quit"})
}

func (m Model[T, C, U, D]) extraBindings() []components.KeyBinding {
	var b []components.KeyBinding
	for _, x := range m.cfg.Extras {
		b = append(b, components.KeyBinding{Key: x.Key, Desc: x.Desc})
	}
	return b
}

func (m Model[T, C, U, D]) renderFilterBar() string {
	var parts []string
	if m.searching || m.list.Search() != "" {
		parts = append(parts, m.search.View())
	}
	for i, f := range m.list.FacetDefs() {
		v := m.list.Facet(f.Name)
		val := styles.MutedText.Render(v)
		if v != listing.All {
			val = styles.AccentText.Render(v)
		}
		parts = append(parts, styles.KeyStyle.Render(fmt.Sprint(i+1))+" "+styles.Subtitle.Render(f.Label+":")+" "+val)
	}
	return "  " + strings.Join(parts, "   ")
}

func (m Model[T, C, U, D]) renderList(height int) string {
	plural := m.cfg.Area.Nouns.Plural
	if m.loading && m.list.Len() == 0 {
		return fmt.Sprintf("\n  %s Loading %s...", m.spinner.View(), plural)
	}
	if m.list.Len() == 0 {
		if msg := m.list.Err(); msg != "" {
			return "\n  " + styles.ErrorText.Render(msg)
		}
		return "\n  " + styles.MutedText.Render(fmt.Sprintf("No %s yet. Press c to create one.", plural))
	}

	visible := m.list.Visible()
	count := fmt.Sprintf("  %d of %d %s", len(visible), m.list.Len(), plural)
	if m.list.Filtered() {
		count += " (filtered)"
	}
	lines := []string{m.renderFilterBar(), styles.MutedText.Render(count)}

	if len(visible) == 0 {
		lines = append(lines, "", "  "+styles.MutedText.Render(fmt.Sprintf("No %s match the current filters. Press x to reset.", plural)))
		return strings.Join(lines, "\n")
	}

	headers := m.list.Headers()
	rows := make([][]string, len(visible))
	for i, it := range visible {
		rows[i] = m.list.Row(it)
	}
	tbl := components.NewTable(headers, rows)
	tbl.Cursor = m.cursor
	tbl.Offset = m.offset
	for i, h := range headers {
		if h == "STATUS" || h == "CI" {
			tbl.StatusColumn = i
		}
	}
	body, _ := tbl.View(m.width, height-len(lines)-1)
	return strings.Join(append(lines, "", body), "\n")
}

// tableRows estimates the rows the list table shows: the screen less the
// header, footer, status, filter bar and table header.
func (m Model[T, C, U, D]) tableRows() int {
	return max(m.height-10, 1)
}

func (m Model[T, C, U, D]) renderDetail(height int) string {
	switch m.loader.State() {
	case detail.Loading:
		return fmt.Sprintf("\n  %s Loading %s...", m.spinner.View(), m.cfg.Area.Nouns.Singular)
	case detail.Failed:
		return "\n  " + styles.ErrorText.Render(m.loader.Err())
	}
	item, ok := m.loader.Item()
	if !ok {
		return ""
	}

	rows := m.cfg.Area.Detail(item)
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label)+2)
	}

	lines := []string{styles.Title.Render(item.Label()), ""}
	for _, r := range rows {
		if r.IsSection() {
			lines = append(lines, "", styles.AccentText.Bold(true).Render(r.Value))
			continue
		}
		value := r.Value
		if r.Label == "Status" {
			value = styles.StatusIndicator(value)
		}
		lines = append(lines, styles.Label.Width(labelWidth).Render(r.Label)+styles.Value.Render(value))
	}

	visible := max(height-2, 1)
	start := min(m.detailScroll, max(len(lines)-visible, 0))
	end := min(start+visible, len(lines))
	return "\n" + styles.Card.Render(strings.Join(lines[start:end], "\n"))
}

func (m Model[T, C, U, D]) renderConfirm(height int) string {
	noun := m.cfg.Area.Nouns.Singular
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.WarningText.Render(fmt.Sprintf("Delete %s %s?", noun, m.pending.Label())),
		"",
		styles.MutedText.Render("This cannot be undone."),
		"",
		styles.FormatKeyBinding("y", "delete")+"   "+styles.FormatKeyBinding("n", "cancel"),
	)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.CardActive.Render(body))
}
