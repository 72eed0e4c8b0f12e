package components

import (
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the one-line message between content and footer.
// It renders nothing for an empty message.
func StatusBar(width int, message string, isError bool) string {
	if message == "" {
		return ""
	}

	style := styles.SuccessText
	if isError {
		style = styles.ErrorText
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		Render(style.Render(message))
}

// Layout stacks header, content, status and footer, padding the content so
// the footer stays on the last line.
func Layout(height int, header, content, status, footer string) string {
	used := lipgloss.Height(header) + lipgloss.Height(footer)
	if status != "" {
		used += lipgloss.Height(status)
	}
	if contentH := height - used; contentH > lipgloss.Height(content) {
		content = lipgloss.NewStyle().Height(contentH).Render(content)
	}

	sections := []string{header, content}
	if status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ContentHeight is the room left for content once header, footer and
// status are drawn.
func ContentHeight(height int, header, status, footer string) int {
	h := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if status != "" {
		h -= lipgloss.Height(status)
	}
	return max(h, 1)
}
