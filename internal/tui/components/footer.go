package components

import (
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding is one hint in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer renders the key hints along the bottom of the screen. Hints that
// do not fit are cut off.
func Footer(width int, bindings []KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = styles.FormatKeyBinding(b.Key, b.Desc)
	}
	content := ansi.Truncate(strings.Join(parts, styles.KeySepStyle.Render("  ")), width-4, "…")

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderTop(true).
		BorderForeground(styles.DimGray).
		Render(content)
}
