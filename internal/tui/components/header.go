// Package components holds render-only building blocks shared by the
// opsdeck screens. None of them are tea.Models.
package components

import (
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Header renders the top bar: the app name and breadcrumb on the left, the
// API origin on the right.
//
//	opsdeck > servers > web-01              localhost:8000
//	──────────────────────────────────────────────────────
func Header(width int, breadcrumb string, origin string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Blue).Render("opsdeck")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	innerWidth := width - 4
	right := ""
	if origin != "" {
		right = styles.Subtitle.Render(origin)
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+1 > innerWidth {
		right = ""
		left = ansi.Truncate(left, innerWidth, "…")
	}
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}

// Breadcrumb joins non-empty path parts with " > ".
func Breadcrumb(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " > ")
}
