package styles

import (
	"github.com/charmbracelet/lipgloss"

	"nathanbeddoewebdev/opsdeck/internal/display"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail and form views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	Value = lipgloss.NewStyle().
		Foreground(White)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	WarningText = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)
)

// StatusStyle colours a status value of any resource kind. Unknown values
// render gray.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "online", "active", "passing", "valid", "public":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "maintenance", "warning", "pending", "pending_transfer", "grace_period", "expiring_soon", "running":
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	case "offline", "expired", "suspended", "failing", "invalid":
		return lipgloss.NewStyle().Foreground(Red)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// StatusIndicator returns a coloured dot followed by the status text.
func StatusIndicator(status string) string {
	style := StatusStyle(status)
	return style.Render("●") + " " + style.Render(status)
}

// BandStyle colours an expiry band.
func BandStyle(b display.Band) lipgloss.Style {
	switch b {
	case display.BandExpired:
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	case display.BandUrgent:
		return lipgloss.NewStyle().Foreground(Orange).Bold(true)
	case display.BandWarning:
		return lipgloss.NewStyle().Foreground(Yellow)
	default:
		return lipgloss.NewStyle().Foreground(Green)
	}
}

// LevelColor is the bar colour for a usage level.
func LevelColor(l display.Level) lipgloss.Color {
	switch l {
	case display.LevelDanger:
		return Red
	case display.LevelWarning:
		return Yellow
	default:
		return Green
	}
}

var (
	Border = lipgloss.RoundedBorder()

	// Card is a rounded-border panel for content sections.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(0, 1)

	// CardActive is a card with an accent border for focused elements.
	CardActive = lipgloss.NewStyle().
			Border(Border).
			BorderForeground(Blue).
			Padding(0, 1)

	// CardError outlines a panel whose data failed to load.
	CardError = lipgloss.NewStyle().
			Border(Border).
			BorderForeground(Red).
			Padding(0, 1)
)

var (
	KeyStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}

var (
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Gray).
			Padding(0, 1)

	TableCell = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	TableSelectedRow = lipgloss.NewStyle().
				Foreground(White).
				Background(DarkBlue).
				Bold(true).
				Padding(0, 1)
)

var (
	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Padding(0, 1)

	InputBlurred = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// AppFrame sizes the full-window frame.
func AppFrame(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Height(height)
}

// CenterText centers text horizontally within the given width.
func CenterText(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}
