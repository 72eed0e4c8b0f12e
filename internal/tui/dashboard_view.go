package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/dashboard"
	"nathanbeddoewebdev/opsdeck/internal/display"
	"nathanbeddoewebdev/opsdeck/internal/tui/components"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const cardWidth = 24

type dashboardLoadedMsg struct {
	summary dashboard.Summary
}

type dashboardModel struct {
	ctx    context.Context
	src    dashboard.Sources
	now    func() time.Time
	origin string

	summary dashboard.Summary
	loaded  bool
	loading bool
	spinner spinner.Model

	width  int
	height int
}

func newDashboardModel(ctx context.Context, src dashboard.Sources, origin string) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)
	return dashboardModel{ctx: ctx, src: src, now: time.Now, origin: origin, loading: true, spinner: s}
}

// RunDashboard opens the live dashboard. r reloads every section.
func RunDashboard(ctx context.Context, src dashboard.Sources, origin string) error {
	p := tea.NewProgram(newDashboardModel(ctx, src, origin), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m dashboardModel) loadCmd() tea.Cmd {
	ctx, src, now := m.ctx, m.src, m.now
	return func() tea.Msg {
		return dashboardLoadedMsg{summary: dashboard.Load(ctx, src, now())}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardLoadedMsg:
		m.summary = msg.summary
		m.loaded = true
		m.loading = false

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.loadCmd())
			}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "dashboard", m.origin)
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "r", Desc: "refresh"},
		{Key: "q", Desc: "quit"},
	})

	status := ""
	switch {
	case m.loading:
		status = components.StatusBar(m.width, m.spinner.View()+" Loading...", false)
	case m.summary.Failed() > 0:
		status = components.StatusBar(m.width, fmt.Sprintf("%d of %d sections failed to load.", m.summary.Failed(), len(m.summary.Cards)), true)
	case m.loaded:
		status = components.StatusBar(m.width, "Updated "+m.summary.LoadedAt.Format(time.Kitchen), false)
	}

	content := ""
	if m.loaded {
		content = renderSummary(m.summary, m.width)
	}
	return components.Layout(m.height, header, content, status, footer)
}

func renderSummary(s dashboard.Summary, width int) string {
	half := max(width/2-2, 30)

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderExpiring(s.Expiring),
		"",
		renderQuota(s.QuotaHot),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderStorage(s.Storage, half),
		"",
		components.Sparkline("Domain renewals by month", s.Renewals, half, ""),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderCards(s.Cards, width),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(half).PaddingLeft(2).Render(left),
			lipgloss.NewStyle().Width(half).PaddingLeft(2).Render(right),
		),
	)
}

func renderCards(cards []dashboard.Card, width int) string {
	perRow := max((width-2)/(cardWidth+2), 1)

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		boxes := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			boxes = append(boxes, renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.NewStyle().PaddingLeft(1).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderCard(c dashboard.Card) string {
	title := styles.Label.Render(c.Title)
	if c.Err != "" {
		return styles.CardError.Width(cardWidth).Render(title + "\n" + styles.ErrorText.Render(c.Err))
	}

	lines := []string{title + "  " + styles.Title.Render(display.Count(int64(c.Total)))}
	for _, sc := range c.ByStatus {
		if sc.Count == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %d", styles.StatusIndicator(sc.Status), sc.Count))
	}
	return styles.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

func renderExpiring(items []dashboard.ExpiringDomain) string {
	head := styles.Label.Render(fmt.Sprintf("Domains expiring within %d days", dashboard.ExpiryWindow))
	if len(items) == 0 {
		return head + "\n" + styles.MutedText.Render("None.")
	}
	lines := []string{head}
	for _, d := range items {
		lines = append(lines, fmt.Sprintf("%-28s %s", d.Name, styles.BandStyle(d.Expiry.Band).Render(d.Expiry.Label())))
	}
	return strings.Join(lines, "\n")
}

func renderQuota(items []dashboard.Usage) string {
	head := styles.Label.Render(fmt.Sprintf("Mailboxes at %d%% of quota or more", dashboard.QuotaHotPercent))
	if len(items) == 0 {
		return head + "\n" + styles.MutedText.Render("None.")
	}
	lines := []string{head}
	for _, u := range items {
		lines = append(lines, fmt.Sprintf("%-28s %s", u.Name, components.Gauge(u.Percent, u.Level, 12)))
	}
	return strings.Join(lines, "\n")
}

func renderStorage(items []dashboard.Usage, width int) string {
	head := styles.Label.Render("Storage usage")
	if len(items) == 0 {
		return head + "\n" + styles.MutedText.Render("No buckets.")
	}
	bars := make([]components.Bar, len(items))
	for i, u := range items {
		bars[i] = components.Bar{Label: u.Name, Percent: u.Percent, Level: u.Level}
	}
	return head + "\n" + components.BarChart(bars, width, 10)
}
