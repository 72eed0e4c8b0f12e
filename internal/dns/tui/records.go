// Package tui is the DNS record screen opened from a domain in the
// domains browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/dns/views"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"
	"nathanbeddoewebdev/opsdeck/internal/tui/components"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecordService mutates the records of one domain. *services.Service
// satisfies it.
type RecordService interface {
	AddRecord(ctx context.Context, domainID string, opts domain.RecordOpts) (*domain.Domain, error)
	UpdateRecord(ctx context.Context, domainID, recordID string, opts domain.RecordUpdateOpts) (*domain.Domain, error)
	DeleteRecord(ctx context.Context, domainID, recordID string) (*domain.Domain, error)
}

// recordResultMsg carries the parent domain returned by a record mutation.
type recordResultMsg struct {
	verb   string
	label  string
	domain *domain.Domain
	err    error
}

type recordsView int

const (
	recordsList recordsView = iota
	recordsForm
	recordsConfirm
)

// Records lists, edits and deletes one domain's DNS records.
type Records struct {
	svc    RecordService
	ctx    context.Context
	origin string

	domain domain.Domain
	list   *listing.List[domain.Record]
	editor browse.Editor[views.RecordDraft]

	view       recordsView
	cursor     int
	offset     int
	pending    domain.Record
	confirmIdx int // 0 = Delete, 1 = Cancel

	busy    string
	spinner spinner.Model

	status  string
	isError bool
}

// NewRecords returns the record screen for d.
func NewRecords(ctx context.Context, svc RecordService, d domain.Domain, origin string) *Records {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	list := views.NewRecordList()
	list.Load(d.DNSRecords)
	return &Records{
		svc:     svc,
		ctx:     ctx,
		origin:  origin,
		domain:  d,
		list:    list,
		editor:  browse.NewEditor(views.NewRecordForm()),
		spinner: s,
	}
}

// Screen adapts NewRecords to a browse.Extra opener.
func Screen(ctx context.Context, svc RecordService, origin string) func(domain.Domain) browse.Screen {
	return func(d domain.Domain) browse.Screen { return NewRecords(ctx, svc, d, origin) }
}

func (r *Records) Init() tea.Cmd { return nil }

func (r *Records) Update(msg tea.Msg) (browse.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordResultMsg:
		return r.handleResult(msg)

	case spinner.TickMsg:
		if r.busy == "" && !r.editor.Form().Submitting() {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		switch r.view {
		case recordsForm:
			return r.handleFormKey(msg)
		case recordsConfirm:
			return r.handleConfirmKey(msg)
		}
		return r.handleListKey(msg)
	}
	return r, nil
}

func (r *Records) handleListKey(msg tea.KeyMsg) (browse.Screen, tea.Cmd) {
	visible := r.list.Visible()
	switch msg.String() {
	case "esc", "backspace", "q":
		return r, func() tea.Msg { return browse.CloseScreenMsg{} }
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(visible)-1 {
			r.cursor++
		}
	case "f":
		r.cycleType()
	case "c":
		r.editor.Form().Open(form.ModeCreate, "", views.NewRecordDraft())
		r.view = recordsForm
		return r, r.editor.Reset()
	case "e":
		if len(visible) > 0 {
			rec := visible[r.cursor]
			r.editor.Form().Open(form.ModeEdit, rec.ID, views.FromRecord(rec))
			r.view = recordsForm
			return r, r.editor.Reset()
		}
	case "d":
		if len(visible) > 0 {
			r.pending = visible[r.cursor]
			r.confirmIdx = 1
			r.view = recordsConfirm
		}
	}
	return r, nil
}

func (r *Records) cycleType() {
	opts := r.list.Options("type")
	cur := r.list.Facet("type")
	for i, o := range opts {
		if o == cur {
			_ = r.list.SetFacet("type", opts[(i+1)%len(opts)])
			break
		}
	}
	r.clampCursor()
}

func (r *Records) handleFormKey(msg tea.KeyMsg) (browse.Screen, tea.Cmd) {
	action, cmd := r.editor.Update(msg)
	switch action {
	case browse.EditorCancel:
		r.editor.Form().Cancel()
		r.view = recordsList
		return r, nil
	case browse.EditorSubmit:
		return r, r.submit()
	}
	return r, cmd
}

func (r *Records) submit() tea.Cmd {
	f := r.editor.Form()
	draft, err := f.Submit()
	if err != nil {
		return nil
	}

	svc, ctx, domainID := r.svc, r.ctx, r.domain.ID
	label := string(draft.Type) + " " + draft.Name
	if f.Mode() == form.ModeEdit {
		recordID, seed := f.Target(), f.Seed()
		return tea.Batch(r.spinner.Tick, func() tea.Msg {
			d, err := svc.UpdateRecord(ctx, domainID, recordID, draft.ToUpdate(seed))
			return recordResultMsg{verb: "Updated", label: label, domain: d, err: err}
		})
	}
	return tea.Batch(r.spinner.Tick, func() tea.Msg {
		d, err := svc.AddRecord(ctx, domainID, draft.ToOpts())
		return recordResultMsg{verb: "Added", label: label, domain: d, err: err}
	})
}

func (r *Records) handleConfirmKey(msg tea.KeyMsg) (browse.Screen, tea.Cmd) {
	if r.busy != "" {
		return r, nil
	}
	switch msg.String() {
	case "esc", "q", "n":
		r.view = recordsList
	case "left", "h", "right", "l", "tab":
		r.confirmIdx = 1 - r.confirmIdx
	case "enter":
		if r.confirmIdx == 1 {
			r.view = recordsList
			return r, nil
		}
		svc, ctx, domainID, rec := r.svc, r.ctx, r.domain.ID, r.pending
		r.busy = "Deleting " + rec.Label() + "..."
		return r, tea.Batch(r.spinner.Tick, func() tea.Msg {
			d, err := svc.DeleteRecord(ctx, domainID, rec.ID)
			return recordResultMsg{verb: "Deleted", label: rec.Label(), domain: d, err: err}
		})
	}
	return r, nil
}

// handleResult reloads the table from the returned parent domain and
// passes it up so the domains list is patched too.
func (r *Records) handleResult(msg recordResultMsg) (browse.Screen, tea.Cmd) {
	r.busy = ""
	if r.view == recordsForm {
		r.editor.Form().Done(msg.err)
	}
	if msg.err != nil {
		if r.view == recordsConfirm {
			r.view = recordsList
		}
		r.status, r.isError = shared.Message(msg.err), true
		return r, nil
	}

	r.domain = *msg.domain
	r.list.Load(r.domain.DNSRecords)
	r.clampCursor()
	r.view = recordsList
	r.status, r.isError = fmt.Sprintf("%s record %s.", msg.verb, msg.label), false

	d := r.domain
	return r, func() tea.Msg { return browse.ChangedMsg[domain.Domain]{Item: d} }
}

func (r *Records) clampCursor() {
	n := len(r.list.Visible())
	r.cursor = max(min(r.cursor, n-1), 0)
}

func (r *Records) View(width, height int) string {
	crumb := components.Breadcrumb("domains", r.domain.Name, "dns")
	header := components.Header(width, crumb, r.origin)
	footer := components.Footer(width, r.bindings())

	status := components.StatusBar(width, r.status, r.isError)
	if r.busy != "" {
		status = components.StatusBar(width, r.spinner.View()+" "+r.busy, false)
	}
	contentH := components.ContentHeight(height, header, status, footer)

	var content string
	switch r.view {
	case recordsForm:
		f := r.editor.Form()
		title := "New DNS record"
		if f.Mode() == form.ModeEdit {
			title = "Edit DNS record"
		}
		content = "\n" + r.editor.View(title+" for "+r.domain.Name, width)
	case recordsConfirm:
		content = r.renderConfirm(width, contentH)
	default:
		content = r.renderTable(width, contentH)
	}
	return components.Layout(height, header, content, status, footer)
}

func (r *Records) bindings() []components.KeyBinding {
	switch r.view {
	case recordsForm:
		return []components.KeyBinding{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case recordsConfirm:
		return []components.KeyBinding{
			{Key: "←/→", Desc: "choose"},
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	return []components.KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "c", Desc: "add"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "f", Desc: "type"},
		{Key: "esc", Desc: "back"},
	}
}

func (r *Records) renderFilterBar() string {
	parts := []string{"  Type: "}
	cur := r.list.Facet("type")
	for _, t := range r.list.Options("type") {
		if t == cur {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(t)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(t)))
		}
	}
	return strings.Join(parts, "")
}

func (r *Records) renderTable(width, height int) string {
	if r.list.Len() == 0 {
		return "\n  " + styles.MutedText.Render("No DNS records. Press c to add one.")
	}
	visible := r.list.Visible()
	if len(visible) == 0 {
		return r.renderFilterBar() + "\n\n  " + styles.MutedText.Render("No records match the current type.")
	}

	rows := make([][]string, len(visible))
	for i, rec := range visible {
		rows[i] = r.list.Row(rec)
	}
	tbl := components.NewTable(r.list.Headers(), rows)
	tbl.Cursor = r.cursor
	tbl.Offset = r.offset
	body, offset := tbl.View(width, height-2)
	r.offset = offset
	return r.renderFilterBar() + "\n\n" + body
}

func (r *Records) renderConfirm(width, height int) string {
	deleteBtn := styles.MutedText.Render("  Delete  ")
	cancelBtn := styles.MutedText.Render("  Cancel  ")
	if r.confirmIdx == 0 {
		deleteBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Red).Bold(true).Render("  Delete  ")
	} else {
		cancelBtn = styles.TableSelectedRow.Render("  Cancel  ")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.WarningText.Render("Delete DNS record?"),
		"",
		styles.Label.Render("Record ")+styles.Value.Render(r.pending.Label()),
		styles.Label.Render("Value  ")+styles.Value.Render(r.pending.Value),
		"",
		deleteBtn+"  "+cancelBtn,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.CardActive.Render(body))
}
