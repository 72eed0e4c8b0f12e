// Package browse is the interactive list/detail/form app shared by every
// inventory section. One Model drives one section inside a single
// alt-screen program.
package browse

import (
	"context"
	"fmt"
	"strconv"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/tui/components"
	"nathanbeddoewebdev/opsdeck/internal/tui/styles"
	"nathanbeddoewebdev/opsdeck/internal/viewprefs"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Service is the subset of *resource.Service the browser calls.
type Service[T domain.Entity, C resource.Input, U resource.Patch] interface {
	List(ctx context.Context, filter resource.Filter) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, opts C) (*T, error)
	Update(ctx context.Context, id string, opts U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Screen is a nested view pushed on top of the browser for one record,
// such as a domain's DNS records. It sends CloseScreenMsg to return.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
}

// Extra binds a key on the list and detail views to a nested Screen.
type Extra[T any] struct {
	Key  string
	Desc string
	Open func(item T) Screen
}

// CloseScreenMsg pops the nested screen.
type CloseScreenMsg struct{}

// ChangedMsg tells the browser a record was modified elsewhere, e.g. a
// domain returned by a DNS record mutation.
type ChangedMsg[T any] struct {
	Item T
}

// Config wires a Model.
type Config[T domain.Entity, C resource.Input, U resource.Patch, D any] struct {
	Area    area.Def[T, C, U, D]
	Service Service[T, C, U]

	// Prefs, when set, restores and saves the search and facet values.
	Prefs *viewprefs.Service

	// Origin is shown in the header.
	Origin string

	Extras []Extra[T]
}

type loadedMsg[T any] struct {
	items []T
	err   error
}

type fetchedMsg[T any] struct {
	ticket detail.Ticket
	item   *T
	err    error
}

type savedMsg[T any] struct {
	mode form.Mode
	item *T
	err  error
}

type deletedMsg struct {
	id   string
	name string
	err  error
}

type view int

const (
	viewList view = iota
	viewDetail
	viewForm
	viewConfirm
	viewScreen
)

// Model is the browser for one section.
type Model[T domain.Entity, C resource.Input, U resource.Patch, D any] struct {
	cfg Config[T, C, U, D]
	ctx context.Context

	list   *listing.List[T]
	loader *detail.Loader[T]
	editor Editor[D]

	view view
	back view

	cursor       int
	offset       int
	detailScroll int

	searching bool
	search    textinput.Model

	loading bool
	busy    string
	spinner spinner.Model
	pending T
	screen  Screen

	status  string
	isError bool

	width  int
	height int
}

// New returns a browser with saved filters restored.
func New[T domain.Entity, C resource.Input, U resource.Patch, D any](ctx context.Context, cfg Config[T, C, U, D]) Model[T, C, U, D] {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.PromptStyle = styles.AccentText

	m := Model[T, C, U, D]{
		cfg:     cfg,
		ctx:     ctx,
		list:    cfg.Area.NewList(),
		loader:  &detail.Loader[T]{},
		editor:  NewEditor(cfg.Area.NewForm()),
		search:  search,
		spinner: s,
		loading: true,
	}

	text, facets := cfg.Prefs.Recall(ctx, cfg.Area.Kind)
	m.list.Restore(text, facets)
	m.search.SetValue(m.list.Search())
	return m
}

// Run starts the browser in the alternate screen and blocks until the user
// quits.
func Run[T domain.Entity, C resource.Input, U resource.Patch, D any](ctx context.Context, cfg Config[T, C, U, D]) error {
	p := tea.NewProgram(New(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run %s browser: %w", cfg.Area.Kind, err)
	}
	return nil
}

func (m Model[T, C, U, D]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model[T, C, U, D]) loadCmd() tea.Cmd {
	svc, ctx := m.cfg.Service, m.ctx
	return func() tea.Msg {
		items, err := svc.List(ctx, nil)
		return loadedMsg[T]{items: items, err: err}
	}
}

func (m Model[T, C, U, D]) fetchCmd(t detail.Ticket) tea.Cmd {
	svc, ctx := m.cfg.Service, m.ctx
	return func() tea.Msg {
		item, err := svc.Get(ctx, t.ID)
		return fetchedMsg[T]{ticket: t, item: item, err: err}
	}
}

func (m Model[T, C, U, D]) rememberCmd() tea.Cmd {
	prefs, ctx, kind := m.cfg.Prefs, m.ctx, m.cfg.Area.Kind
	search, facets := m.list.Search(), m.list.Facets()
	return func() tea.Msg {
		prefs.Remember(ctx, kind, search, facets)
		return nil
	}
}

func (m Model[T, C, U, D]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.forward(msg)

	case loadedMsg[T]:
		m.loading = false
		if msg.err != nil {
			m.list.Fail(msg.err)
			m.setError(msg.err)
			return m, nil
		}
		m.list.Load(msg.items)
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Loaded %d %s.", len(msg.items), m.cfg.Area.Nouns.Plural))
		return m, nil

	case fetchedMsg[T]:
		m.loader.Resolve(msg.ticket, msg.item, msg.err)
		return m, nil

	case savedMsg[T]:
		return m.handleSaved(msg)

	case deletedMsg:
		return m.handleDeleted(msg)

	case ChangedMsg[T]:
		m.list.Replace(msg.Item)
		m.showItem(msg.Item)
		return m, nil

	case CloseScreenMsg:
		m.screen = nil
		m.view = m.back
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.view == viewScreen {
			return m.forwardBatch(msg, cmd)
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewList:
			return m.handleListKey(msg)
		case viewDetail:
			return m.handleDetailKey(msg)
		case viewForm:
			return m.handleFormKey(msg)
		case viewConfirm:
			return m.handleConfirmKey(msg)
		}
	}

	return m.forward(msg)
}

// forward hands a message to the nested screen, if one is open.
func (m Model[T, C, U, D]) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.forwardBatch(msg, nil)
}

func (m Model[T, C, U, D]) forwardBatch(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.view != viewScreen || m.screen == nil {
		return m, cmd
	}
	var sub tea.Cmd
	m.screen, sub = m.screen.Update(msg)
	return m, tea.Batch(cmd, sub)
}

func (m Model[T, C, U, D]) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, m.rememberCmd()
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.list.SetSearch("")
			m.clampCursor()
			return m, m.rememberCmd()
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.list.SetSearch(m.search.Value())
		m.clampCursor()
		return m, cmd
	}

	visible := m.list.Visible()
	key := msg.String()
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(visible)-1, 0)
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "x":
		m.list.ResetFilters()
		m.search.SetValue("")
		m.clampCursor()
		m.setStatus("Filters cleared.")
		return m, m.rememberCmd()
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	case "c":
		return m.openForm(form.ModeCreate, nil)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		if m.cycleFacet(n - 1) {
			m.clampCursor()
			return m, m.rememberCmd()
		}
	}

	m.offset = components.Scroll(m.cursor, m.offset, m.tableRows())

	if len(visible) == 0 {
		return m, nil
	}
	selected := visible[m.cursor]
	switch key {
	case "enter":
		return m.openDetail(selected.Key())
	case "e":
		return m.openForm(form.ModeEdit, &selected)
	case "d":
		return m.confirmDelete(selected)
	}
	return m.openExtra(key, selected)
}

func (m Model[T, C, U, D]) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.loader.Reset()
		m.view = viewList
		return m, nil
	case "up", "k":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
		return m, nil
	case "down", "j":
		m.detailScroll++
		return m, nil
	case "r":
		return m.openDetail(m.loader.ID())
	}

	item, ok := m.loader.Item()
	if !ok {
		return m, nil
	}
	switch key {
	case "e":
		return m.openForm(form.ModeEdit, &item)
	case "d":
		return m.confirmDelete(item)
	}
	return m.openExtra(key, item)
}

func (m Model[T, C, U, D]) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.editor.Update(msg)
	switch action {
	case EditorCancel:
		m.editor.Form().Cancel()
		m.view = m.back
		return m, nil
	case EditorSubmit:
		return m.submit()
	}
	return m, cmd
}

func (m Model[T, C, U, D]) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy != "" {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		id, name := m.pending.Key(), m.pending.Label()
		m.busy = fmt.Sprintf("Deleting %s %s...", m.cfg.Area.Nouns.Singular, name)
		svc, ctx := m.cfg.Service, m.ctx
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			return deletedMsg{id: id, name: name, err: svc.Delete(ctx, id)}
		})
	case "n", "N", "esc", "q":
		m.view = m.back
	}
	return m, nil
}

func (m *Model[T, C, U, D]) cycleFacet(i int) bool {
	defs := m.list.FacetDefs()
	if i < 0 || i >= len(defs) {
		return false
	}
	name := defs[i].Name
	opts := m.list.Options(name)
	cur := m.list.Facet(name)
	next := opts[0]
	for j, o := range opts {
		if o == cur {
			next = opts[(j+1)%len(opts)]
			break
		}
	}
	return m.list.SetFacet(name, next) == nil
}

func (m Model[T, C, U, D]) openDetail(id string) (tea.Model, tea.Cmd) {
	t := m.loader.Begin(id)
	m.back = viewList
	m.view = viewDetail
	m.detailScroll = 0
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(t))
}

func (m Model[T, C, U, D]) openForm(mode form.Mode, item *T) (tea.Model, tea.Cmd) {
	f := m.editor.Form()
	if mode == form.ModeEdit && item != nil {
		m.cfg.Area.OpenEdit(f, *item)
	} else {
		m.cfg.Area.OpenCreate(f)
	}
	m.back = m.view
	m.view = viewForm
	return m, m.editor.Reset()
}

func (m Model[T, C, U, D]) confirmDelete(item T) (tea.Model, tea.Cmd) {
	m.pending = item
	m.back = m.view
	m.view = viewConfirm
	return m, nil
}

func (m Model[T, C, U, D]) openExtra(key string, item T) (tea.Model, tea.Cmd) {
	for _, x := range m.cfg.Extras {
		if x.Key == key {
			m.screen = x.Open(item)
			m.back = m.view
			m.view = viewScreen
			return m, m.screen.Init()
		}
	}
	return m, nil
}

func (m Model[T, C, U, D]) submit() (tea.Model, tea.Cmd) {
	f := m.editor.Form()
	draft, err := f.Submit()
	if err != nil {
		return m, nil
	}

	svc, ctx, def := m.cfg.Service, m.ctx, m.cfg.Area
	mode, target, seed := f.Mode(), f.Target(), f.Seed()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		if mode == form.ModeEdit {
			item, err := svc.Update(ctx, target, def.ToUpdate(seed, draft))
			return savedMsg[T]{mode: mode, item: item, err: err}
		}
		item, err := svc.Create(ctx, def.ToCreate(draft))
		return savedMsg[T]{mode: mode, item: item, err: err}
	})
}

func (m Model[T, C, U, D]) handleSaved(msg savedMsg[T]) (tea.Model, tea.Cmd) {
	f := m.editor.Form()
	f.Done(msg.err)
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}

	item := *msg.item
	noun := m.cfg.Area.Nouns.Singular
	if msg.mode == form.ModeEdit {
		m.list.Replace(item)
		m.showItem(item)
		m.setStatus(fmt.Sprintf("Updated %s %s.", noun, item.Label()))
	} else {
		m.list.Add(item)
		m.setStatus(fmt.Sprintf("Created %s %s.", noun, item.Label()))
	}
	m.view = m.back
	return m, nil
}

func (m Model[T, C, U, D]) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.busy = ""
	if msg.err != nil {
		m.view = m.back
		m.setError(msg.err)
		return m, nil
	}

	m.list.Remove(msg.id)
	m.clampCursor()
	if m.loader.ID() == msg.id {
		m.loader.Reset()
	}
	m.view = viewList
	m.setStatus(fmt.Sprintf("Deleted %s %s.", m.cfg.Area.Nouns.Singular, msg.name))
	return m, nil
}

// showItem refreshes the detail view when it is showing item.
func (m *Model[T, C, U, D]) showItem(item T) {
	if m.loader.State() == detail.Idle || m.loader.ID() != item.Key() {
		return
	}
	t := m.loader.Begin(item.Key())
	m.loader.Resolve(t, &item, nil)
}

func (m *Model[T, C, U, D]) clampCursor() {
	n := len(m.list.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model[T, C, U, D]) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *Model[T, C, U, D]) setError(err error) {
	m.status = domain.Message(err)
	m.isError = true
}
