package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/listing"
	"github.com/five82/tally/internal/search"
	"github.com/five82/tally/internal/state"
)

// screen is one tab of the UI. Implementations are pointers owned by the
// root model and only touched on the event loop.
type screen interface {
	Name() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	HandleKey(msg tea.KeyMsg, keys keyMap) (tea.Cmd, Modal)
	View(theme Theme, width, height int) string
	Resize(width, height int)
	Restyle(theme Theme)
	Searching() bool
	Loading() bool
	Watches() []string
	Dispose()
}

// routed messages belong to the screen named by target.
type routed interface {
	target() string
}

type outcomeMsg[T any] struct {
	screen string
	out    listing.Outcome[T]
}

func (m outcomeMsg[T]) target() string { return m.screen }

type debounceMsg struct {
	screen string
	tag    uint64
}

func (m debounceMsg) target() string { return m.screen }

type savedMsg[T any] struct {
	screen   string
	item     T
	creating bool
	err      error
}

func (m savedMsg[T]) target() string { return m.screen }

type deletedMsg struct {
	screen string
	label  string
	err    error
}

func (m deletedMsg) target() string { return m.screen }

type storeEventMsg struct {
	screen string
	sub    int
	event  state.Event
}

func (m storeEventMsg) target() string { return m.screen }

// columnsMsg reports a new column selection to persist.
type columnsMsg struct {
	screen string
	fields []string
}

// noticeMsg sets the status bar notice.
type noticeMsg struct {
	text string
	err  bool
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyErr(err error) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: err.Error(), err: true} }
}

// filterPreset is one entry of the filter cycle of a screen.
type filterPreset[D any] struct {
	label  string
	filter D
}

// screenSpec is the static description of a list screen.
type screenSpec[T listing.Entity[T], D any] struct {
	name     string
	title    string
	noun     string
	columns  []listing.Column
	defaults int
	filters  []filterPreset[D]
	draft    func(now time.Time) T
	fields   func(env formEnv, draft T) []formField[T]
	// watch lists collections whose invalidation reloads this screen.
	watch []string
}

// screenDeps carries what every list screen shares.
type screenDeps struct {
	ctx      context.Context
	store    *state.Store
	log      logrus.FieldLogger
	pageSize int
	window   time.Duration
	now      func() time.Time
	columns  func(screen string) []string
}

// listScreen is the generic search/paginate/edit screen.
type listScreen[T listing.Entity[T], D any] struct {
	spec   screenSpec[T, D]
	ctx    context.Context
	env    formEnv
	log    logrus.FieldLogger
	ctrl   *listing.Controller[T, D]
	cols   *listing.Columns
	editor listing.Editor[T]
	gate   search.Gate
	window time.Duration

	filterIdx int
	searching bool
	saving    bool

	input  textinput.Model
	table  table.Model
	pager  paginator.Model
	width  int
	height int
}

func newListScreen[T listing.Entity[T], D any](spec screenSpec[T, D], svc listing.Service[T, D], deps screenDeps) *listScreen[T, D] {
	ctx := deps.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	log := deps.log
	if log == nil {
		log = logrus.StandardLogger()
	}
	now := deps.now
	if now == nil {
		now = time.Now
	}
	window := deps.window
	if window <= 0 {
		window = search.DefaultWindow
	}

	var pub listing.Publisher
	if deps.store != nil {
		pub = deps.store
	}
	ctrl := listing.NewController(svc, listing.Options{
		Name:      spec.name,
		PageSize:  deps.pageSize,
		Publisher: pub,
		Logger:    log,
		Context:   ctx,
	})

	cols := listing.NewColumns(spec.columns, spec.defaults)
	if deps.columns != nil {
		if saved := deps.columns(spec.name); len(saved) > 0 {
			cols.SetFields(saved)
		}
	}

	ti := textinput.New()
	ti.Placeholder = "Search " + strings.ToLower(spec.title) + "..."
	ti.Prompt = "/ "
	ti.CharLimit = 120

	km := table.DefaultKeyMap()
	km.LineUp = key.NewBinding(key.WithKeys("up", "k"))
	km.LineDown = key.NewBinding(key.WithKeys("down", "j"))
	for _, b := range []*key.Binding{&km.PageUp, &km.PageDown, &km.HalfPageUp, &km.HalfPageDown, &km.GotoTop, &km.GotoBottom} {
		b.SetEnabled(false)
	}

	pager := paginator.New()
	pager.Type = paginator.Dots

	s := &listScreen[T, D]{
		spec:   spec,
		ctx:    ctx,
		env:    formEnv{ctx: ctx, store: deps.store, now: now},
		log:    log.WithField("screen", spec.name),
		ctrl:   ctrl,
		cols:   cols,
		window: window,
		input:  ti,
		table: table.New(
			table.WithFocused(true),
			table.WithKeyMap(km),
		),
		pager: pager,
	}
	s.syncTable()
	return s
}

func (s *listScreen[T, D]) Name() string    { return s.spec.name }
func (s *listScreen[T, D]) Title() string   { return s.spec.title }
func (s *listScreen[T, D]) Searching() bool { return s.searching }
func (s *listScreen[T, D]) Loading() bool   { return s.ctrl.Loading() }
func (s *listScreen[T, D]) Watches() []string {
	return s.spec.watch
}

// Init loads the first page with the first filter preset.
func (s *listScreen[T, D]) Init() tea.Cmd {
	if len(s.spec.filters) > 0 {
		return s.fetch(s.ctrl.SetFilter(s.spec.filters[0].filter))
	}
	return s.fetch(s.ctrl.Refresh())
}

// Dispose drops pending debounce ticks and every in-flight response.
func (s *listScreen[T, D]) Dispose() {
	s.gate.Close()
	s.ctrl.Dispose()
}

func (s *listScreen[T, D]) fetch(req listing.Request[D]) tea.Cmd {
	s.syncTable()
	ctrl, name := s.ctrl, s.spec.name
	return func() tea.Msg {
		return outcomeMsg[T]{screen: name, out: ctrl.Fetch(req)}
	}
}

func (s *listScreen[T, D]) debounce(tag uint64) tea.Cmd {
	name := s.spec.name
	return tea.Tick(s.window, func(time.Time) tea.Msg {
		return debounceMsg{screen: name, tag: tag}
	})
}

// Update handles the messages routed to this screen.
func (s *listScreen[T, D]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outcomeMsg[T]:
		err := s.ctrl.Apply(msg.out)
		s.syncTable()
		if err != nil {
			return notifyErr(err)
		}
	case debounceMsg:
		if query, ok := s.gate.Fire(msg.tag); ok {
			return s.fetch(s.ctrl.Commit(query))
		}
	case savedMsg[T]:
		s.saving = false
		if !s.editor.Finish(msg.err) {
			s.log.WithError(msg.err).Warn("save failed")
			return notifyErr(msg.err)
		}
		verb := "Updated"
		if msg.creating {
			verb = "Created"
		}
		return tea.Batch(
			notify(fmt.Sprintf("%s %s %q", verb, s.spec.noun, msg.item.Label())),
			s.fetch(s.ctrl.Saved()),
		)
	case deletedMsg:
		if msg.err != nil {
			s.log.WithError(msg.err).Warn("delete failed")
			return notifyErr(msg.err)
		}
		return tea.Batch(
			notify(fmt.Sprintf("Deleted %s %q", s.spec.noun, msg.label)),
			s.fetch(s.ctrl.AfterDelete()),
		)
	case storeEventMsg:
		if msg.event.Invalidated {
			s.log.WithField("source", msg.event.Collection).Debug("reloading after invalidation")
			return s.fetch(s.ctrl.Refresh())
		}
	}
	return nil
}

// HandleKey handles a key press while no modal is open.
func (s *listScreen[T, D]) HandleKey(msg tea.KeyMsg, keys keyMap) (tea.Cmd, Modal) {
	if s.searching {
		return s.handleSearchKey(msg, keys), nil
	}

	page := s.ctrl.Page()
	switch {
	case key.Matches(msg, keys.Search):
		s.searching = true
		return s.input.Focus(), nil
	case key.Matches(msg, keys.Refresh):
		return s.fetch(s.ctrl.Refresh()), nil
	case key.Matches(msg, keys.NextPage):
		if page.PageNumber < s.ctrl.TotalPages() {
			return s.fetch(s.ctrl.SetPage(page.PageNumber + 1)), nil
		}
	case key.Matches(msg, keys.PrevPage):
		if page.PageNumber > 1 {
			return s.fetch(s.ctrl.SetPage(page.PageNumber - 1)), nil
		}
	case key.Matches(msg, keys.FirstPage):
		if page.PageNumber != 1 {
			return s.fetch(s.ctrl.SetPage(1)), nil
		}
	case key.Matches(msg, keys.LastPage):
		if last := s.ctrl.TotalPages(); page.PageNumber < last {
			return s.fetch(s.ctrl.SetPage(last)), nil
		}
	case key.Matches(msg, keys.Grow):
		if size := stepPageSize(page.PageSize, 1); size != page.PageSize {
			return s.fetch(s.ctrl.SetPageSize(size)), nil
		}
	case key.Matches(msg, keys.Shrink):
		if size := stepPageSize(page.PageSize, -1); size != page.PageSize {
			return s.fetch(s.ctrl.SetPageSize(size)), nil
		}
	case key.Matches(msg, keys.CycleFilter):
		if n := len(s.spec.filters); n > 1 {
			s.filterIdx = (s.filterIdx + 1) % n
			return s.fetch(s.ctrl.SetFilter(s.spec.filters[s.filterIdx].filter)), nil
		}
	case key.Matches(msg, keys.Sort):
		return s.fetch(s.ctrl.SetSort(s.nextSortColumn())), nil
	case key.Matches(msg, keys.SortFlip):
		column := s.ctrl.Order().Column
		if column == "" {
			column = s.cols.Selected()[0].Field
		}
		return s.fetch(s.ctrl.SetSort(column)), nil
	case key.Matches(msg, keys.Columns):
		return nil, newColumnsModal(s.spec.title, s.cols, s.columnsChanged)
	case key.Matches(msg, keys.New):
		s.editor.Create(s.spec.draft(s.env.now()))
		return nil, newFormModal(s)
	case key.Matches(msg, keys.Edit):
		if row, ok := s.selected(); ok {
			s.editor.Edit(row)
			return nil, newFormModal(s)
		}
	case key.Matches(msg, keys.Delete):
		if row, ok := s.selected(); ok {
			return nil, newConfirmModal(listing.DeletePrompt(row), s.deleteCmd(row))
		}
	default:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd, nil
	}
	return nil, nil
}

func (s *listScreen[T, D]) handleSearchKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Escape):
		s.searching = false
		s.input.Blur()
		return nil
	case key.Matches(msg, keys.Confirm):
		s.searching = false
		s.input.Blur()
		if query, ok := s.gate.Fire(s.gate.Input(s.input.Value())); ok {
			return s.fetch(s.ctrl.Commit(query))
		}
		return nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before {
		return tea.Batch(cmd, s.debounce(s.gate.Input(after)))
	}
	return cmd
}

func (s *listScreen[T, D]) nextSortColumn() string {
	selected := s.cols.Selected()
	current := s.ctrl.Order().Column
	for i, col := range selected {
		if col.Field == current {
			return selected[(i+1)%len(selected)].Field
		}
	}
	return selected[0].Field
}

func (s *listScreen[T, D]) columnsChanged() tea.Cmd {
	s.syncTable()
	msg := columnsMsg{screen: s.spec.name, fields: s.cols.Fields()}
	return func() tea.Msg { return msg }
}

func (s *listScreen[T, D]) deleteCmd(row T) tea.Cmd {
	svc, ctx, name, label := s.ctrl.Service(), s.ctx, s.spec.name, row.Label()
	return func() tea.Msg {
		return deletedMsg{screen: name, label: label, err: listing.Remove(ctx, svc, row)}
	}
}

func (s *listScreen[T, D]) saveCmd(item T) tea.Cmd {
	s.saving = true
	svc, ctx, name := s.ctrl.Service(), s.ctx, s.spec.name
	creating := item.Key() == ""
	return func() tea.Msg {
		saved, err := listing.Save(ctx, svc, item)
		return savedMsg[T]{screen: name, item: saved, creating: creating, err: err}
	}
}

// selected returns the row under the cursor once a page is loaded.
func (s *listScreen[T, D]) selected() (T, bool) {
	var zero T
	if s.ctrl.Loading() {
		return zero, false
	}
	rows := s.ctrl.Rows()
	idx := s.table.Cursor()
	if idx < 0 || idx >= len(rows) {
		return zero, false
	}
	return rows[idx], true
}

func stepPageSize(current, dir int) int {
	for i, size := range pageSizes {
		if size == current {
			next := i + dir
			if next < 0 || next >= len(pageSizes) {
				return current
			}
			return pageSizes[next]
		}
	}
	if dir > 0 {
		for _, size := range pageSizes {
			if size > current {
				return size
			}
		}
		return current
	}
	for i := len(pageSizes) - 1; i >= 0; i-- {
		if pageSizes[i] < current {
			return pageSizes[i]
		}
	}
	return current
}

// Resize sets the area available to the screen below the header.
func (s *listScreen[T, D]) Resize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = max(width-lipgloss.Width(s.input.Prompt)-2, 10)
	s.syncTable()
}

// Restyle applies theme colors to the table and page indicator.
func (s *listScreen[T, D]) Restyle(theme Theme) {
	styles := theme.Styles()

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))
	ts.Cell = ts.Cell.Foreground(lipgloss.Color(theme.Text))
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.Selection)).
		Bold(false)
	s.table.SetStyles(ts)

	s.pager.ActiveDot = styles.AccentText.Render("•")
	s.pager.InactiveDot = styles.FaintText.Render("•")
	s.input.PromptStyle = styles.AccentText
	s.input.TextStyle = styles.Text
	s.input.PlaceholderStyle = styles.FaintText
}

// syncTable rebuilds the table from the controller: skeleton rows while a
// request is pending, the loaded page otherwise.
func (s *listScreen[T, D]) syncTable() {
	selected := s.cols.Selected()
	widths := fitWidths(selected, s.width)
	columns := make([]table.Column, len(selected))
	for i, col := range selected {
		columns[i] = table.Column{Title: col.Header, Width: widths[i]}
	}

	var rows []table.Row
	if s.ctrl.Loading() {
		rows = skeletonRows(s.ctrl.Skeleton(), widths)
	} else {
		for _, item := range s.ctrl.Rows() {
			cells := make(table.Row, len(selected))
			for i, col := range selected {
				cells[i] = listing.Render(item, col).Text
			}
			rows = append(rows, cells)
		}
	}

	s.table.SetRows(nil)
	s.table.SetColumns(columns)
	s.table.SetRows(rows)
	if s.table.Cursor() >= len(rows) {
		s.table.SetCursor(max(len(rows)-1, 0))
	}
	if s.width > 0 {
		s.table.SetWidth(s.width)
	}
	if s.height > 0 {
		s.table.SetHeight(max(s.height-screenChromeRows, 3))
	}

	s.pager.PerPage = s.ctrl.Page().PageSize
	s.pager.TotalPages = max(s.ctrl.TotalPages(), 1)
	s.pager.Page = min(s.ctrl.Page().PageNumber, s.pager.TotalPages) - 1
	if s.pager.TotalPages > 10 {
		s.pager.Type = paginator.Arabic
	} else {
		s.pager.Type = paginator.Dots
	}
}

// fitWidths shrinks the declared column widths to fit width. Each cell
// carries one space of padding on both sides.
func fitWidths(cols []listing.Column, width int) []int {
	widths := make([]int, len(cols))
	total := 0
	for i, col := range cols {
		widths[i] = max(col.Width, LayoutMinColumnWidth)
		total += widths[i]
	}
	avail := width - 2*len(cols)
	if width <= 0 || total <= avail {
		return widths
	}
	for i := range widths {
		widths[i] = max(widths[i]*avail/total, LayoutMinColumnWidth)
	}
	return widths
}

func skeletonRows(n int, widths []int) []table.Row {
	rows := make([]table.Row, n)
	for r := range rows {
		cells := make(table.Row, len(widths))
		for i, w := range widths {
			// Vary the bar length so the placeholder reads as rows of text.
			cells[i] = strings.Repeat("░", max(w-2-(r+i)%3, 1))
		}
		rows[r] = cells
	}
	return rows
}

// View renders the search line, table, detail strip and page indicator.
func (s *listScreen[T, D]) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	lines := []string{
		s.renderSearchLine(styles, width),
		s.table.View(),
		s.renderDetail(styles, width),
		s.renderPager(styles, width),
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(strings.Join(lines, "\n"))
}

func (s *listScreen[T, D]) renderSearchLine(styles Styles, width int) string {
	var parts []string
	switch {
	case s.searching:
		parts = append(parts, s.input.View())
	case s.ctrl.Query() != "":
		parts = append(parts, styles.AccentText.Render("/ "+truncate(s.ctrl.Query(), 40)))
	default:
		parts = append(parts, styles.FaintText.Render("/ to search"))
	}
	if n := len(s.spec.filters); n > 0 {
		parts = append(parts, styles.MutedText.Render("filter:")+" "+styles.Text.Render(s.spec.filters[s.filterIdx].label))
	}
	if order := s.ctrl.Order(); !order.IsZero() {
		arrow := "↑"
		if order.Direction == search.Desc {
			arrow = "↓"
		}
		parts = append(parts, styles.MutedText.Render("sort:")+" "+styles.Text.Render(s.headerFor(order.Column)+" "+arrow))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "   "))
}

func (s *listScreen[T, D]) headerFor(field string) string {
	for _, col := range s.cols.All() {
		if col.Field == field {
			return col.Header
		}
	}
	return field
}

// renderDetail shows the load error, the empty state, or the selected row
// with its badges in their tone colors.
func (s *listScreen[T, D]) renderDetail(styles Styles, width int) string {
	switch s.ctrl.Phase() {
	case listing.PhaseError:
		msg := "Could not load " + strings.ToLower(s.spec.title)
		if err := s.ctrl.Err(); err != nil {
			msg += ": " + err.Error()
		}
		return styles.DangerText.Render(truncate(msg, width-18)) + styles.FaintText.Render("  r to retry")
	case listing.PhaseLoading, listing.PhaseIdle:
		return ""
	}
	if s.ctrl.Total() == 0 {
		return styles.MutedText.Render("No " + strings.ToLower(s.spec.title) + " found")
	}
	row, ok := s.selected()
	if !ok {
		return ""
	}
	parts := []string{styles.Text.Bold(true).Render(truncate(row.Label(), 40))}
	for _, col := range s.cols.All() {
		if col.Pipe != listing.PipeType && col.Pipe != listing.PipeCategory {
			continue
		}
		cell := listing.Render(row, col)
		if cell.Text == "" {
			continue
		}
		parts = append(parts, styles.BadgeStyle(cell.Tone).Render(cell.Text))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}

func (s *listScreen[T, D]) renderPager(styles Styles, width int) string {
	page := s.ctrl.Page()
	summary := fmt.Sprintf("Page %d of %d · %d records · %d per page",
		page.PageNumber, max(s.ctrl.TotalPages(), 1), s.ctrl.Total(), page.PageSize)
	return lipgloss.NewStyle().MaxWidth(width).Render(
		s.pager.View() + "  " + styles.MutedText.Render(summary))
}
