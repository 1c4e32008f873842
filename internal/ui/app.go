package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/api"
	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Resources api.Resources
	Store     *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

type notice struct {
	text string
	err  bool
	at   time.Time
}

// subscription feeds store events for collection to a screen.
type subscription struct {
	screen string
	events <-chan state.Event
	cancel func()
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	log       logrus.FieldLogger
	prefs     prefs.Prefs
	prefsPath string
	logPath   string
	now       func() time.Time

	// UI state
	theme   Theme
	keys    keyMap
	screens []screen
	active  int
	modal   Modal
	spinner spinner.Model
	notice  notice
	width   int
	height  int
	ready   bool

	subs []subscription
}

// New creates a new Bubble Tea model with one screen per collection.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		log:       log,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		now:       now,
		theme:     GetTheme(opts.Prefs.Theme),
		keys:      DefaultKeyMap(),
		spinner:   sp,
	}

	deps := screenDeps{
		ctx:      ctx,
		store:    opts.Store,
		log:      log,
		pageSize: opts.Config.PageSize,
		window:   opts.Config.Debounce,
		now:      now,
		columns:  opts.Prefs.ColumnsFor,
	}
	m.setScreens(buildScreens(opts.Resources, deps))
	return m
}

// setScreens installs screens and subscribes each one to the collections
// it watches.
func (m *Model) setScreens(screens []screen) {
	m.screens = screens
	for _, s := range screens {
		s.Restyle(m.theme)
		if m.store == nil {
			continue
		}
		for _, collection := range s.Watches() {
			events, cancel := m.store.Subscribe(collection)
			m.subs = append(m.subs, subscription{screen: s.Name(), events: events, cancel: cancel})
		}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, tickCmd(DefaultUIInterval)}
	for _, s := range m.screens {
		cmds = append(cmds, s.Init())
	}
	for i := range m.subs {
		cmds = append(cmds, waitEventCmd(m.subs[i], i))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		for _, s := range m.screens {
			s.Resize(m.width, max(m.height-frameRows, 1))
		}
		return m.updateModal(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.notice.text != "" && m.now().Sub(m.notice.at) >= NoticeTTL {
			m.notice = notice{}
		}
		return m, tickCmd(DefaultUIInterval)

	case noticeMsg:
		m.notice = notice{text: msg.text, err: msg.err, at: m.now()}
		return m, nil

	case columnsMsg:
		m.prefs = m.prefs.WithColumns(msg.screen, msg.fields)
		m.savePrefs()
		return m, nil

	case storeEventMsg:
		cmds := []tea.Cmd{waitEventCmd(m.subs[msg.sub], msg.sub)}
		if s := m.screenByName(msg.screen); s != nil {
			cmds = append(cmds, s.Update(msg))
		}
		return m, tea.Batch(cmds...)

	case routed:
		var cmd tea.Cmd
		if s := m.screenByName(msg.target()); s != nil {
			cmd = s.Update(msg)
		}
		if c, ok := m.modal.(settled); ok && c.Settled() {
			m.modal = nil
		}
		return m, cmd
	}

	return m.updateModal(msg)
}

// updateModal forwards msg to the open modal, if any.
func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal == nil {
		return m, nil
	}
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input. An open modal or an active search box
// receives every key except ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	s := m.current()
	if s == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	if s.Searching() {
		cmd, _ := s.HandleKey(msg, m.keys)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.modal = newHelpModal(m.keys)
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		for _, sc := range m.screens {
			sc.Restyle(m.theme)
		}
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.active = (m.active + 1) % len(m.screens)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.active = (m.active - 1 + len(m.screens)) % len(m.screens)
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		modal, cmd := newLogModal(m.logPath, m.theme, m.width, m.height)
		m.modal = modal
		return m, cmd
	}

	if i, ok := screenIndex(msg.String(), len(m.screens)); ok {
		m.active = i
		return m, nil
	}

	cmd, modal := s.HandleKey(msg, m.keys)
	if modal != nil {
		m.modal = modal
	}
	return m, cmd
}

func (m Model) current() screen {
	if m.active < 0 || m.active >= len(m.screens) {
		return nil
	}
	return m.screens[m.active]
}

func (m Model) screenByName(name string) screen {
	for _, s := range m.screens {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("save preferences")
	}
}

// renderMain renders header, command bar, active screen and status bar.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	if s := m.current(); s != nil {
		b.WriteString(s.View(m.theme, m.width, max(m.height-frameRows, 1)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(m.now()))
	return b.String()
}

// Close disposes every screen and drops the store subscriptions.
func (m Model) Close() {
	for _, s := range m.screens {
		s.Dispose()
	}
	for _, sub := range m.subs {
		sub.cancel()
	}
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitEventCmd(sub subscription, index int) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub.events
		if !ok {
			return nil
		}
		return storeEventMsg{screen: sub.screen, sub: index, event: ev}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	popts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		popts = append(popts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
