package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/logtail"
)

// logLevels is the severity cycle of the log overlay, most verbose last.
var logLevels = []logrus.Level{logrus.InfoLevel, logrus.WarnLevel, logrus.DebugLevel}

type logLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

func loadLogCmd(path string, min logrus.Level) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, LogTailLines, min)
		return logLoadedMsg{entries: entries, err: err}
	}
}

// logModal shows the tail of the client log file.
type logModal struct {
	path     string
	theme    Theme
	level    int
	entries  []logtail.Entry
	err      error
	loaded   bool
	viewport viewport.Model
}

func newLogModal(path string, theme Theme, width, height int) (*logModal, tea.Cmd) {
	m := &logModal{path: path, theme: theme}
	m.viewport = viewport.New(max(width-10, 20), max(height-8, 5))
	return m, loadLogCmd(path, logLevels[0])
}

func (m *logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case logLoadedMsg:
		m.entries, m.err, m.loaded = msg.entries, msg.err, true
		m.viewport.SetContent(m.render())
		m.viewport.GotoBottom()
		return m, nil, false
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-10, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil, false
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Logs):
			return m, nil, true
		case key.Matches(msg, keys.Refresh):
			return m, loadLogCmd(m.path, logLevels[m.level]), false
		case key.Matches(msg, keys.CycleFilter):
			m.level = (m.level + 1) % len(logLevels)
			return m, loadLogCmd(m.path, logLevels[m.level]), false
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd, false
}

func (m *logModal) render() string {
	styles := m.theme.Styles()
	if m.err != nil {
		return styles.DangerText.Render("Could not read log: " + m.err.Error())
	}
	if len(m.entries) == 0 {
		return styles.MutedText.Render("No log entries at this level")
	}
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, formatLogEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

// formatLogEntry renders "15:04:05 LEVEL message key=value ...".
func formatLogEntry(e logtail.Entry, styles Styles) string {
	if !e.Parsed {
		return styles.FaintText.Render(e.Raw)
	}
	ts := e.Time
	if t, err := time.Parse(time.RFC3339, e.Time); err == nil {
		ts = t.In(time.Local).Format("15:04:05")
	}
	level := strings.ToUpper(e.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}
	levelStyle := styles.InfoText
	switch {
	case e.Level <= logrus.ErrorLevel:
		levelStyle = styles.DangerText
	case e.Level == logrus.WarnLevel:
		levelStyle = styles.WarningText
	case e.Level >= logrus.DebugLevel:
		levelStyle = styles.FaintText
	}
	parts := []string{styles.MutedText.Render(ts), levelStyle.Render(padRight(level, 4)), styles.Text.Render(e.Msg)}
	for _, f := range e.Fields {
		parts = append(parts, styles.FaintText.Render(f.Key+"=")+styles.MutedText.Render(f.Value))
	}
	return strings.Join(parts, " ")
}

func (m *logModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := styles.Text.Bold(true).Render("Client log") + "  " +
		styles.FaintText.Render(truncateMiddle(m.path, 48))
	status := fmt.Sprintf("%d lines · level %s and above · f level · r reload · esc close",
		len(m.entries), logLevels[m.level])
	body := m.viewport.View()
	if !m.loaded {
		body = styles.MutedText.Render("Loading...")
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", styles.FaintText.Render(status))
	return placeModal(theme, width, height, max(width-4, 40), content)
}
