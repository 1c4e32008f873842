package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo and one tab per screen with the record
// count last published to the store.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	var totals map[string]int
	if m.store != nil {
		totals = m.store.Totals()
	}

	parts := []string{bg.Render("tally", styles.Logo)}
	for i, s := range m.screens {
		label := fmt.Sprintf("%d %s", i+1, s.Title())
		if compact {
			label = fmt.Sprintf("%d %s", i+1, truncate(s.Title(), 5))
		}
		if n, ok := totals[s.Name()]; ok {
			label += fmt.Sprintf(" (%d)", n)
		}
		if i == m.active {
			parts = append(parts, styles.Selected.Bold(true).Padding(0, 1).Render(label))
			continue
		}
		parts = append(parts, bg.Render(label, styles.MutedText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		MaxHeight(1).
		Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints of the active screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Sep(":")

	hints := m.keys.commandHints()
	if s := m.current(); s != nil && s.Searching() {
		hints = hints[:0]
		hints = append(hints, m.keys.Confirm, m.keys.Escape)
	}

	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		help := h.Help()
		segments = append(segments,
			bg.Render(help.Key, styles.AccentText)+colon+bg.Render(help.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderStatusBar shows the latest notice, or the loading spinner while the
// active screen waits for a page.
func (m Model) renderStatusBar(now time.Time) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	if s := m.current(); s != nil && s.Loading() {
		parts = append(parts, m.spinner.View()+bg.Space()+bg.Render("Loading "+strings.ToLower(s.Title()), styles.MutedText))
	}
	if n := m.notice; n.text != "" && now.Sub(n.at) < NoticeTTL {
		style := styles.SuccessText
		marker := "✓"
		if n.err {
			style = styles.DangerText
			marker = "!"
		}
		parts = append(parts, bg.Pair(marker, truncate(n.text, max(m.width-30, 20)), style.Bold(true), style))
	}
	if len(parts) == 0 && m.logPath != "" {
		parts = append(parts, bg.Pair("log", truncateMiddle(m.logPath, 50), styles.FaintText, styles.MutedText))
	}

	return bg.FillLine(styles.Footer.Render(bg.Join(parts, "  ")), m.width)
}
