package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/listing"
)

// confirmModal asks a yes/no question and runs onYes on confirmation.
type confirmModal struct {
	prompt string
	onYes  tea.Cmd
}

func newConfirmModal(prompt string, onYes tea.Cmd) *confirmModal {
	return &confirmModal{prompt: prompt, onYes: onYes}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Yes), key.Matches(km, keys.Confirm):
		return c, c.onYes, true
	case key.Matches(km, keys.No), key.Matches(km, keys.Escape):
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(c.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y") + styles.MutedText.Render(" delete   "))
	b.WriteString(styles.AccentText.Render("n/esc") + styles.MutedText.Render(" keep"))
	return placeModal(theme, width, height, 48, b.String())
}

// columnsModal toggles the visible columns of a screen. Every change is
// applied immediately through changed.
type columnsModal struct {
	title   string
	cols    *listing.Columns
	cursor  int
	changed func() tea.Cmd
}

func newColumnsModal(title string, cols *listing.Columns, changed func() tea.Cmd) *columnsModal {
	return &columnsModal{title: title, cols: cols, changed: changed}
}

func (c *columnsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	all := c.cols.All()
	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Confirm), key.Matches(km, keys.Columns):
		return c, nil, true
	case key.Matches(km, keys.Up), key.Matches(km, keys.PrevItem):
		c.cursor = (c.cursor - 1 + len(all)) % len(all)
	case key.Matches(km, keys.Down), key.Matches(km, keys.NextItem):
		c.cursor = (c.cursor + 1) % len(all)
	case key.Matches(km, keys.Toggle):
		if c.cols.Toggle(all[c.cursor].Field) {
			return c, c.changed(), false
		}
	case key.Matches(km, keys.Refresh):
		c.cols.Reset()
		return c, c.changed(), false
	}
	return c, nil, false
}

func (c *columnsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.title + " columns"))
	b.WriteString("\n\n")
	for i, col := range c.cols.All() {
		mark := "[ ]"
		if c.cols.IsSelected(col.Field) {
			mark = "[x]"
		}
		line := mark + " " + col.Header
		if i == c.cursor {
			b.WriteString(styles.Selected.Render(padRight(line, 30)))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space toggle · r reset · esc close"))
	return placeModal(theme, width, height, 40, b.String())
}
