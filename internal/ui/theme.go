package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/domain"
)

// Theme is a named palette. Every color is a hex string.
type Theme struct {
	Name string

	Background    string
	Surface       string
	Selection     string
	SelectionText string
	Border        string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
	Violet  string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	tones      map[domain.Tone]string
	background string
	muted      string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   bar.Foreground(lipgloss.Color(t.Text)),
		Footer:   bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.Selection)),

		tones: map[domain.Tone]string{
			domain.ToneNeutral: t.Faint,
			domain.ToneInfo:    t.Info,
			domain.ToneSuccess: t.Success,
			domain.ToneWarning: t.Warning,
			domain.ToneDanger:  t.Danger,
			domain.ToneAccent:  t.Violet,
		},
		background: t.Background,
		muted:      t.Muted,
	}
}

// ToneColor returns the color for tone, or the muted color for an unknown
// tone.
func (s Styles) ToneColor(tone domain.Tone) string {
	if color := s.tones[tone]; color != "" {
		return color
	}
	return s.muted
}

// BadgeStyle returns a filled badge style for tone.
func (s Styles) BadgeStyle(tone domain.Tone) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.ToneColor(tone))).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles whose text styles all carry
// bgColor, so segments rendered side by side share one background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, style := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Footer, &out.Logo, &out.Selected,
	} {
		*style = style.Background(bg)
	}
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return slateTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24", Surface: "#192330",
		Selection: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d",
		Text:   "#cdcecf", Muted: "#738091", Faint: "#71839b",
		Accent: "#719cd6", Success: "#81b29a", Warning: "#dbc074",
		Danger: "#c94f6d", Info: "#63cdcf", Violet: "#9d79d6",
	}
}

// https://github.com/rebelot/kanagawa.nvim
func kanagawaTheme() Theme {
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28",
		Selection: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D",
		Text:   "#DCD7BA", Muted: "#C8C093", Faint: "#727169",
		Accent: "#7E9CD8", Success: "#98BB6C", Warning: "#E6C384",
		Danger: "#E46876", Info: "#7FB4CA", Violet: "#957FB8",
	}
}

// Tailwind slate and sky.
func slateTheme() Theme {
	return Theme{
		Name:       "Slate",
		Background: "#020617", Surface: "#0f172a",
		Selection: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155",
		Text:   "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b",
		Accent: "#38bdf8", Success: "#22c55e", Warning: "#f59e0b",
		Danger: "#ef4444", Info: "#06b6d4", Violet: "#a78bfa",
	}
}
