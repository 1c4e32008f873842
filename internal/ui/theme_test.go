package ui

import (
	"testing"

	"github.com/five82/tally/internal/domain"
)

func TestGetThemeFallsBackToSlate(t *testing.T) {
	if got := GetTheme("Nope").Name; got != "Slate" {
		t.Fatalf("GetTheme(Nope) = %q, want Slate", got)
	}
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Errorf("GetTheme(%q) = %q", name, got)
		}
	}
}

func TestNextThemeCycles(t *testing.T) {
	names := ThemeNames()
	current := names[0]
	seen := map[string]bool{}
	for range names {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("cycle ended on %q, want %q", current, names[0])
	}
	if len(seen) != len(names) {
		t.Fatalf("visited %d themes, want %d", len(seen), len(names))
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q", got)
	}
}

func TestToneColors(t *testing.T) {
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		styles := theme.Styles()
		for _, tone := range []domain.Tone{domain.ToneInfo, domain.ToneSuccess, domain.ToneWarning, domain.ToneDanger, domain.ToneAccent} {
			if styles.ToneColor(tone) == "" {
				t.Errorf("%s: no color for %s", name, tone)
			}
		}
		if got := styles.ToneColor(domain.Tone("bogus")); got != theme.Muted {
			t.Errorf("%s: unknown tone = %q, want muted %q", name, got, theme.Muted)
		}
		bg := styles.WithBackground(theme.Surface)
		if bg.ToneColor(domain.ToneDanger) != styles.ToneColor(domain.ToneDanger) {
			t.Errorf("%s: WithBackground dropped tone colors", name)
		}
	}
}
