package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/api"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/search"
	"github.com/five82/tally/internal/state"
)

func newTestModel(t *testing.T, store *state.Store) (Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Store:     store,
		Prefs:     prefs.Prefs{Theme: "Slate"},
		PrefsPath: path,
		LogPath:   filepath.Join(t.TempDir(), "tally.log"),
		Logger:    logging.Discard(),
		Now:       func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local) },
	})
	t.Cleanup(m.Close)
	return m, path
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestModelScreensInTabOrder(t *testing.T) {
	m, _ := newTestModel(t, nil)

	want := []string{api.PathTransactions, api.PathAccounts, api.PathBuckets, api.PathTasks, api.PathCourses, api.PathContent}
	if len(m.screens) != len(want) {
		t.Fatalf("screens = %d, want %d", len(m.screens), len(want))
	}
	for i, name := range want {
		if m.screens[i].Name() != name {
			t.Errorf("screen %d = %q, want %q", i, m.screens[i].Name(), name)
		}
	}
}

func TestModelTabNavigation(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.active != 1 {
		t.Fatalf("active = %d after tab, want 1", m.active)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.active != len(m.screens)-1 {
		t.Fatalf("active = %d after wrapping back, want %d", m.active, len(m.screens)-1)
	}
	m, _ = update(t, m, runes("5"))
	if m.current().Name() != api.PathCourses {
		t.Fatalf("digit 5 selected %q", m.current().Name())
	}
	m, _ = update(t, m, runes("9"))
	if m.current().Name() != api.PathCourses {
		t.Fatal("out of range digit should be ignored")
	}
}

func TestModelPersistsColumnSelection(t *testing.T) {
	m, path := newTestModel(t, nil)

	m, _ = update(t, m, columnsMsg{screen: api.PathCourses, fields: []string{"title", "price"}})
	if got := m.prefs.ColumnsFor(api.PathCourses); strings.Join(got, ",") != "title,price" {
		t.Fatalf("model prefs = %v", got)
	}
	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if got := saved.ColumnsFor(api.PathCourses); strings.Join(got, ",") != "title,price" {
		t.Fatalf("saved columns = %v", got)
	}
}

func TestModelCyclesAndSavesTheme(t *testing.T) {
	m, path := newTestModel(t, nil)

	m, _ = update(t, m, runes("T"))
	want := NextTheme("Slate")
	if m.theme.Name != want {
		t.Fatalf("theme = %q, want %q", m.theme.Name, want)
	}
	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if saved.Theme != want {
		t.Fatalf("saved theme = %q, want %q", saved.Theme, want)
	}
}

func TestModelHelpModal(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	m, _ = update(t, m, runes("?"))
	if _, ok := m.modal.(*helpModal); !ok {
		t.Fatalf("modal = %T, want help", m.modal)
	}
	if !strings.Contains(m.View(), "Next page") {
		t.Fatal("help should list bindings")
	}
	m, _ = update(t, m, runes("x"))
	if m.modal != nil {
		t.Fatal("any key should close help")
	}
}

func TestModelNoticeExpires(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local)
	m, _ := newTestModel(t, nil)
	m.now = func() time.Time { return now }

	m, _ = update(t, m, noticeMsg{text: "Saved"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(m.View(), "Saved") {
		t.Fatal("notice should be shown")
	}

	now = now.Add(NoticeTTL)
	m, _ = update(t, m, tickMsg(now))
	if m.notice.text != "" {
		t.Fatal("notice should expire")
	}
}

func TestModelViewBeforeSize(t *testing.T) {
	m, _ := newTestModel(t, nil)
	if m.View() != "Loading..." {
		t.Fatalf("View = %q", m.View())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	for _, want := range []string{"tally", "Transactions", "Courses"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModelShowsStoreTotalsInTabs(t *testing.T) {
	store := &state.Store{}
	m, _ := newTestModel(t, store)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})

	page := search.PageRequest{PageNumber: 1, PageSize: 10}
	if err := store.Publish(m.ctx, api.PathTasks, "", page, []string{}, 42); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(m.View(), "Tasks (42)") {
		t.Fatal("tab should show the published total")
	}
}

func TestModelSubscribesWatchingScreens(t *testing.T) {
	store := &state.Store{}
	m, _ := newTestModel(t, store)

	watched := map[string]bool{}
	for _, sub := range m.subs {
		watched[sub.screen] = true
	}
	for _, name := range []string{api.PathTransactions, api.PathAccounts, api.PathBuckets} {
		if !watched[name] {
			t.Errorf("%s should watch another collection", name)
		}
	}
	if watched[api.PathCourses] {
		t.Error("courses watches nothing")
	}
}
