package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/domain"
	"github.com/five82/tally/internal/listing"
	"github.com/five82/tally/internal/search"
	"github.com/five82/tally/internal/state"
)

func TestListScreenLoadsFirstPage(t *testing.T) {
	s, svc := loadedCourseScreen(t, 12)

	if got := len(s.ctrl.Rows()); got != 5 {
		t.Fatalf("rows = %d, want 5", got)
	}
	if got := len(s.table.Rows()); got != 5 {
		t.Fatalf("table rows = %d, want 5", got)
	}
	if s.pager.TotalPages != 3 {
		t.Fatalf("pager pages = %d, want 3", s.pager.TotalPages)
	}
	if f := svc.lastSearch(); f.Pagination.PageNumber != 1 || f.Pagination.PageSize != 5 {
		t.Fatalf("unexpected first request %+v", f.Pagination)
	}
	view := s.View(GetTheme("Slate"), 120, 30)
	if !strings.Contains(view, "Page 1 of 3") || !strings.Contains(view, "12 records") {
		t.Fatalf("pager summary missing from view:\n%s", view)
	}
	if !strings.Contains(view, "Course 1") {
		t.Fatalf("first row missing from view:\n%s", view)
	}
}

func TestListScreenShowsSkeletonRowsWhileLoading(t *testing.T) {
	s := newCourseScreen(t, newCourseService(3), nil)

	_ = s.Init()
	if !s.Loading() {
		t.Fatal("screen should be loading before the response arrives")
	}
	rows := s.table.Rows()
	if len(rows) != 5 {
		t.Fatalf("skeleton rows = %d, want page size 5", len(rows))
	}
	if !strings.Contains(rows[0][0], "░") {
		t.Fatalf("expected placeholder cells, got %q", rows[0][0])
	}
}

func TestListScreenDebouncesSearchInput(t *testing.T) {
	s, svc := loadedCourseScreen(t, 12)
	settle(t, s, s.fetch(s.ctrl.SetPage(2)))
	before := svc.searchCount()

	keys := DefaultKeyMap()
	_, _ = s.HandleKey(runes("/"), keys)
	if !s.Searching() {
		t.Fatal("slash should open the search box")
	}
	_, _ = s.HandleKey(runes("a"), keys)
	_, _ = s.HandleKey(runes("b"), keys)

	if cmd := s.Update(debounceMsg{screen: s.Name(), tag: 1}); cmd != nil {
		t.Fatal("superseded tick must not commit")
	}
	if svc.searchCount() != before {
		t.Fatal("no request expected before the last tick")
	}

	settle(t, s, s.Update(debounceMsg{screen: s.Name(), tag: 2}))
	if svc.searchCount() != before+1 {
		t.Fatalf("searches = %d, want %d", svc.searchCount(), before+1)
	}
	f := svc.lastSearch()
	if f.Query() != "ab" {
		t.Fatalf("query = %q, want ab", f.Query())
	}
	if f.Pagination.PageNumber != 1 {
		t.Fatalf("commit should reset to page 1, got %d", f.Pagination.PageNumber)
	}

	// The same value again is not a new commit.
	if cmd := s.Update(debounceMsg{screen: s.Name(), tag: 2}); cmd != nil {
		t.Fatal("repeated tick must not commit twice")
	}
}

func TestListScreenEnterCommitsImmediately(t *testing.T) {
	s, svc := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()

	_, _ = s.HandleKey(runes("/"), keys)
	_, _ = s.HandleKey(runes("go"), keys)
	cmd, _ := s.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if s.Searching() {
		t.Fatal("enter should close the search box")
	}
	settle(t, s, cmd)
	if got := svc.lastSearch().Query(); got != "go" {
		t.Fatalf("query = %q, want go", got)
	}

	// The pending tick from typing is stale now.
	if cmd := s.Update(debounceMsg{screen: s.Name(), tag: 1}); cmd != nil {
		t.Fatal("tick after enter must not commit again")
	}
}

func TestListScreenClosedGateIgnoresTicks(t *testing.T) {
	s, _ := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()
	_, _ = s.HandleKey(runes("/"), keys)
	_, _ = s.HandleKey(runes("z"), keys)

	s.Dispose()
	if cmd := s.Update(debounceMsg{screen: s.Name(), tag: 1}); cmd != nil {
		t.Fatal("disposed screen must not commit")
	}
}

func TestListScreenPaging(t *testing.T) {
	s, svc := loadedCourseScreen(t, 12)
	keys := DefaultKeyMap()

	cmd, _ := s.HandleKey(runes("]"), keys)
	settle(t, s, cmd)
	if got := svc.lastSearch().Pagination.PageNumber; got != 2 {
		t.Fatalf("page = %d, want 2", got)
	}

	cmd, _ = s.HandleKey(runes("G"), keys)
	settle(t, s, cmd)
	if got := s.ctrl.Page().PageNumber; got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}
	if got := len(s.ctrl.Rows()); got != 2 {
		t.Fatalf("rows on last page = %d, want 2", got)
	}

	before := svc.searchCount()
	if cmd, _ := s.HandleKey(runes("]"), keys); cmd != nil {
		t.Fatal("next page past the end should not fetch")
	}
	if svc.searchCount() != before {
		t.Fatal("unexpected request")
	}
}

func TestListScreenPageSizeKeepsFirstRow(t *testing.T) {
	s, svc := loadedCourseScreen(t, 30)
	keys := DefaultKeyMap()

	cmd, _ := s.HandleKey(runes("]"), keys)
	settle(t, s, cmd)
	cmd, _ = s.HandleKey(runes("]"), keys)
	settle(t, s, cmd) // page 3, first row 10

	cmd, _ = s.HandleKey(runes("+"), keys)
	settle(t, s, cmd)
	p := svc.lastSearch().Pagination
	if p.PageSize != 10 || p.PageNumber != 2 {
		t.Fatalf("page = %+v, want page 2 of size 10", p)
	}
}

func TestListScreenSortCyclesSelectedColumns(t *testing.T) {
	s, svc := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()

	cmd, _ := s.HandleKey(runes("s"), keys)
	settle(t, s, cmd)
	order := svc.lastSearch().Order
	if order == nil || order.Column != "title" || order.Direction != search.Asc {
		t.Fatalf("order = %+v, want title asc", order)
	}

	cmd, _ = s.HandleKey(runes("S"), keys)
	settle(t, s, cmd)
	order = svc.lastSearch().Order
	if order == nil || order.Column != "title" || order.Direction != search.Desc {
		t.Fatalf("order = %+v, want title desc", order)
	}
}

func TestListScreenCyclesFilterPresets(t *testing.T) {
	s, svc := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()

	if f := svc.lastSearch(); f.Filter != nil {
		t.Fatalf("first preset should send no filter, got %+v", f.Filter)
	}
	cmd, _ := s.HandleKey(runes("f"), keys)
	settle(t, s, cmd)
	f := svc.lastSearch()
	if f.Filter == nil || !f.Filter.PublishedOnly {
		t.Fatalf("filter = %+v, want published only", f.Filter)
	}
	if !strings.Contains(s.View(GetTheme("Slate"), 120, 30), "Published") {
		t.Fatal("active filter label should be shown")
	}
}

func TestListScreenEmptyState(t *testing.T) {
	s, _ := loadedCourseScreen(t, 0)
	view := s.View(GetTheme("Slate"), 120, 30)
	if !strings.Contains(view, "No courses found") {
		t.Fatalf("expected empty state, got:\n%s", view)
	}
}

func TestListScreenReloadsOnInvalidation(t *testing.T) {
	s, svc := loadedCourseScreen(t, 3)
	before := svc.searchCount()

	if cmd := s.Update(storeEventMsg{screen: s.Name(), event: state.Event{Collection: "transactions"}}); cmd != nil {
		t.Fatal("a plain publish should not reload")
	}
	settle(t, s, s.Update(storeEventMsg{screen: s.Name(), event: state.Event{Collection: "transactions", Invalidated: true}}))
	if svc.searchCount() != before+1 {
		t.Fatalf("searches = %d, want %d", svc.searchCount(), before+1)
	}
}

func TestFormRejectsInvalidDraftWithoutRequest(t *testing.T) {
	s, svc := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()
	before := svc.searchCount()

	_, modal := s.HandleKey(runes("n"), keys)
	form, ok := modal.(*formModal[domain.Course, domain.CourseFilter])
	if !ok {
		t.Fatalf("expected form modal, got %T", modal)
	}

	_, cmd, closed := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, keys)
	if cmd != nil || closed {
		t.Fatal("invalid draft must not be submitted")
	}
	if len(svc.created) != 0 || svc.searchCount() != before {
		t.Fatal("no request expected for an invalid draft")
	}
	if !s.editor.IsOpen() {
		t.Fatal("dialog should stay open")
	}
	view := form.View(GetTheme("Slate"), 120, 40)
	if !strings.Contains(view, "is required") {
		t.Fatalf("expected field error in view:\n%s", view)
	}
}

func TestFormReportsParseErrors(t *testing.T) {
	s, _ := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()
	_, modal := s.HandleKey(runes("n"), keys)
	form := modal.(*formModal[domain.Course, domain.CourseFilter])

	_, _, _ = form.Update(runes("Go"), keys)
	for range 3 {
		_, _, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab}, keys)
	}
	if form.fields[form.focus].key != "price" {
		t.Fatalf("focus on %q, want price", form.fields[form.focus].key)
	}
	_, _, _ = form.Update(runes("lots"), keys)
	if _, cmd, _ := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, keys); cmd != nil {
		t.Fatal("unparseable price must not be submitted")
	}
	if !strings.Contains(form.View(GetTheme("Slate"), 120, 40), "field(s) need attention") {
		t.Fatal("expected error summary")
	}
}

func TestFormCreatesAndReloads(t *testing.T) {
	s, svc := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()

	_, modal := s.HandleKey(runes("n"), keys)
	form := modal.(*formModal[domain.Course, domain.CourseFilter])
	_, _, _ = form.Update(runes("Go basics"), keys)
	_, _, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab}, keys)
	_, _, _ = form.Update(runes("Grace"), keys)

	_, cmd, _ := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS}, keys)
	if cmd == nil {
		t.Fatalf("expected save command, editor error: %v", s.editor.Err())
	}
	if !s.saving {
		t.Fatal("screen should be saving")
	}
	other := settle(t, s, cmd)

	if len(svc.created) != 1 || svc.created[0].Title != "Go basics" || svc.created[0].Instructor != "Grace" {
		t.Fatalf("created = %+v", svc.created)
	}
	if !form.Settled() {
		t.Fatal("form should settle after a successful save")
	}
	if s.ctrl.Total() != 4 {
		t.Fatalf("total = %d, want 4 after reload", s.ctrl.Total())
	}
	var notice string
	for _, msg := range other {
		if n, ok := msg.(noticeMsg); ok {
			notice = n.text
		}
	}
	if notice != `Created course "Go basics"` {
		t.Fatalf("notice = %q", notice)
	}
}

func TestFormEditsSelectedRow(t *testing.T) {
	s, _ := loadedCourseScreen(t, 3)
	keys := DefaultKeyMap()

	_, _ = s.HandleKey(tea.KeyMsg{Type: tea.KeyDown}, keys)
	_, modal := s.HandleKey(runes("e"), keys)
	if modal == nil {
		t.Fatal("expected edit form")
	}
	if s.editor.Creating() {
		t.Fatal("edit should not be a create")
	}
	if got := s.editor.Draft().ID; got != "c02" {
		t.Fatalf("editing %q, want c02", got)
	}

	// Edits go to a copy until saved.
	s.editor.Draft().Title = "changed"
	if s.ctrl.Rows()[1].Title != "Course 2" {
		t.Fatal("draft must not alias the displayed row")
	}
}

func TestDeleteConfirmClampsPage(t *testing.T) {
	s, svc := loadedCourseScreen(t, 11)
	keys := DefaultKeyMap()

	cmd, _ := s.HandleKey(runes("G"), keys)
	settle(t, s, cmd)
	if s.ctrl.Page().PageNumber != 3 || len(s.ctrl.Rows()) != 1 {
		t.Fatalf("expected one row on page 3, got page %d with %d rows", s.ctrl.Page().PageNumber, len(s.ctrl.Rows()))
	}

	_, modal := s.HandleKey(runes("d"), keys)
	confirm, ok := modal.(*confirmModal)
	if !ok {
		t.Fatalf("expected confirm modal, got %T", modal)
	}
	if confirm.prompt != "Delete Course 11?" {
		t.Fatalf("prompt = %q", confirm.prompt)
	}

	_, onYes, closed := confirm.Update(runes("y"), keys)
	if !closed || onYes == nil {
		t.Fatal("y should confirm and close")
	}
	settle(t, s, onYes)

	if len(svc.deleted) != 1 || svc.deleted[0] != "c11" {
		t.Fatalf("deleted = %v", svc.deleted)
	}
	if got := s.ctrl.Page().PageNumber; got != 2 {
		t.Fatalf("page = %d, want 2 after deleting the last row", got)
	}
	if s.ctrl.Total() != 10 {
		t.Fatalf("total = %d, want 10", s.ctrl.Total())
	}
}

func TestDeleteCancelKeepsRow(t *testing.T) {
	s, svc := loadedCourseScreen(t, 2)
	keys := DefaultKeyMap()

	_, modal := s.HandleKey(runes("d"), keys)
	_, cmd, closed := modal.Update(tea.KeyMsg{Type: tea.KeyEsc}, keys)
	if !closed || cmd != nil {
		t.Fatal("esc should close without deleting")
	}
	if len(svc.deleted) != 0 {
		t.Fatal("nothing should be deleted")
	}
}

func TestColumnsModalEmitsSelection(t *testing.T) {
	s, _ := loadedCourseScreen(t, 2)
	keys := DefaultKeyMap()

	_, modal := s.HandleKey(runes("c"), keys)
	cols, ok := modal.(*columnsModal)
	if !ok {
		t.Fatalf("expected columns modal, got %T", modal)
	}
	_, _, _ = cols.Update(tea.KeyMsg{Type: tea.KeyDown}, keys)
	_, cmd, closed := cols.Update(runes("x"), keys)
	if closed || cmd == nil {
		t.Fatal("toggle should emit a change and stay open")
	}
	msg, ok := cmd().(columnsMsg)
	if !ok {
		t.Fatal("expected columnsMsg")
	}
	if msg.screen != s.Name() {
		t.Fatalf("screen = %q", msg.screen)
	}
	want := []string{"title", "category", "price", "startsAt"}
	if strings.Join(msg.fields, ",") != strings.Join(want, ",") {
		t.Fatalf("fields = %v, want %v", msg.fields, want)
	}
	if got := len(s.table.Columns()); got != 4 {
		t.Fatalf("table columns = %d, want 4", got)
	}
}

func TestListScreenAppliesSavedColumns(t *testing.T) {
	svc := newCourseService(1)
	s := newListScreen(coursesSpec(), svc, screenDeps{
		pageSize: 5,
		columns: func(screen string) []string {
			return []string{"title", "bogus", "price"}
		},
	})
	defer s.Dispose()

	fields := s.cols.Fields()
	if strings.Join(fields, ",") != "title,price" {
		t.Fatalf("fields = %v, want title,price", fields)
	}
}

func TestStepPageSize(t *testing.T) {
	tests := []struct {
		current, dir, want int
	}{
		{10, 1, 20},
		{10, -1, 5},
		{5, -1, 5},
		{100, 1, 100},
		{15, 1, 20},
		{15, -1, 10},
		{500, 1, 500},
		{3, -1, 3},
	}
	for _, tt := range tests {
		if got := stepPageSize(tt.current, tt.dir); got != tt.want {
			t.Errorf("stepPageSize(%d, %d) = %d, want %d", tt.current, tt.dir, got, tt.want)
		}
	}
}

func TestFitWidths(t *testing.T) {
	cols := []listing.Column{{Field: "a", Width: 40}, {Field: "b", Width: 20}, {Field: "c", Width: 2}}

	got := fitWidths(cols, 200)
	if got[0] != 40 || got[1] != 20 || got[2] != LayoutMinColumnWidth {
		t.Fatalf("wide layout = %v", got)
	}

	got = fitWidths(cols, 40)
	total := 0
	for _, w := range got {
		if w < LayoutMinColumnWidth {
			t.Fatalf("width below minimum: %v", got)
		}
		total += w
	}
	if total >= 66 {
		t.Fatalf("narrow layout did not shrink: %v", got)
	}
}
