package ui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/domain"
	"github.com/five82/tally/internal/logging"
	"github.com/five82/tally/internal/search"
	"github.com/five82/tally/internal/state"
)

type courseService struct {
	mu       sync.Mutex
	rows     []domain.Course
	searches []search.Filter[domain.CourseFilter]
	created  []domain.Course
	deleted  []string
}

func newCourseService(n int) *courseService {
	s := &courseService{}
	for i := range n {
		c := domain.NewCourse()
		c.ID = fmt.Sprintf("c%02d", i+1)
		c.Title = fmt.Sprintf("Course %d", i+1)
		c.Instructor = "Ada"
		s.rows = append(s.rows, c)
	}
	return s
}

func (s *courseService) Search(_ context.Context, f search.Filter[domain.CourseFilter]) (search.Result[domain.Course], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, f)
	page := f.Pagination
	start := (page.PageNumber - 1) * page.PageSize
	end := min(start+page.PageSize, len(s.rows))
	var data []domain.Course
	if start < len(s.rows) {
		data = append(data, s.rows[start:end]...)
	}
	return search.Result[domain.Course]{Data: data, TotalRecords: len(s.rows)}, nil
}

func (s *courseService) Create(_ context.Context, c domain.Course) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = fmt.Sprintf("new%d", len(s.created)+1)
	s.created = append(s.created, c)
	s.rows = append(s.rows, c)
	return c, nil
}

func (s *courseService) Update(_ context.Context, c domain.Course) (domain.Course, error) {
	return c, nil
}

func (s *courseService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	for i, c := range s.rows {
		if c.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (s *courseService) lastSearch() search.Filter[domain.CourseFilter] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches[len(s.searches)-1]
}

func (s *courseService) searchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.searches)
}

type courseScreen = listScreen[domain.Course, domain.CourseFilter]

func newCourseScreen(t *testing.T, svc *courseService, store *state.Store) *courseScreen {
	t.Helper()
	s := newListScreen(coursesSpec(), svc, screenDeps{
		store:    store,
		log:      logging.Discard(),
		pageSize: 5,
		window:   time.Millisecond,
		now:      func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local) },
	})
	s.Restyle(GetTheme("Slate"))
	s.Resize(120, 30)
	t.Cleanup(s.Dispose)
	return s
}

// settle runs cmd and feeds every message addressed to s back into it
// until nothing is left. Other messages are returned.
func settle(t *testing.T, s *courseScreen, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var other []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case routed:
			if msg.target() != s.Name() {
				t.Fatalf("message for %q reached %q", msg.target(), s.Name())
			}
			queue = append(queue, s.Update(msg))
		case nil:
		default:
			other = append(other, msg)
		}
	}
	return other
}

func loadedCourseScreen(t *testing.T, n int) (*courseScreen, *courseService) {
	t.Helper()
	svc := newCourseService(n)
	s := newCourseScreen(t, svc, nil)
	settle(t, s, s.Init())
	return s, svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
