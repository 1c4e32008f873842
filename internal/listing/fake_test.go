package listing

import (
	"context"
	"fmt"
	"sync"

	"github.com/five82/tally/internal/domain"
	"github.com/five82/tally/internal/search"
)

type fakeService struct {
	mu       sync.Mutex
	rows     []domain.Course
	err      error
	searches []search.Filter[domain.CourseFilter]
	created  []domain.Course
	updated  []domain.Course
	deleted  []string
}

func newFakeService(n int) *fakeService {
	s := &fakeService{}
	for i := range n {
		c := domain.NewCourse()
		c.ID = fmt.Sprintf("c%02d", i+1)
		c.Title = fmt.Sprintf("Course %d", i+1)
		c.Instructor = "Ada"
		s.rows = append(s.rows, c)
	}
	return s
}

func (s *fakeService) Search(ctx context.Context, f search.Filter[domain.CourseFilter]) (search.Result[domain.Course], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, f)
	if s.err != nil {
		return search.Result[domain.Course]{}, s.err
	}
	page := f.Pagination
	start := (page.PageNumber - 1) * page.PageSize
	end := min(start+page.PageSize, len(s.rows))
	var data []domain.Course
	if start < len(s.rows) {
		data = append(data, s.rows[start:end]...)
	}
	return search.Result[domain.Course]{Data: data, TotalRecords: len(s.rows)}, nil
}

func (s *fakeService) Create(ctx context.Context, c domain.Course) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return domain.Course{}, s.err
	}
	c.ID = fmt.Sprintf("new%d", len(s.created)+1)
	s.created = append(s.created, c)
	s.rows = append(s.rows, c)
	return c, nil
}

func (s *fakeService) Update(ctx context.Context, c domain.Course) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return domain.Course{}, s.err
	}
	s.updated = append(s.updated, c)
	return c, nil
}

func (s *fakeService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	for i, c := range s.rows {
		if c.ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeService) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.searches) + len(s.created) + len(s.updated) + len(s.deleted)
}

type publishCall struct {
	collection string
	query      string
	page       search.PageRequest
	total      int
}

type fakePublisher struct {
	published   []publishCall
	invalidated []string
}

func (p *fakePublisher) Publish(_ context.Context, collection, query string, page search.PageRequest, _ any, total int) error {
	p.published = append(p.published, publishCall{collection, query, page, total})
	return nil
}

func (p *fakePublisher) Invalidate(_ context.Context, collection string) {
	p.invalidated = append(p.invalidated, collection)
}
