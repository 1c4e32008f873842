package listing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/tally/internal/search"
)

// Publisher receives every page a controller displays and the invalidations
// that follow mutations.
type Publisher interface {
	Publish(ctx context.Context, collection, query string, page search.PageRequest, rows any, total int) error
	Invalidate(ctx context.Context, collection string)
}

// Options configures a Controller.
type Options struct {
	// Name identifies the collection in logs and in the shared store.
	Name      string
	PageSize  int
	Publisher Publisher
	Logger    logrus.FieldLogger
	// Context bounds every request; Dispose cancels it.
	Context context.Context
}

// Request is one issued search. It is created on the event loop and carried
// to Fetch, which may run on another goroutine.
type Request[D any] struct {
	Ticket Ticket
	Filter search.Filter[D]
	ctx    context.Context
}

// Context returns the request context; it is cancelled when a newer request
// supersedes this one.
func (r Request[D]) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// Outcome is the result of Fetch, applied back on the event loop.
type Outcome[T any] struct {
	Ticket Ticket
	Query  string
	Page   search.PageRequest
	Result search.Result[T]
	Err    error
}

// Controller drives one list screen: request inputs, the fetch cycle, and the
// service calls behind them. All methods except Fetch must be called from a
// single goroutine.
type Controller[T Entity[T], D any] struct {
	name   string
	svc    Service[T, D]
	pub    Publisher
	log    logrus.FieldLogger
	parent context.Context
	stop   context.CancelFunc
	cancel context.CancelFunc

	page   search.Pagination
	order  search.Order
	filter D
	query  string
	cycle  Cycle[T]
}

// NewController creates a controller on page 1 with no query, sort or filter.
func NewController[T Entity[T], D any](svc Service[T, D], opts Options) *Controller[T, D] {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	parent, stop := context.WithCancel(parent)
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller[T, D]{
		name:   opts.Name,
		svc:    svc,
		pub:    opts.Publisher,
		log:    log.WithField("collection", opts.Name),
		parent: parent,
		stop:   stop,
		page:   search.NewPagination(opts.PageSize),
	}
}

func (c *Controller[T, D]) Name() string            { return c.name }
func (c *Controller[T, D]) Page() search.Pagination { return c.page }
func (c *Controller[T, D]) Order() search.Order     { return c.order }
func (c *Controller[T, D]) Query() string           { return c.query }
func (c *Controller[T, D]) DomainFilter() D         { return c.filter }
func (c *Controller[T, D]) Rows() []T               { return c.cycle.Rows() }
func (c *Controller[T, D]) Total() int              { return c.cycle.Total() }
func (c *Controller[T, D]) Loading() bool           { return c.cycle.Loading() }
func (c *Controller[T, D]) Skeleton() int           { return c.cycle.Skeleton() }
func (c *Controller[T, D]) Phase() Phase            { return c.cycle.Phase() }
func (c *Controller[T, D]) Err() error              { return c.cycle.Err() }
func (c *Controller[T, D]) TotalPages() int         { return c.page.TotalPages(c.cycle.Total()) }
func (c *Controller[T, D]) Service() Service[T, D]  { return c.svc }
func (c *Controller[T, D]) Disposed() bool          { return c.cycle.Disposed() }

// Commit applies a committed search query and returns to page 1.
func (c *Controller[T, D]) Commit(query string) Request[D] {
	c.query = query
	c.page = c.page.Reset()
	return c.issue()
}

// SetPage moves to page n.
func (c *Controller[T, D]) SetPage(n int) Request[D] {
	c.page = c.page.WithPage(n)
	return c.issue()
}

// SetPageSize changes the page length, keeping the first visible row.
func (c *Controller[T, D]) SetPageSize(size int) Request[D] {
	c.page = c.page.WithSize(size)
	return c.issue()
}

// SetSort toggles the sort on column and returns to page 1.
func (c *Controller[T, D]) SetSort(column string) Request[D] {
	c.order = c.order.Toggle(column)
	c.page = c.page.Reset()
	return c.issue()
}

// SetFilter replaces the domain filter and returns to page 1.
func (c *Controller[T, D]) SetFilter(filter D) Request[D] {
	c.filter = filter
	c.page = c.page.Reset()
	return c.issue()
}

// Refresh reloads the current page.
func (c *Controller[T, D]) Refresh() Request[D] {
	return c.issue()
}

// Saved invalidates the shared cache after a create or update and reloads
// the current page.
func (c *Controller[T, D]) Saved() Request[D] {
	c.invalidate()
	return c.issue()
}

// AfterDelete invalidates the shared cache and reloads the current page,
// stepping back when the deleted row was the last one on it.
func (c *Controller[T, D]) AfterDelete() Request[D] {
	c.invalidate()
	c.page = c.page.Clamp(max(c.cycle.Total()-1, 0))
	return c.issue()
}

func (c *Controller[T, D]) invalidate() {
	if c.pub != nil {
		c.pub.Invalidate(c.parent, c.name)
	}
}

func (c *Controller[T, D]) issue() Request[D] {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	return Request[D]{
		Ticket: c.cycle.Begin(c.page.PageSize),
		Filter: search.Build(c.query, c.page, c.order, c.filter),
		ctx:    ctx,
	}
}

// Fetch runs the search for req. It touches no controller state besides the
// service and may run on any goroutine.
func (c *Controller[T, D]) Fetch(req Request[D]) Outcome[T] {
	out := Outcome[T]{Ticket: req.Ticket, Query: req.Filter.Query()}
	if req.Filter.Pagination != nil {
		out.Page = *req.Filter.Pagination
	}
	ctx := req.Context()
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}
	res, err := c.svc.Search(ctx, req.Filter)
	if err != nil {
		out.Err = fmt.Errorf("search %s: %w", c.name, err)
		return out
	}
	out.Result = res
	return out
}

// Apply folds a fetch outcome into the cycle. It returns the error to show
// the user, or nil when the outcome succeeded or was superseded.
func (c *Controller[T, D]) Apply(out Outcome[T]) error {
	log := c.log.WithFields(logrus.Fields{"page": out.Page.PageNumber, "ticket": out.Ticket.Seq})
	if out.Err != nil {
		if !c.cycle.Fail(out.Ticket, out.Err) {
			log.Debug("dropping superseded failure")
			return nil
		}
		log.WithError(out.Err).Warn("search failed")
		return out.Err
	}
	if !c.cycle.Resolve(out.Ticket, out.Result) {
		log.Debug("dropping superseded response")
		return nil
	}
	if err := c.cycle.Err(); err != nil {
		log.WithError(err).Warn("search returned an inconsistent page")
		return err
	}
	log.WithField("total", out.Result.TotalRecords).Debug("page loaded")
	if c.pub != nil {
		if err := c.pub.Publish(c.parent, c.name, out.Query, out.Page, out.Result.Data, out.Result.TotalRecords); err != nil {
			log.WithError(err).Warn("publish page")
		}
	}
	return nil
}

// Dispose cancels in-flight requests and ignores every later outcome.
func (c *Controller[T, D]) Dispose() {
	c.cycle.Dispose()
	if c.cancel != nil {
		c.cancel()
	}
	c.stop()
}
