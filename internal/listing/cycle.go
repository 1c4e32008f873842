package listing

import (
	"errors"
	"fmt"

	"github.com/five82/tally/internal/search"
)

// Phase is the state of a fetch cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// ErrDisposed is reported for work attempted after Dispose.
var ErrDisposed = errors.New("listing disposed")

// Ticket identifies one issued fetch.
type Ticket struct {
	Seq uint64
}

// Cycle holds the rows on screen and the fetch state machine.
type Cycle[T any] struct {
	phase    Phase
	rows     []T
	total    int
	err      error
	seq      uint64
	pageSize int
	disposed bool
}

// Begin enters Loading for a page of pageSize rows and returns the new ticket.
func (c *Cycle[T]) Begin(pageSize int) Ticket {
	c.seq++
	c.pageSize = pageSize
	if !c.disposed {
		c.phase = PhaseLoading
	}
	return Ticket{Seq: c.seq}
}

// Current reports whether t is the latest ticket of a live cycle.
func (c *Cycle[T]) Current(t Ticket) bool {
	return !c.disposed && t.Seq == c.seq
}

// Resolve applies a successful response. It returns false when the ticket is
// stale. A response that breaks the page invariants is turned into a failure.
func (c *Cycle[T]) Resolve(t Ticket, res search.Result[T]) bool {
	if !c.Current(t) {
		return false
	}
	if err := res.Check(c.pageSize); err != nil {
		c.fail(fmt.Errorf("inconsistent page: %w", err))
		return true
	}
	c.rows = res.Data
	c.total = res.TotalRecords
	c.err = nil
	c.phase = PhaseSuccess
	return true
}

// Fail applies a failed response. It returns true when the failure belongs to
// the latest ticket and should be shown to the user.
func (c *Cycle[T]) Fail(t Ticket, err error) bool {
	if !c.Current(t) {
		return false
	}
	c.fail(err)
	return true
}

func (c *Cycle[T]) fail(err error) {
	c.rows = nil
	c.total = 0
	c.err = err
	c.phase = PhaseError
}

// Dispose stops the cycle; responses arriving later are dropped.
func (c *Cycle[T]) Dispose() {
	c.disposed = true
}

// Disposed reports whether Dispose was called.
func (c *Cycle[T]) Disposed() bool { return c.disposed }

func (c *Cycle[T]) Phase() Phase  { return c.phase }
func (c *Cycle[T]) Loading() bool { return c.phase == PhaseLoading }
func (c *Cycle[T]) Rows() []T     { return c.rows }
func (c *Cycle[T]) Total() int    { return c.total }
func (c *Cycle[T]) Err() error    { return c.err }

// Skeleton returns the number of placeholder rows to draw.
func (c *Cycle[T]) Skeleton() int {
	if c.phase != PhaseLoading {
		return 0
	}
	return c.pageSize
}
