package search

import (
	"context"
	"time"
)

// DefaultWindow is the quiet period before a typed query is committed.
const DefaultWindow = 400 * time.Millisecond

// Gate turns raw search input into committed queries. Each Input returns a
// tag; the caller schedules Fire(tag) after the debounce window. Fire commits
// only for the newest tag and only when the value changed since the previous
// commit. A Gate is not safe for concurrent use; the UI event loop and the
// Debounce goroutine each own theirs.
type Gate struct {
	tag       uint64
	pending   string
	committed string
	hasCommit bool
	closed    bool
}

// Input records a new raw value and returns its tag.
func (g *Gate) Input(value string) uint64 {
	g.tag++
	g.pending = value
	return g.tag
}

// Fire reports the committed value for tag, if any.
func (g *Gate) Fire(tag uint64) (string, bool) {
	if g.closed || tag != g.tag {
		return "", false
	}
	if g.hasCommit && g.pending == g.committed {
		return "", false
	}
	g.committed = g.pending
	g.hasCommit = true
	return g.committed, true
}

// Committed returns the last committed value.
func (g *Gate) Committed() string {
	return g.committed
}

// Close tears the gate down; every later Fire is ignored.
func (g *Gate) Close() {
	g.closed = true
}

// Closed reports whether Close was called.
func (g *Gate) Closed() bool {
	return g.closed
}

// Debounce commits values read from in after window elapses without new input,
// collapsing consecutive duplicates. The returned channel is closed when ctx
// is cancelled or in is closed; a pending value is flushed when in closes.
func Debounce(ctx context.Context, in <-chan string, window time.Duration) <-chan string {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make(chan string)
	go func() {
		defer close(out)

		var (
			gate   Gate
			tag    uint64
			timer  *time.Timer
			expiry <-chan time.Time
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		emit := func() bool {
			value, ok := gate.Fire(tag)
			if !ok {
				return true
			}
			if ctx.Err() != nil {
				return false
			}
			select {
			case out <- value:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case value, ok := <-in:
				if !ok {
					if expiry != nil {
						emit()
					}
					return
				}
				tag = gate.Input(value)
				if timer == nil {
					timer = time.NewTimer(window)
				} else {
					timer.Reset(window)
				}
				expiry = timer.C
			case <-expiry:
				expiry = nil
				if !emit() {
					return
				}
			}
		}
	}()
	return out
}
