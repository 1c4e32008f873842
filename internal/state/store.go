package state

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/tally/internal/search"
)

// Snapshot is the last page a screen displayed for a collection.
type Snapshot struct {
	Collection string             `json:"collection"`
	Query      string             `json:"query"`
	Page       search.PageRequest `json:"page"`
	Rows       json.RawMessage    `json:"rows"`
	Total      int                `json:"total"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// Decode unmarshals the cached rows into dest.
func (s Snapshot) Decode(dest any) error {
	if len(s.Rows) == 0 {
		return nil
	}
	if err := json.Unmarshal(s.Rows, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", s.Collection, err)
	}
	return nil
}

// Event is delivered to subscribers of a collection.
type Event struct {
	Collection  string
	Snapshot    Snapshot
	Invalidated bool
}

// mirrorQueue bounds the Redis writes waiting behind a slow server.
const mirrorQueue = 64

// Store is the process-wide cache of displayed pages, keyed by collection.
// The zero value is ready to use; NewStore adds a Redis mirror.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Snapshot
	subs    map[string]map[uint64]chan Event
	nextSub uint64

	mirror  *Mirror
	writes  chan mirrorOp
	drained chan struct{}
	closed  bool
}

// mirrorOp is one queued Redis write. Exactly one field is set.
type mirrorOp struct {
	put   *Snapshot
	evict string
	flush chan struct{}
}

// NewStore returns a Store that mirrors writes to m when m is non-nil.
// Mirror writes run on a background goroutine in the order they were made.
func NewStore(m *Mirror) *Store {
	s := &Store{mirror: m}
	if m != nil {
		s.writes = make(chan mirrorOp, mirrorQueue)
		s.drained = make(chan struct{})
		go s.writeLoop()
	}
	return s
}

func (s *Store) writeLoop() {
	defer close(s.drained)
	ctx := context.Background()
	for op := range s.writes {
		switch {
		case op.flush != nil:
			close(op.flush)
		case op.put != nil:
			s.mirror.store(ctx, *op.put)
		default:
			s.mirror.evict(ctx, op.evict)
		}
	}
}

// enqueueLocked hands op to the writer without blocking. s.mu must be held.
func (s *Store) enqueueLocked(op mirrorOp) {
	if s.writes == nil || s.closed {
		return
	}
	select {
	case s.writes <- op:
	default:
		s.mirror.log.Warn("cache write queue full; dropping write")
	}
}

// Flush waits until every mirror write queued so far has been attempted.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.writes == nil || s.closed {
		s.mu.Unlock()
		return nil
	}
	done := make(chan struct{})
	select {
	case s.writes <- mirrorOp{flush: done}:
	case <-ctx.Done():
		s.mu.Unlock()
		return ctx.Err()
	}
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish stores one page of rows for collection.
func (s *Store) Publish(ctx context.Context, collection, query string, page search.PageRequest, rows any, total int) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode %s rows: %w", collection, err)
	}
	s.Put(ctx, Snapshot{
		Collection: collection,
		Query:      query,
		Page:       page,
		Rows:       raw,
		Total:      total,
		UpdatedAt:  time.Now(),
	})
	return nil
}

// Put replaces the snapshot for snap.Collection and notifies subscribers.
// The last write wins.
func (s *Store) Put(ctx context.Context, snap Snapshot) {
	snap.Rows = cloneRaw(snap.Rows)
	s.mu.Lock()
	if s.entries == nil {
		s.entries = make(map[string]Snapshot)
	}
	s.entries[snap.Collection] = snap
	s.notifyLocked(Event{Collection: snap.Collection, Snapshot: snap})
	s.enqueueLocked(mirrorOp{put: &snap})
	s.mu.Unlock()
}

// Get returns the snapshot for collection. On a local miss the Redis mirror
// is consulted and a hit is kept locally.
func (s *Store) Get(ctx context.Context, collection string) (Snapshot, bool) {
	s.mu.RLock()
	snap, ok := s.entries[collection]
	s.mu.RUnlock()
	if ok {
		snap.Rows = cloneRaw(snap.Rows)
		return snap, true
	}

	snap, ok = s.mirror.load(ctx, collection)
	if !ok {
		return Snapshot{}, false
	}
	s.mu.Lock()
	if s.entries == nil {
		s.entries = make(map[string]Snapshot)
	}
	if _, raced := s.entries[collection]; !raced {
		s.entries[collection] = snap
	}
	s.mu.Unlock()
	snap.Rows = cloneRaw(snap.Rows)
	return snap, true
}

// Invalidate drops the snapshot for collection and notifies subscribers.
func (s *Store) Invalidate(ctx context.Context, collection string) {
	s.mu.Lock()
	delete(s.entries, collection)
	s.notifyLocked(Event{Collection: collection, Invalidated: true})
	s.enqueueLocked(mirrorOp{evict: collection})
	s.mu.Unlock()
}

// Subscribe returns a channel of events for collection and a function that
// cancels the subscription and closes the channel. Slow subscribers only see
// the latest event.
func (s *Store) Subscribe(collection string) (<-chan Event, func()) {
	ch := make(chan Event, 1)
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[string]map[uint64]chan Event)
	}
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[uint64]chan Event)
	}
	s.nextSub++
	id := s.nextSub
	s.subs[collection][id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs[collection], id)
			close(ch)
		})
	}
}

// Totals returns the cached total of every collection.
func (s *Store) Totals() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.entries))
	for name, snap := range s.entries {
		out[name] = snap.Total
	}
	return out
}

// Collections lists the cached collections in name order.
func (s *Store) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.entries))
}

// Close finishes the queued mirror writes and releases the connection.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.writes != nil && !s.closed {
		s.closed = true
		close(s.writes)
	}
	s.mu.Unlock()
	if s.drained != nil {
		<-s.drained
	}
	return s.mirror.Close()
}

func (s *Store) notifyLocked(ev Event) {
	for _, ch := range s.subs[ev.Collection] {
		select {
		case ch <- ev:
		default:
			// Replace the undelivered event; only the sender fills the buffer.
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return slices.Clone(raw)
}
