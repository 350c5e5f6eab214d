// Package memquota provides an in-memory quota store with a rolling window.
package memquota

import (
	"sync"
	"time"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// DefaultLimit is the number of requests allowed per identity per window.
const DefaultLimit = 10

// DefaultWindow is the quota window length.
const DefaultWindow = 24 * time.Hour

type record struct {
	count       int
	windowStart time.Time
}

// Store implements ports.QuotaStore with an in-process map. State is lost
// on restart; the badgerquota store persists across restarts.
type Store struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	records map[string]*record
	now     func() time.Time
}

// New creates a new Store. Non-positive limit or window select the defaults.
func New(limit int, window time.Duration) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Store{
		limit:   limit,
		window:  window,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Check reports the current state without consuming anything.
func (s *Store) Check(identity string) (ports.QuotaState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.fresh(identity)
	return s.state(rec), nil
}

// Consume reserves one slot, or reports Allowed=false when the window is
// exhausted.
func (s *Store) Consume(identity string) (ports.QuotaState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.fresh(identity)
	if rec.count >= s.limit {
		return s.state(rec), nil
	}

	if rec.count == 0 {
		rec.windowStart = s.now()
	}
	rec.count++
	s.records[identity] = rec
	return s.state(rec), nil
}

// Refund returns a previously consumed slot.
func (s *Store) Refund(identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[identity]
	if !ok || rec.count == 0 {
		return nil
	}
	rec.count--
	if rec.count == 0 {
		delete(s.records, identity)
	}
	return nil
}

// Commit finalizes a previously consumed slot. The in-memory store counts
// reservations directly, so there is nothing left to do.
func (s *Store) Commit(identity string) error {
	return nil
}

// fresh returns the identity's record, resetting it when its window has
// elapsed. Caller must hold the lock.
func (s *Store) fresh(identity string) *record {
	rec, ok := s.records[identity]
	if !ok {
		rec = &record{}
		s.records[identity] = rec
		return rec
	}
	if rec.count > 0 && s.now().Sub(rec.windowStart) >= s.window {
		rec.count = 0
		rec.windowStart = time.Time{}
	}
	return rec
}

func (s *Store) state(rec *record) ports.QuotaState {
	remaining := s.limit - rec.count
	if remaining < 0 {
		remaining = 0
	}
	reset := rec.windowStart.Add(s.window)
	if rec.count == 0 {
		reset = s.now().Add(s.window)
	}
	return ports.QuotaState{
		Allowed:   rec.count < s.limit,
		Remaining: remaining,
		ResetTime: reset,
	}
}

// Ensure Store implements ports.QuotaStore
var _ ports.QuotaStore = (*Store)(nil)
