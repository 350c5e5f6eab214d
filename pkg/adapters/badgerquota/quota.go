// Package badgerquota provides a quota store persisted in BadgerDB so
// counts survive server restarts.
package badgerquota

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

type record struct {
	Count       int       `json:"count"`
	WindowStart time.Time `json:"windowStart"`
}

// Store implements ports.QuotaStore on top of BadgerDB.
type Store struct {
	db     *badger.DB
	limit  int
	window time.Duration
	now    func() time.Time
}

// Open creates a Store backed by a Badger database at path.
func Open(path string, limit int, window time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open quota db: %w", err)
	}
	return &Store{
		db:     db,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Check reports the current state without consuming anything.
func (s *Store) Check(identity string) (ports.QuotaState, error) {
	var state ports.QuotaState
	err := s.db.View(func(txn *badger.Txn) error {
		rec, err := s.load(txn, identity)
		if err != nil {
			return err
		}
		state = s.state(rec)
		return nil
	})
	return state, err
}

// Consume reserves one slot, or reports Allowed=false when the window is
// exhausted.
func (s *Store) Consume(identity string) (ports.QuotaState, error) {
	var state ports.QuotaState
	err := s.db.Update(func(txn *badger.Txn) error {
		rec, err := s.load(txn, identity)
		if err != nil {
			return err
		}
		if rec.Count >= s.limit {
			state = s.state(rec)
			return nil
		}
		if rec.Count == 0 {
			rec.WindowStart = s.now()
		}
		rec.Count++
		if err := s.save(txn, identity, rec); err != nil {
			return err
		}
		state = s.state(rec)
		return nil
	})
	return state, err
}

// Refund returns a previously consumed slot.
func (s *Store) Refund(identity string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		rec, err := s.load(txn, identity)
		if err != nil {
			return err
		}
		if rec.Count == 0 {
			return nil
		}
		rec.Count--
		if rec.Count == 0 {
			return txn.Delete(s.key(identity))
		}
		return s.save(txn, identity, rec)
	})
}

// Commit finalizes a previously consumed slot. Reservations are written
// directly, so there is nothing left to do.
func (s *Store) Commit(identity string) error {
	return nil
}

func (s *Store) key(identity string) []byte {
	return []byte("quota:" + identity)
}

// load reads the identity's record, resetting it when its window has
// elapsed. Missing keys yield a zero record.
func (s *Store) load(txn *badger.Txn, identity string) (record, error) {
	var rec record

	item, err := txn.Get(s.key(identity))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("read quota record: %w", err)
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	if err != nil {
		return record{}, fmt.Errorf("decode quota record: %w", err)
	}

	if rec.Count > 0 && s.now().Sub(rec.WindowStart) >= s.window {
		rec = record{}
	}
	return rec, nil
}

func (s *Store) save(txn *badger.Txn, identity string, rec record) error {
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode quota record: %w", err)
	}
	entry := badger.NewEntry(s.key(identity), val).WithTTL(s.window)
	return txn.SetEntry(entry)
}

func (s *Store) state(rec record) ports.QuotaState {
	remaining := s.limit - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	reset := rec.WindowStart.Add(s.window)
	if rec.Count == 0 {
		reset = s.now().Add(s.window)
	}
	return ports.QuotaState{
		Allowed:   rec.Count < s.limit,
		Remaining: remaining,
		ResetTime: reset,
	}
}

// Ensure Store implements ports.QuotaStore
var _ ports.QuotaStore = (*Store)(nil)
