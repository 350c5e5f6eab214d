package ports

import "time"

// QuotaState reports the quota standing for one identity.
type QuotaState struct {
	// Allowed is false once the identity has exhausted its window.
	Allowed bool
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetTime is when the current window elapses.
	ResetTime time.Time
}

// QuotaStore tracks per-identity request counts over a rolling window.
//
// Consume reserves a slot ("soft" consumption). A reservation is finalized
// with Commit once a deliverable has been produced, or returned with Refund
// when the pipeline fails first, so failed requests never permanently
// consume quota. All methods must be atomic with respect to concurrent
// calls for the same identity.
type QuotaStore interface {
	// Check reports the current state without consuming anything.
	Check(identity string) (QuotaState, error)

	// Consume reserves one slot. When the window is exhausted it returns
	// a state with Allowed=false and reserves nothing.
	Consume(identity string) (QuotaState, error)

	// Refund returns a previously consumed slot.
	Refund(identity string) error

	// Commit finalizes a previously consumed slot.
	Commit(identity string) error
}
