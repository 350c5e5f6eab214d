package memquota

import (
	"testing"
	"time"
)

func TestConsume_EnforcesLimit(t *testing.T) {
	store := New(10, 24*time.Hour)

	for i := 0; i < 10; i++ {
		state, err := store.Consume("10.0.0.1")
		if err != nil {
			t.Fatalf("consume %d: %v", i, err)
		}
		if !state.Allowed {
			t.Fatalf("consume %d: expected allowed", i)
		}
		if state.Remaining != 10-i-1 {
			t.Errorf("consume %d: expected %d remaining, got %d", i, 10-i-1, state.Remaining)
		}
	}

	state, err := store.Consume("10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Allowed {
		t.Error("11th request must be rejected")
	}
	if state.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", state.Remaining)
	}
}

func TestConsume_IdentitiesAreIndependent(t *testing.T) {
	store := New(1, 24*time.Hour)

	if state, _ := store.Consume("10.0.0.1"); !state.Allowed {
		t.Fatal("first identity rejected")
	}
	if state, _ := store.Consume("10.0.0.2"); !state.Allowed {
		t.Fatal("second identity must not share quota")
	}
	if state, _ := store.Consume("10.0.0.1"); state.Allowed {
		t.Fatal("first identity must be exhausted")
	}
}

func TestRefund_ReturnsSlot(t *testing.T) {
	store := New(1, 24*time.Hour)

	if state, _ := store.Consume("10.0.0.1"); !state.Allowed {
		t.Fatal("consume rejected")
	}
	if state, _ := store.Check("10.0.0.1"); state.Allowed {
		t.Fatal("expected exhausted before refund")
	}

	if err := store.Refund("10.0.0.1"); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if state, _ := store.Consume("10.0.0.1"); !state.Allowed {
		t.Fatal("expected allowed after refund")
	}
}

func TestRefund_UnknownIdentity(t *testing.T) {
	store := New(1, 24*time.Hour)
	if err := store.Refund("10.0.0.9"); err != nil {
		t.Fatalf("refund of unknown identity must be a no-op: %v", err)
	}
}

func TestWindow_Elapses(t *testing.T) {
	store := New(2, 24*time.Hour)
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Consume("10.0.0.1")
	store.Consume("10.0.0.1")
	if state, _ := store.Check("10.0.0.1"); state.Allowed {
		t.Fatal("expected exhausted")
	}

	// One minute short of the window: still exhausted.
	current = current.Add(24*time.Hour - time.Minute)
	if state, _ := store.Check("10.0.0.1"); state.Allowed {
		t.Fatal("window must not reset early")
	}

	current = current.Add(2 * time.Minute)
	state, _ := store.Consume("10.0.0.1")
	if !state.Allowed {
		t.Fatal("expected allowed after window elapsed")
	}
	if state.Remaining != 1 {
		t.Errorf("expected fresh window count, got remaining %d", state.Remaining)
	}
}

func TestResetTime_TracksWindowStart(t *testing.T) {
	store := New(5, 24*time.Hour)
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	current := start
	store.now = func() time.Time { return current }

	store.Consume("10.0.0.1")
	current = current.Add(time.Hour)
	state, _ := store.Consume("10.0.0.1")

	want := start.Add(24 * time.Hour)
	if !state.ResetTime.Equal(want) {
		t.Errorf("expected reset at %v, got %v", want, state.ResetTime)
	}
}

func TestCommit_IsNoop(t *testing.T) {
	store := New(2, 24*time.Hour)
	store.Consume("10.0.0.1")
	if err := store.Commit("10.0.0.1"); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if state, _ := store.Check("10.0.0.1"); state.Remaining != 1 {
		t.Errorf("commit must not change the count, remaining %d", state.Remaining)
	}
}
