package services

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type steppingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *steppingClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *steppingClock) Advance(step time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(step)
	clock.mu.Unlock()
}

func newSessionTestPicker(sessionID string, seen *[]string) *Picker {
	return NewPicker(PickerOptions{
		OnUpdate: func(DateRange) {
			*seen = append(*seen, sessionID)
		},
		Clock:    FixedClock{At: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)},
		Location: time.UTC,
	})
}

func TestSessionStoreCreateBindsCallbackToSessionID(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(&steppingClock{now: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)})
	seen := make([]string, 0)

	session := store.Create(func(sessionID string) *Picker {
		return newSessionTestPicker(sessionID, &seen)
	})
	if session.ID == "" {
		t.Fatal("expected generated session id")
	}
	if len(seen) != 1 || seen[0] != session.ID {
		t.Fatalf("expected mount update tagged with %s, got %#v", session.ID, seen)
	}

	loaded, err := store.Get(session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if loaded != session {
		t.Fatal("expected Get to return the stored session")
	}
}

func TestSessionStoreIsolatesSessions(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(nil)
	seen := make([]string, 0)
	first := store.Create(func(sessionID string) *Picker { return newSessionTestPicker(sessionID, &seen) })
	second := store.Create(func(sessionID string) *Picker { return newSessionTestPicker(sessionID, &seen) })

	if first.ID == second.ID {
		t.Fatal("expected distinct session ids")
	}

	if err := first.With(func(picker *Picker) error {
		picker.Reset()
		return nil
	}); err != nil {
		t.Fatalf("With returned error: %v", err)
	}

	_ = second.With(func(picker *Picker) error {
		if picker.State() != SelectionFull {
			t.Fatalf("expected second session to keep its range, got %s", picker.State())
		}
		return nil
	})
}

func TestSessionStoreGetRejectsUnknownIDs(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(nil)
	for _, raw := range []string{"", "not-a-uuid", "2b1c8f8e-3c0a-4d43-9d4e-0c4b7f1d9a11"} {
		if _, err := store.Get(raw); !errors.Is(err, ErrPickerSessionNotFound) {
			t.Fatalf("expected ErrPickerSessionNotFound for %q, got %v", raw, err)
		}
	}
}

func TestSessionStoreEvictIdle(t *testing.T) {
	t.Parallel()

	clock := &steppingClock{now: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)}
	store := NewSessionStore(clock)
	seen := make([]string, 0)

	stale := store.Create(func(sessionID string) *Picker { return newSessionTestPicker(sessionID, &seen) })
	clock.Advance(20 * time.Minute)
	fresh := store.Create(func(sessionID string) *Picker { return newSessionTestPicker(sessionID, &seen) })
	clock.Advance(15 * time.Minute)

	if evicted := store.EvictIdle(30 * time.Minute); evicted != 1 {
		t.Fatalf("expected one eviction, got %d", evicted)
	}
	if _, err := store.Get(stale.ID); !errors.Is(err, ErrPickerSessionNotFound) {
		t.Fatalf("expected stale session to be gone, got %v", err)
	}
	if _, err := store.Get(fresh.ID); err != nil {
		t.Fatalf("expected fresh session to survive, got %v", err)
	}
	if store.EvictIdle(0) != 0 {
		t.Fatal("expected zero ttl to disable eviction")
	}
}

func TestSessionJanitorSweepEvictsIdleSessions(t *testing.T) {
	t.Parallel()

	clock := &steppingClock{now: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)}
	store := NewSessionStore(clock)
	seen := make([]string, 0)
	store.Create(func(sessionID string) *Picker { return newSessionTestPicker(sessionID, &seen) })

	janitor := NewSessionJanitor(store, time.Hour, "")
	if janitor.Sweep() != 0 {
		t.Fatal("expected no eviction before the ttl passes")
	}
	clock.Advance(2 * time.Hour)
	if janitor.Sweep() != 1 || store.Len() != 0 {
		t.Fatalf("expected the idle session to be evicted, %d left", store.Len())
	}
}

func TestSessionJanitorStartRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	janitor := NewSessionJanitor(NewSessionStore(nil), time.Hour, "every tuesday")
	if err := janitor.Start(t.Context()); err == nil {
		janitor.Stop()
		t.Fatal("expected invalid cron schedule to fail")
	}
}

func TestSessionStoreResumeKeepsSessionID(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(nil)
	seen := make([]string, 0)
	build := func(sessionID string) *Picker { return newSessionTestPicker(sessionID, &seen) }

	original := store.Create(build)
	resumed, err := store.Resume(original.ID, build)
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if resumed != original {
		t.Fatal("expected Resume to return the live session")
	}

	store.Delete(original.ID)
	rebuilt, err := store.Resume(original.ID, build)
	if err != nil {
		t.Fatalf("Resume after eviction returned error: %v", err)
	}
	if rebuilt == original || rebuilt.ID != original.ID {
		t.Fatalf("expected a rebuilt session under id %s, got %s", original.ID, rebuilt.ID)
	}
	if _, err := store.Resume("not-a-uuid", build); !errors.Is(err, ErrPickerSessionNotFound) {
		t.Fatalf("expected ErrPickerSessionNotFound for a malformed id, got %v", err)
	}
}
