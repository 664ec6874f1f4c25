package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrPickerSessionNotFound = errors.New("picker session not found")

// PickerSession owns one picker. Commands on a session are serialized by
// its mutex; different sessions never share state.
type PickerSession struct {
	ID string

	mu       sync.Mutex
	picker   *Picker
	lastSeen time.Time
}

// With runs fn while holding the session lock.
func (session *PickerSession) With(fn func(picker *Picker) error) error {
	session.mu.Lock()
	defer session.mu.Unlock()
	return fn(session.picker)
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*PickerSession
	clock    Clock
}

func NewSessionStore(clock Clock) *SessionStore {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SessionStore{
		sessions: make(map[string]*PickerSession),
		clock:    clock,
	}
}

// Create registers a new session. build receives the generated ID so the
// update callback can be bound to it before the picker notifies on mount.
func (store *SessionStore) Create(build func(sessionID string) *Picker) *PickerSession {
	session := &PickerSession{ID: uuid.NewString()}
	session.picker = build(session.ID)
	session.lastSeen = store.clock.Now()

	store.mu.Lock()
	store.sessions[session.ID] = session
	store.mu.Unlock()
	return session
}

// Resume returns the live session for sessionID or rebuilds one under the
// same ID, e.g. after the idle picker was evicted but the client still holds
// a valid cookie.
func (store *SessionStore) Resume(sessionID string, build func(sessionID string) *Picker) (*PickerSession, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrPickerSessionNotFound
	}
	if session, err := store.Get(sessionID); err == nil {
		return session, nil
	}

	session := &PickerSession{ID: sessionID}
	session.picker = build(sessionID)

	store.mu.Lock()
	defer store.mu.Unlock()
	if existing, ok := store.sessions[sessionID]; ok {
		existing.lastSeen = store.clock.Now()
		return existing, nil
	}
	session.lastSeen = store.clock.Now()
	store.sessions[sessionID] = session
	return session, nil
}

func (store *SessionStore) Get(sessionID string) (*PickerSession, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrPickerSessionNotFound
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	session, ok := store.sessions[sessionID]
	if !ok {
		return nil, ErrPickerSessionNotFound
	}
	session.lastSeen = store.clock.Now()
	return session, nil
}

func (store *SessionStore) Delete(sessionID string) {
	store.mu.Lock()
	delete(store.sessions, sessionID)
	store.mu.Unlock()
}

func (store *SessionStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}

// EvictIdle drops sessions not touched within ttl and reports how many
// were removed.
func (store *SessionStore) EvictIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := store.clock.Now().Add(-ttl)

	store.mu.Lock()
	defer store.mu.Unlock()

	evicted := 0
	for id, session := range store.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(store.sessions, id)
			evicted++
		}
	}
	return evicted
}
