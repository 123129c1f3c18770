package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubKeyStore struct {
	mu     sync.Mutex
	marked int64
	err    error
	calls  int
	asOf   time.Time
}

func (s *stubKeyStore) MarkStale(_ context.Context, asOf time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.asOf = asOf
	return s.marked, s.err
}

func (s *stubKeyStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubSessionStore struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (s *stubSessionStore) CleanupExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubSessionStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestSweeper_Sweep(t *testing.T) {
	keys := &stubKeyStore{marked: 3}
	sessions := &stubSessionStore{}
	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := New(keys, sessions, time.Hour)
	s.SetClock(func() time.Time { return frozen })

	s.Sweep(context.Background())

	assert.Equal(t, 1, keys.callCount())
	assert.Equal(t, frozen, keys.asOf)
	assert.Equal(t, 1, sessions.callCount())
}

func TestSweeper_Sweep_KeyStoreErrorDoesNotSkipSessions(t *testing.T) {
	keys := &stubKeyStore{err: errors.New("db down")}
	sessions := &stubSessionStore{}

	s := New(keys, sessions, time.Hour)
	s.Sweep(context.Background())

	assert.Equal(t, 1, keys.callCount())
	assert.Equal(t, 1, sessions.callCount())
}

func TestSweeper_Sweep_SessionErrorSwallowed(t *testing.T) {
	keys := &stubKeyStore{}
	sessions := &stubSessionStore{err: errors.New("db down")}

	s := New(keys, sessions, time.Hour)

	assert.NotPanics(t, func() { s.Sweep(context.Background()) })
	assert.Equal(t, 1, sessions.callCount())
}

func TestSweeper_StartStop(t *testing.T) {
	keys := &stubKeyStore{}
	sessions := &stubSessionStore{}

	s := New(keys, sessions, 5*time.Millisecond)
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, keys.callCount(), 1)
	assert.GreaterOrEqual(t, sessions.callCount(), 1)
}
