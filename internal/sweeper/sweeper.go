package sweeper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// KeyStore marks keys stale after prolonged inactivity.
type KeyStore interface {
	MarkStale(ctx context.Context, asOf time.Time) (int64, error)
}

// SessionStore purges expired admin sessions.
type SessionStore interface {
	CleanupExpired(ctx context.Context) error
}

// Sweeper periodically flips out_of_date on idle keys and drops expired
// sessions. Failures are logged and swallowed; the next tick always runs.
type Sweeper struct {
	keys     KeyStore
	sessions SessionStore
	interval time.Duration
	now      func() time.Time
	stopChan chan struct{}
}

func New(keys KeyStore, sessions SessionStore, interval time.Duration) *Sweeper {
	return &Sweeper{
		keys:     keys,
		sessions: sessions,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

// SetClock overrides the time source. Used by tests.
func (s *Sweeper) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Sweeper) Start() {
	go s.run()
	logrus.WithField("interval", s.interval).Info("Expiry sweeper started")
}

func (s *Sweeper) Stop() {
	close(s.stopChan)
	logrus.Info("Expiry sweeper stopped")
}

func (s *Sweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopChan:
			return
		}
	}
}

// Sweep runs one pass. Exported so tests can drive it without the ticker.
func (s *Sweeper) Sweep(ctx context.Context) {
	marked, err := s.keys.MarkStale(ctx, s.now())
	if err != nil {
		logrus.Errorf("Failed to mark stale api keys: %v", err)
	} else if marked > 0 {
		logrus.WithField("count", marked).Info("Marked api keys out of date")
	}

	if err := s.sessions.CleanupExpired(ctx); err != nil {
		logrus.Errorf("Failed to clean up expired sessions: %v", err)
	}
}
