package report

import (
	"log/slog"
	"sync"
	"time"
)

// MinCallInterval is the minimum spacing between model API calls. The
// free tier tolerates 15 requests per minute; 6 seconds keeps a margin.
const MinCallInterval = 6 * time.Second

// Limiter enforces a minimum interval between successive calls.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter creates a limiter with the given minimum interval.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Wait blocks until at least the configured interval has passed since
// the last recorded call. The first call never waits.
func (l *Limiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.last.IsZero() {
		return
	}
	elapsed := l.now().Sub(l.last)
	if elapsed < l.interval {
		wait := l.interval - elapsed
		slog.Debug("rate limit active, waiting before model call",
			slog.Duration("wait", wait))
		l.sleep(wait)
	}
}

// Record marks now as the time of the latest call. Called just before
// the request is issued, so the interval covers the request itself.
func (l *Limiter) Record() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last = l.now()
}
