package report

import (
	"testing"
	"time"
)

// fakeClock drives a Limiter without real sleeping.
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(c *fakeClock) *Limiter {
	l := NewLimiter(MinCallInterval)
	l.now = c.Now
	l.sleep = c.Sleep
	return l
}

func TestLimiter_FirstCallNeverWaits(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	l.Wait()
	l.Record()

	if len(clock.slept) != 0 {
		t.Errorf("first call slept %v, want no sleep", clock.slept)
	}
}

func TestLimiter_WaitsOutRemainingInterval(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	l.Wait()
	l.Record()
	clock.Advance(2 * time.Second)
	l.Wait()

	if len(clock.slept) != 1 {
		t.Fatalf("slept %d times, want 1", len(clock.slept))
	}
	if got, want := clock.slept[0], 4*time.Second; got != want {
		t.Errorf("slept %v, want %v", got, want)
	}
}

func TestLimiter_NoWaitAfterIntervalElapsed(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	l.Wait()
	l.Record()
	clock.Advance(MinCallInterval + time.Second)
	l.Wait()

	if len(clock.slept) != 0 {
		t.Errorf("slept %v, want no sleep after interval elapsed", clock.slept)
	}
}

func TestLimiter_SecondDispatchRespectsInterval(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(clock)

	l.Wait()
	l.Record()
	first := clock.Now()

	clock.Advance(time.Second)
	l.Wait()
	l.Record()

	if gap := clock.Now().Sub(first); gap < MinCallInterval {
		t.Errorf("second dispatch %v after the first, want at least %v", gap, MinCallInterval)
	}
}
