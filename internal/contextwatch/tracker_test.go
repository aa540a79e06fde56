package contextwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeClock drives the tracker's time source in tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)}
	tracker := NewTracker(DefaultConfig(), zap.NewNop())
	tracker.now = clock.now
	return tracker, clock
}

func TestIsContextSuspiciousWithoutInteraction(t *testing.T) {
	tracker, clock := newTestTracker()

	// No interaction ever recorded: nothing to compare against.
	assert.False(t, tracker.IsContextSuspicious(clock.t))
}

func TestIsContextSuspiciousInsideWindow(t *testing.T) {
	tracker, clock := newTestTracker()

	tracker.RecordInteraction()
	clock.advance(5 * time.Minute)

	assert.False(t, tracker.IsContextSuspicious(clock.t))
}

func TestIsContextSuspiciousOutsideWindow(t *testing.T) {
	tracker, clock := newTestTracker()

	tracker.RecordInteraction()
	clock.advance(11 * time.Minute)

	assert.True(t, tracker.IsContextSuspicious(clock.t))
}

func TestIsPossibleAttackBelowThreshold(t *testing.T) {
	tracker, _ := newTestTracker()

	for i := 0; i < 3; i++ {
		tracker.RecordOTPEvent()
	}

	// Exactly at the threshold is still normal traffic.
	assert.False(t, tracker.IsPossibleAttack())
}

func TestIsPossibleAttackAboveThreshold(t *testing.T) {
	tracker, _ := newTestTracker()

	for i := 0; i < 4; i++ {
		tracker.RecordOTPEvent()
	}

	assert.True(t, tracker.IsPossibleAttack())
}

func TestOTPEventsExpireFromWindow(t *testing.T) {
	tracker, clock := newTestTracker()

	for i := 0; i < 4; i++ {
		tracker.RecordOTPEvent()
	}
	assert.True(t, tracker.IsPossibleAttack())

	clock.advance(6 * time.Minute)
	assert.False(t, tracker.IsPossibleAttack())
}

func TestOTPBurstSlidingWindow(t *testing.T) {
	tracker, clock := newTestTracker()

	// Three events spread over four minutes, then a fourth inside the
	// same five-minute window.
	tracker.RecordOTPEvent()
	clock.advance(2 * time.Minute)
	tracker.RecordOTPEvent()
	clock.advance(2 * time.Minute)
	tracker.RecordOTPEvent()
	tracker.RecordOTPEvent()

	assert.True(t, tracker.IsPossibleAttack())

	// The first event falls out of the window; three remain.
	clock.advance(2 * time.Minute)
	assert.False(t, tracker.IsPossibleAttack())
}

func TestReset(t *testing.T) {
	tracker, clock := newTestTracker()

	tracker.RecordInteraction()
	for i := 0; i < 5; i++ {
		tracker.RecordOTPEvent()
	}
	clock.advance(11 * time.Minute)

	tracker.Reset()

	assert.False(t, tracker.IsContextSuspicious(clock.t))
	assert.False(t, tracker.IsPossibleAttack())
}

func TestNewTrackerAppliesDefaults(t *testing.T) {
	tracker := NewTracker(Config{}, zap.NewNop())

	assert.Equal(t, DefaultConfig().ActiveWindow, tracker.cfg.ActiveWindow)
	assert.Equal(t, DefaultConfig().OTPWindow, tracker.cfg.OTPWindow)
	assert.Equal(t, DefaultConfig().BurstThreshold, tracker.cfg.BurstThreshold)
}
