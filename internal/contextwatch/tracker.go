package contextwatch

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds the fixed tracker parameters. They are configuration
// constants, never derived per message.
type Config struct {
	// ActiveWindow is how long after an explicit user interaction the
	// device counts as actively used.
	ActiveWindow time.Duration

	// OTPWindow is the sliding window for verification-message burst
	// detection.
	OTPWindow time.Duration

	// BurstThreshold is the OTP event count within OTPWindow above
	// which a possible attack is flagged.
	BurstThreshold int
}

// DefaultConfig returns the tracker defaults.
func DefaultConfig() Config {
	return Config{
		ActiveWindow:   10 * time.Minute,
		OTPWindow:      5 * time.Minute,
		BurstThreshold: 3,
	}
}

// Tracker holds the per-process behavioral state: the last explicit
// user interaction and a sliding window of OTP-message timestamps.
// State lives in memory only and survives until Reset. Safe for
// concurrent callers.
type Tracker struct {
	mu              sync.Mutex
	cfg             Config
	logger          *zap.Logger
	lastInteraction time.Time
	otpEvents       []time.Time
	now             func() time.Time
}

// NewTracker creates a context tracker.
func NewTracker(cfg Config, logger *zap.Logger) *Tracker {
	if cfg.ActiveWindow <= 0 {
		cfg.ActiveWindow = DefaultConfig().ActiveWindow
	}
	if cfg.OTPWindow <= 0 {
		cfg.OTPWindow = DefaultConfig().OTPWindow
	}
	if cfg.BurstThreshold <= 0 {
		cfg.BurstThreshold = DefaultConfig().BurstThreshold
	}
	return &Tracker{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// RecordInteraction notes an explicit user interaction.
func (t *Tracker) RecordInteraction() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastInteraction = t.now()
}

// IsContextSuspicious reports whether eventTime falls outside the
// active usage window: a sensitive message arriving while the user is
// not using the device is a classic OTP-phish setup.
func (t *Tracker) IsContextSuspicious(eventTime time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastInteraction.IsZero() {
		// No interaction ever recorded; nothing to compare against.
		return false
	}
	return eventTime.Sub(t.lastInteraction) > t.cfg.ActiveWindow
}

// RecordOTPEvent appends a verification-message timestamp to the
// sliding window.
func (t *Tracker) RecordOTPEvent() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.otpEvents = append(t.otpEvents, now)
	t.pruneLocked(now)
}

// IsPossibleAttack reports whether the OTP event count within the
// window exceeds the burst threshold, indicating automated OTP
// flooding or account-takeover probing.
func (t *Tracker) IsPossibleAttack() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(t.now())
	if len(t.otpEvents) > t.cfg.BurstThreshold {
		t.logger.Warn("OTP burst above threshold",
			zap.Int("events_in_window", len(t.otpEvents)),
			zap.Int("threshold", t.cfg.BurstThreshold))
		return true
	}
	return false
}

// Reset clears all tracked state. Used on explicit user data clear.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastInteraction = time.Time{}
	t.otpEvents = nil
}

func (t *Tracker) pruneLocked(now time.Time) {
	cutoff := now.Add(-t.cfg.OTPWindow)
	kept := t.otpEvents[:0]
	for _, ts := range t.otpEvents {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	t.otpEvents = kept
}
