package reputation

import (
	"context"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

// NullChecker is the degraded-mode URLReputationChecker used when no
// provider is configured. It fails open with an explicit detail string.
type NullChecker struct{}

// NewNullChecker creates a checker that never blocks.
func NewNullChecker() *NullChecker {
	return &NullChecker{}
}

// Check always reports safe, flagging that lookups are disabled.
func (c *NullChecker) Check(ctx context.Context, rawURL string) (*core.URLReputation, error) {
	return &core.URLReputation{
		IsSafe:  true,
		Details: "reputation lookups disabled; degraded mode",
	}, nil
}
