package reputation

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

// StaticChecker is a URLReputationChecker backed by an in-process
// domain blocklist. It stands in for the network reputation services
// and follows the same fail-open policy: anything it cannot parse or
// does not know is reported safe with an explicit detail string, so a
// lookup failure is never mistaken for a clean bill of health.
type StaticChecker struct {
	blocked []string
	logger  *zap.Logger
}

// NewStaticChecker creates a checker over a normalized domain blocklist.
func NewStaticChecker(blockedDomains []string, logger *zap.Logger) *StaticChecker {
	normalized := make([]string, 0, len(blockedDomains))
	for _, d := range blockedDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			normalized = append(normalized, d)
		}
	}
	return &StaticChecker{
		blocked: normalized,
		logger:  logger,
	}
}

// Check reports whether the URL's host appears on the blocklist.
func (c *StaticChecker) Check(ctx context.Context, rawURL string) (*core.URLReputation, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Fail open, but say so.
		return &core.URLReputation{
			IsSafe:  true,
			Details: "URL could not be parsed; reputation unknown",
		}, nil
	}

	host := strings.ToLower(parsed.Hostname())
	for _, domain := range c.blocked {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			c.logger.Warn("URL host on blocklist",
				zap.String("host", host),
				zap.String("domain", domain))
			return &core.URLReputation{
				IsSafe:  false,
				Details: "domain " + domain + " is on the local blocklist",
			}, nil
		}
	}
	return &core.URLReputation{
		IsSafe:  true,
		Details: "not on the local blocklist",
	}, nil
}
