package core

import (
	"context"
)

// MLClassifier defines the interface to the external opaque fraud
// classifier. Implementations may call remote models; the core never
// depends on their internals.
type MLClassifier interface {
	// Classify analyzes the prepared message text and returns a fraud
	// verdict. It may fail or time out; callers go through the
	// MLVerdictAdapter which absorbs both.
	Classify(ctx context.Context, text string) (*MLVerdict, error)

	// LoadModel prepares the classifier for use. It may fail.
	LoadModel(ctx context.Context) error

	// IsLoaded reports whether the classifier is ready to serve.
	IsLoaded() bool
}

// URLReputationChecker defines the interface to the external URL
// reputation provider. On network failure implementations must fail
// open: report safe with an explicit degraded-mode detail string.
type URLReputationChecker interface {
	Check(ctx context.Context, url string) (*URLReputation, error)
}

// VerdictCache defines the interface for caching analysis verdicts.
type VerdictCache interface {
	// Get retrieves a cached entry by digest key.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry.
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}
