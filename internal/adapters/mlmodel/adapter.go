package mlmodel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

// Adapter wraps the opaque external fraud classifier and normalizes its
// behavior for the fusion engine: it builds the exact text the
// classifier expects, converts confidences to the canonical 0..1 float,
// and absorbs every failure mode (load failure, prediction error,
// timeout, panic) into the documented unavailable signal. It never
// returns an error to the caller.
type Adapter struct {
	classifier core.MLClassifier
	timeout    time.Duration
	logger     *zap.Logger
	degraded   atomic.Bool
}

// NewAdapter creates a new ML verdict adapter.
func NewAdapter(classifier core.MLClassifier, timeout time.Duration, logger *zap.Logger) *Adapter {
	return &Adapter{
		classifier: classifier,
		timeout:    timeout,
		logger:     logger,
	}
}

// IsLoaded reports whether the wrapped classifier is ready.
func (a *Adapter) IsLoaded() bool {
	return a.classifier != nil && a.classifier.IsLoaded()
}

// Degraded reports whether the most recent prediction fell back to the
// unavailable signal.
func (a *Adapter) Degraded() bool {
	return a.degraded.Load()
}

// Predict runs the classifier over the labeled sender and content text.
// A timeout is treated identically to an unavailable model.
func (a *Adapter) Predict(ctx context.Context, senderInfo, content string) (signal core.MLSignal) {
	if a.classifier == nil {
		a.degraded.Store(true)
		return core.MLUnavailable("no classifier configured")
	}
	if !a.classifier.IsLoaded() {
		if err := a.classifier.LoadModel(ctx); err != nil {
			a.degraded.Store(true)
			a.logger.Warn("Classifier model failed to load", zap.Error(err))
			return core.MLUnavailable(fmt.Sprintf("model not loaded: %v", err))
		}
	}

	// A panicking classifier must not take the analysis down with it.
	defer func() {
		if r := recover(); r != nil {
			a.degraded.Store(true)
			a.logger.Error("Classifier panicked", zap.Any("panic", r))
			signal = core.MLUnavailable(fmt.Sprintf("classifier panic: %v", r))
		}
	}()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	verdict, err := a.classifier.Classify(ctx, buildModelInput(senderInfo, content))
	if err != nil {
		a.degraded.Store(true)
		a.logger.Warn("Classifier prediction failed", zap.Error(err))
		return core.MLUnavailable(fmt.Sprintf("prediction failed: %v", err))
	}
	if verdict == nil {
		a.degraded.Store(true)
		return core.MLUnavailable("classifier returned no verdict")
	}

	normalized := *verdict
	if normalized.Confidence < 0 {
		normalized.Confidence = 0
	}
	if normalized.Confidence > 1 {
		// Some providers report percentages.
		if normalized.Confidence <= 100 {
			normalized.Confidence /= 100
		} else {
			normalized.Confidence = 1
		}
	}

	a.degraded.Store(false)
	return core.MLAvailable(normalized)
}

// buildModelInput produces the fixed labeled representation the
// classifier was trained against. Content-only messages omit the
// sender label.
func buildModelInput(senderInfo, content string) string {
	if senderInfo == "" {
		return "Message: " + content
	}
	return "Sender: " + senderInfo + "\nMessage: " + content
}
