package mlmodel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

// fakeClassifier is a scriptable MLClassifier for adapter tests.
type fakeClassifier struct {
	loaded     bool
	loadErr    error
	verdict    *core.MLVerdict
	classifyFn func(ctx context.Context, text string) (*core.MLVerdict, error)
	lastInput  string
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*core.MLVerdict, error) {
	f.lastInput = text
	if f.classifyFn != nil {
		return f.classifyFn(ctx, text)
	}
	return f.verdict, nil
}

func (f *fakeClassifier) LoadModel(ctx context.Context) error {
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = true
	return nil
}

func (f *fakeClassifier) IsLoaded() bool {
	return f.loaded
}

func TestPredictNilClassifier(t *testing.T) {
	a := NewAdapter(nil, time.Second, zap.NewNop())

	signal := a.Predict(context.Background(), "SBIINB", "hello")

	assert.False(t, signal.Available())
	assert.Equal(t, "no classifier configured", signal.Reason())
	assert.True(t, a.Degraded())
}

func TestPredictSuccess(t *testing.T) {
	classifier := &fakeClassifier{
		verdict: &core.MLVerdict{IsFraud: true, Confidence: 0.85, Details: "phishing"},
	}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	signal := a.Predict(context.Background(), "SBI12345", "share your otp")

	require.True(t, signal.Available())
	verdict, ok := signal.Verdict()
	require.True(t, ok)
	assert.True(t, verdict.IsFraud)
	assert.InDelta(t, 0.85, verdict.Confidence, 1e-9)
	assert.False(t, a.Degraded())
	assert.Equal(t, "Sender: SBI12345\nMessage: share your otp", classifier.lastInput)
}

func TestPredictOmitsEmptySenderLabel(t *testing.T) {
	classifier := &fakeClassifier{verdict: &core.MLVerdict{}}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	a.Predict(context.Background(), "", "clipboard text")

	assert.Equal(t, "Message: clipboard text", classifier.lastInput)
}

func TestPredictLoadFailure(t *testing.T) {
	classifier := &fakeClassifier{loadErr: errors.New("weights missing")}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	signal := a.Predict(context.Background(), "", "text")

	assert.False(t, signal.Available())
	assert.Contains(t, signal.Reason(), "model not loaded")
	assert.True(t, a.Degraded())
}

func TestPredictClassifyError(t *testing.T) {
	classifier := &fakeClassifier{
		loaded: true,
		classifyFn: func(ctx context.Context, text string) (*core.MLVerdict, error) {
			return nil, errors.New("backend unreachable")
		},
	}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	signal := a.Predict(context.Background(), "", "text")

	assert.False(t, signal.Available())
	assert.Contains(t, signal.Reason(), "prediction failed")
}

func TestPredictTimeout(t *testing.T) {
	classifier := &fakeClassifier{
		loaded: true,
		classifyFn: func(ctx context.Context, text string) (*core.MLVerdict, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	a := NewAdapter(classifier, 10*time.Millisecond, zap.NewNop())

	signal := a.Predict(context.Background(), "", "text")

	assert.False(t, signal.Available())
	assert.True(t, a.Degraded())
}

func TestPredictPanic(t *testing.T) {
	classifier := &fakeClassifier{
		loaded: true,
		classifyFn: func(ctx context.Context, text string) (*core.MLVerdict, error) {
			panic("index out of range")
		},
	}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	signal := a.Predict(context.Background(), "", "text")

	assert.False(t, signal.Available())
	assert.Contains(t, signal.Reason(), "classifier panic")
	assert.True(t, a.Degraded())
}

func TestPredictNilVerdict(t *testing.T) {
	classifier := &fakeClassifier{loaded: true}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	signal := a.Predict(context.Background(), "", "text")

	assert.False(t, signal.Available())
	assert.Equal(t, "classifier returned no verdict", signal.Reason())
}

func TestPredictNormalizesConfidence(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative clamps to zero", -0.5, 0},
		{"unit scale passes through", 0.42, 0.42},
		{"percentage scale divides", 85, 0.85},
		{"absurd value clamps to one", 250, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &fakeClassifier{
				loaded:  true,
				verdict: &core.MLVerdict{Confidence: tt.in},
			}
			a := NewAdapter(classifier, time.Second, zap.NewNop())

			signal := a.Predict(context.Background(), "", "text")

			require.True(t, signal.Available())
			verdict, _ := signal.Verdict()
			assert.InDelta(t, tt.want, verdict.Confidence, 1e-9)
		})
	}
}

func TestDegradedRecoversAfterSuccess(t *testing.T) {
	classifier := &fakeClassifier{loaded: true}
	a := NewAdapter(classifier, time.Second, zap.NewNop())

	a.Predict(context.Background(), "", "text")
	assert.True(t, a.Degraded())

	classifier.verdict = &core.MLVerdict{Confidence: 0.5}
	a.Predict(context.Background(), "", "text")
	assert.False(t, a.Degraded())
}
