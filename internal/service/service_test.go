package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/cache"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/mlmodel"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/reputation"
	"github.com/Shubhamprana/Shabari-sub003/internal/analyzer"
	"github.com/Shubhamprana/Shabari-sub003/internal/contextwatch"
	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/fusion"
	"github.com/Shubhamprana/Shabari-sub003/internal/metrics"
	"github.com/Shubhamprana/Shabari-sub003/internal/qr"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

type fakeClassifier struct {
	verdict *core.MLVerdict
	err     error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*core.MLVerdict, error) {
	return f.verdict, f.err
}

func (f *fakeClassifier) LoadModel(ctx context.Context) error { return nil }

func (f *fakeClassifier) IsLoaded() bool { return true }

func newTestService(t *testing.T, adapter *mlmodel.Adapter, verdictCache core.VerdictCache, m *metrics.Metrics, opts Options) *FraudDetectionService {
	t.Helper()
	logger := zap.NewNop()
	lib := rules.NewLibrary()
	engine := fusion.NewEngine(logger)
	contentAnalyzer := analyzer.NewContentAnalyzer(lib, logger)
	return NewFraudDetectionService(
		analyzer.NewSenderAnalyzer(lib, logger),
		contentAnalyzer,
		adapter,
		engine,
		qr.NewAnalyzer(contentAnalyzer, engine, reputation.NewNullChecker(), logger),
		contextwatch.NewTracker(contextwatch.DefaultConfig(), logger),
		verdictCache,
		utils.NewTextProcessor(logger),
		m,
		logger,
		opts,
	)
}

func TestAnalyzeSMSPhishingFromSpoofedSender(t *testing.T) {
	svc := newTestService(t, nil, nil, metrics.New(prometheus.NewRegistry()), Options{})

	verdict := svc.AnalyzeSMS(context.Background(), core.AnalysisInput{
		SenderInfo:     "SBI12345",
		MessageContent: "URGENT: Your account will be suspended. Share your OTP now http://bit.ly/abc123",
	})

	require.NotNil(t, verdict)
	assert.True(t, verdict.IsFraud)
	assert.Equal(t, core.RiskCritical, verdict.RiskLevel)
	assert.Equal(t, fusion.ModeTraditional, verdict.FusionMode)
	assert.NotEmpty(t, verdict.ProcessingID)
	assert.False(t, verdict.AnalyzedAt.IsZero())
	assert.NotEmpty(t, verdict.Explanation.RedFlags)
}

func TestAnalyzeSMSLegitimateBankAlert(t *testing.T) {
	svc := newTestService(t, nil, nil, metrics.New(prometheus.NewRegistry()), Options{})

	verdict := svc.AnalyzeSMS(context.Background(), core.AnalysisInput{
		SenderInfo:     "SBIINB",
		MessageContent: "Rs.500 debited from A/c X1234 on 01-08. Avl bal Rs.10000.",
	})

	require.NotNil(t, verdict)
	assert.False(t, verdict.IsFraud)
	assert.Equal(t, core.RiskLow, verdict.RiskLevel)
	assert.Equal(t, core.Score(0), verdict.RiskScore)
}

func TestAnalyzeSMSWithMLClassifier(t *testing.T) {
	classifier := &fakeClassifier{verdict: &core.MLVerdict{IsFraud: true, Confidence: 0.9, Details: "phishing"}}
	adapter := mlmodel.NewAdapter(classifier, time.Second, zap.NewNop())
	svc := newTestService(t, adapter, nil, metrics.New(prometheus.NewRegistry()), Options{MLEnabled: true})

	verdict := svc.AnalyzeSMS(context.Background(), core.AnalysisInput{
		SenderInfo:       "SBIINB",
		MessageContent:   "Please update your KYC details today",
		EnableMLAnalysis: true,
	})

	require.NotNil(t, verdict)
	// who 0, what 36: 0.7*90 + 0.3*21.6 rounds to 69; the classifier
	// verdict still forces the fraud flag.
	assert.Equal(t, fusion.ModeMLPrimary, verdict.FusionMode)
	assert.True(t, verdict.IsFraud)
	assert.Equal(t, core.Score(69), verdict.RiskScore)
	assert.Equal(t, core.RiskHigh, verdict.RiskLevel)
}

func TestAnalyzeSMSMLRequestedButDisabled(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := newTestService(t, nil, nil, m, Options{})

	verdict := svc.AnalyzeSMS(context.Background(), core.AnalysisInput{
		SenderInfo:       "SBIINB",
		MessageContent:   "Your parcel is out for delivery",
		EnableMLAnalysis: true,
	})

	require.NotNil(t, verdict)
	assert.Equal(t, fusion.ModeTraditional, verdict.FusionMode)
	// ML is off at the service level, so the degraded counter stays flat.
	assert.Equal(t, float64(0), testutil.ToFloat64(m.MLDegraded))
}

func TestAnalyzeSMSMLDegradedCounted(t *testing.T) {
	classifier := &fakeClassifier{err: assert.AnError}
	adapter := mlmodel.NewAdapter(classifier, time.Second, zap.NewNop())
	m := metrics.New(prometheus.NewRegistry())
	svc := newTestService(t, adapter, nil, m, Options{MLEnabled: true})

	verdict := svc.AnalyzeSMS(context.Background(), core.AnalysisInput{
		SenderInfo:       "SBIINB",
		MessageContent:   "Your parcel is out for delivery",
		EnableMLAnalysis: true,
	})

	require.NotNil(t, verdict)
	assert.Equal(t, fusion.ModeTraditional, verdict.FusionMode)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MLDegraded))
}

func TestAnalyzeSMSCacheRoundTrip(t *testing.T) {
	verdictCache := cache.NewMemoryCache(zap.NewNop(), time.Minute)
	defer verdictCache.Stop()
	m := metrics.New(prometheus.NewRegistry())
	svc := newTestService(t, nil, verdictCache, m, Options{CacheEnabled: true, CacheTTL: time.Minute})

	input := core.AnalysisInput{
		SenderInfo:     "SBI12345",
		MessageContent: "URGENT: verify your account at http://bit.ly/abc123",
	}

	first := svc.AnalyzeSMS(context.Background(), input)
	require.NotNil(t, first)
	assert.NotEqual(t, "cache", first.FusionMode)

	second := svc.AnalyzeSMS(context.Background(), input)
	require.NotNil(t, second)
	assert.Equal(t, "cache", second.FusionMode)
	assert.Equal(t, first.IsFraud, second.IsFraud)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.RiskScore, second.RiskScore)
	assert.Equal(t, "result served from cache", second.Explanation.DetailedAnalysis)
	assert.NotEqual(t, first.ProcessingID, second.ProcessingID)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CacheHits))
}

func TestAnalyzeSMSOTPBurst(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := newTestService(t, nil, nil, m, Options{})

	const burstElement = "unusual burst of verification messages"
	input := core.AnalysisInput{
		SenderInfo:     "VM-SHOPXY",
		MessageContent: "Your OTP is 123456. Do not share it with anyone.",
	}

	var last *core.CombinedVerdict
	for i := 0; i < 4; i++ {
		last = svc.AnalyzeSMS(context.Background(), input)
		require.NotNil(t, last)
		if i < 3 {
			assert.NotContains(t, last.ContentAnalysis.SuspiciousElements, burstElement)
		}
	}

	// The fourth verification message within the window exceeds the
	// burst threshold of three.
	assert.Contains(t, last.ContentAnalysis.SuspiciousElements, burstElement)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OTPBurstAlerts))
}

func TestAnalyzeSMSIdleContextFlag(t *testing.T) {
	svc := newTestService(t, nil, nil, metrics.New(prometheus.NewRegistry()), Options{})

	const idleElement = "sensitive message received outside active usage window"
	input := core.AnalysisInput{
		SenderInfo:     "VM-SHOPXY",
		MessageContent: "Your verification code is 987654",
		ReceivedTime:   time.Now().Add(30 * time.Minute),
	}

	svc.RecordUserInteraction()
	verdict := svc.AnalyzeSMS(context.Background(), input)
	require.NotNil(t, verdict)
	assert.Contains(t, verdict.ContentAnalysis.SuspiciousElements, idleElement)

	// A reset clears the interaction state, so the idle check no longer
	// has a baseline to compare against.
	svc.ResetContext()
	verdict = svc.AnalyzeSMS(context.Background(), input)
	require.NotNil(t, verdict)
	assert.NotContains(t, verdict.ContentAnalysis.SuspiciousElements, idleElement)
}

func TestAnalyzeMessageThreatMapping(t *testing.T) {
	svc := newTestService(t, nil, nil, metrics.New(prometheus.NewRegistry()), Options{})

	fraud := svc.AnalyzeMessage(context.Background(),
		"URGENT: Your account will be suspended. Share your OTP now http://bit.ly/abc123", "SBI12345")
	require.NotNil(t, fraud)
	assert.True(t, fraud.IsFraud)
	assert.Equal(t, core.ThreatCritical, fraud.ThreatLevel)
	assert.NotEmpty(t, fraud.ProcessingID)

	clean := svc.AnalyzeMessage(context.Background(), "See you at the station at 6", "+919876543210")
	require.NotNil(t, clean)
	assert.False(t, clean.IsFraud)
	assert.Equal(t, core.ThreatSafe, clean.ThreatLevel)
}

func TestAnalyzeMessageCachedKeepsThreatLevel(t *testing.T) {
	verdictCache := cache.NewMemoryCache(zap.NewNop(), time.Minute)
	defer verdictCache.Stop()
	svc := newTestService(t, nil, verdictCache, metrics.New(prometheus.NewRegistry()),
		Options{CacheEnabled: true, CacheTTL: time.Minute})

	const text = "URGENT: Your account will be suspended. Share your OTP now http://bit.ly/abc123"

	first := svc.AnalyzeMessage(context.Background(), text, "SBI12345")
	require.NotNil(t, first)
	assert.True(t, first.IsFraud)
	assert.Equal(t, core.ThreatCritical, first.ThreatLevel)

	// The replay must keep the stored risk score, so the threat level
	// cannot collapse to SAFE on a cache hit.
	second := svc.AnalyzeMessage(context.Background(), text, "SBI12345")
	require.NotNil(t, second)
	assert.True(t, second.IsFraud)
	assert.Equal(t, core.ThreatCritical, second.ThreatLevel)
}

func TestAnalyzeQRSetsProcessingMetadata(t *testing.T) {
	svc := newTestService(t, nil, nil, metrics.New(prometheus.NewRegistry()), Options{})

	verdict := svc.AnalyzeQR(context.Background(), "upi://pay?pa=grocerystore@okaxis&pn=GroceryStore&am=250")
	require.NotNil(t, verdict)
	assert.Equal(t, core.QRPayment, verdict.QRType)
	assert.NotEmpty(t, verdict.ProcessingID)
	assert.False(t, verdict.AnalyzedAt.IsZero())
}

func TestFailSafeVerdicts(t *testing.T) {
	// A nil metrics collaborator panics inside the pipeline; every
	// entry point must convert that into the manual-review fallback
	// instead of letting it escape.
	svc := newTestService(t, nil, nil, nil, Options{})

	sms := svc.AnalyzeSMS(context.Background(), core.AnalysisInput{
		SenderInfo:     "SBIINB",
		MessageContent: "hello",
	})
	require.NotNil(t, sms)
	assert.Equal(t, "failsafe", sms.FusionMode)
	assert.False(t, sms.IsFraud)
	assert.Equal(t, core.RiskMedium, sms.RiskLevel)
	assert.Equal(t, core.Score(30), sms.ConfidenceScore)
	assert.Equal(t, "Analysis could not be completed", sms.Explanation.Summary)
	assert.NotEmpty(t, sms.ProcessingID)

	msg := svc.AnalyzeMessage(context.Background(), "hello", "SBIINB")
	require.NotNil(t, msg)
	assert.Equal(t, core.ThreatSuspicious, msg.ThreatLevel)
	assert.False(t, msg.IsFraud)

	qrVerdict := svc.AnalyzeQR(context.Background(), "https://example.com")
	require.NotNil(t, qrVerdict)
	assert.Equal(t, core.QRNonPayment, qrVerdict.QRType)
	assert.Equal(t, core.ThreatSuspicious, qrVerdict.ThreatLevel)
}

func TestVerdictKeyDistinguishesSenderAndContent(t *testing.T) {
	// The separator byte keeps ("ab","c") and ("a","bc") from
	// colliding.
	assert.NotEqual(t, verdictKey("ab", "c"), verdictKey("a", "bc"))
	assert.Equal(t, verdictKey("SBIINB", "hello"), verdictKey("SBIINB", "hello"))
}
