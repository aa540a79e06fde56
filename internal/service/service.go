package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/mlmodel"
	"github.com/Shubhamprana/Shabari-sub003/internal/analyzer"
	"github.com/Shubhamprana/Shabari-sub003/internal/contextwatch"
	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/fusion"
	"github.com/Shubhamprana/Shabari-sub003/internal/metrics"
	"github.com/Shubhamprana/Shabari-sub003/internal/qr"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

var otpMessageRe = regexp.MustCompile(`(?i)\b(otp|one.?time\s+password|verification\s+code|security\s+code)\b`)

// FraudDetectionService is the entry point for all analysis paths. It
// wires the pure analyzers, the fusion engine, the stateful context
// tracker and the optional ML and cache adapters together, and is the
// one place where internal faults are converted into the fail-safe
// verdict instead of escaping to the caller.
type FraudDetectionService struct {
	senderAnalyzer  *analyzer.SenderAnalyzer
	contentAnalyzer *analyzer.ContentAnalyzer
	mlAdapter       *mlmodel.Adapter
	engine          *fusion.Engine
	qrAnalyzer      *qr.Analyzer
	tracker         *contextwatch.Tracker
	cache           core.VerdictCache
	textProcessor   *utils.TextProcessor
	metrics         *metrics.Metrics
	logger          *zap.Logger
	cacheEnabled    bool
	cacheTTL        time.Duration
	mlEnabled       bool
}

// Options carries the service-level toggles that come from configuration.
type Options struct {
	CacheEnabled bool
	CacheTTL     time.Duration
	MLEnabled    bool
}

// NewFraudDetectionService creates the fraud detection service.
func NewFraudDetectionService(
	senderAnalyzer *analyzer.SenderAnalyzer,
	contentAnalyzer *analyzer.ContentAnalyzer,
	mlAdapter *mlmodel.Adapter,
	engine *fusion.Engine,
	qrAnalyzer *qr.Analyzer,
	tracker *contextwatch.Tracker,
	cache core.VerdictCache,
	textProcessor *utils.TextProcessor,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) *FraudDetectionService {
	return &FraudDetectionService{
		senderAnalyzer:  senderAnalyzer,
		contentAnalyzer: contentAnalyzer,
		mlAdapter:       mlAdapter,
		engine:          engine,
		qrAnalyzer:      qrAnalyzer,
		tracker:         tracker,
		cache:           cache,
		textProcessor:   textProcessor,
		metrics:         m,
		logger:          logger,
		cacheEnabled:    opts.CacheEnabled,
		cacheTTL:        opts.CacheTTL,
		mlEnabled:       opts.MLEnabled,
	}
}

// AnalyzeSMS runs the full SMS pipeline. It never returns an error: an
// internal fault degrades to a verdict that is explicitly marked for
// manual review rather than silently safe.
func (s *FraudDetectionService) AnalyzeSMS(ctx context.Context, input core.AnalysisInput) (verdict *core.CombinedVerdict) {
	processingID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Analysis failed; returning fail-safe verdict",
				zap.Any("panic", r),
				zap.String("processing_id", processingID))
			verdict = s.failSafeVerdict(processingID)
		}
	}()

	s.metrics.AnalysesTotal.WithLabelValues("sms").Inc()
	return s.analyze(ctx, input, processingID)
}

// analyze is the shared pipeline behind the SMS and message paths.
func (s *FraudDetectionService) analyze(ctx context.Context, input core.AnalysisInput, processingID string) *core.CombinedVerdict {
	content := s.textProcessor.ProcessText(input.MessageContent, 0)

	// Serve identical messages from the cache when enabled.
	key := verdictKey(input.SenderInfo, content)
	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, key); err == nil {
			s.metrics.CacheHits.Inc()
			s.logger.Debug("Cache hit for message digest", zap.String("key", key))
			return s.verdictFromCache(entry, processingID)
		}
	}

	senderVerdict := s.senderAnalyzer.Analyze(input.SenderInfo)
	contentVerdict := s.contentAnalyzer.Analyze(content)

	// Update the behavioral trackers before fusing, so this message
	// counts toward its own burst window.
	flags := s.trackContext(content, contentVerdict, input.ReceivedTime)
	if flags.Suspicious {
		contentVerdict.SuspiciousElements = append(contentVerdict.SuspiciousElements,
			"sensitive message received outside active usage window")
	}
	if flags.FrequencyAlert {
		s.metrics.OTPBurstAlerts.Inc()
		contentVerdict.SuspiciousElements = append(contentVerdict.SuspiciousElements,
			"unusual burst of verification messages")
	}

	ml := s.mlSignal(ctx, input)
	if !ml.Available() && s.mlEnabled && input.EnableMLAnalysis {
		s.metrics.MLDegraded.Inc()
	}

	combined := s.engine.Combine(senderVerdict, contentVerdict, ml, flags)
	combined.AnalyzedAt = time.Now()
	combined.ProcessingID = processingID

	if combined.IsFraud {
		s.metrics.FraudDetected.WithLabelValues(string(combined.RiskLevel)).Inc()
	}

	if s.cacheEnabled && s.cache != nil {
		entry := &core.CacheEntry{
			Key:             key,
			IsFraud:         combined.IsFraud,
			RiskLevel:       string(combined.RiskLevel),
			RiskScore:       int(combined.RiskScore),
			ConfidenceScore: int(combined.ConfidenceScore),
			Summary:         combined.Explanation.Summary,
			LastSeen:        combined.AnalyzedAt,
			ExpiresAt:       combined.AnalyzedAt.Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return &combined
}

// AnalyzeMessage runs the generic message path (clipboard text, OCR'd
// photo text, chat forwards) and reports on the SAFE..CRITICAL
// taxonomy.
func (s *FraudDetectionService) AnalyzeMessage(ctx context.Context, text, senderID string) (verdict *core.MessageVerdict) {
	processingID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Message analysis failed; returning fail-safe verdict",
				zap.Any("panic", r),
				zap.String("processing_id", processingID))
			verdict = s.failSafeMessageVerdict(processingID)
		}
	}()

	s.metrics.AnalysesTotal.WithLabelValues("message").Inc()

	combined := s.analyze(ctx, core.AnalysisInput{
		SenderInfo:     senderID,
		MessageContent: text,
		ReceivedTime:   time.Now(),
	}, processingID)

	return &core.MessageVerdict{
		IsFraud:         combined.IsFraud,
		ThreatLevel:     fusion.MessageThresholds.Level(combined.RiskScore),
		ConfidenceScore: combined.ConfidenceScore,
		Explanation:     combined.Explanation,
		SenderAnalysis:  combined.SenderAnalysis,
		ContentAnalysis: combined.ContentAnalysis,
		AnalyzedAt:      combined.AnalyzedAt,
		ProcessingID:    processingID,
	}
}

// AnalyzeQR runs the QR path.
func (s *FraudDetectionService) AnalyzeQR(ctx context.Context, data string) (verdict *core.QRVerdict) {
	processingID := uuid.NewString()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("QR analysis failed; returning fail-safe verdict",
				zap.Any("panic", r),
				zap.String("processing_id", processingID))
			verdict = s.failSafeQRVerdict(processingID)
		}
	}()

	s.metrics.AnalysesTotal.WithLabelValues("qr").Inc()

	result := s.qrAnalyzer.Analyze(ctx, data)
	result.AnalyzedAt = time.Now()
	result.ProcessingID = processingID
	if result.IsFraud {
		s.metrics.FraudDetected.WithLabelValues(string(result.ThreatLevel)).Inc()
	}
	return &result
}

// RecordUserInteraction notes an explicit user interaction for the
// context tracker.
func (s *FraudDetectionService) RecordUserInteraction() {
	s.tracker.RecordInteraction()
}

// ResetContext clears the behavioral tracker state (explicit data clear).
func (s *FraudDetectionService) ResetContext() {
	s.tracker.Reset()
}

// trackContext mutates the behavioral trackers for this message and
// returns the resulting flags. Only sensitive (OTP-like) messages feed
// the frequency window or trip the idle-context check.
func (s *FraudDetectionService) trackContext(content string, cv core.ContentVerdict, receivedTime time.Time) core.ContextFlags {
	sensitive := otpMessageRe.MatchString(content)
	if !sensitive {
		return core.ContextFlags{}
	}

	s.tracker.RecordOTPEvent()
	if receivedTime.IsZero() {
		receivedTime = time.Now()
	}
	return core.ContextFlags{
		Suspicious:     s.tracker.IsContextSuspicious(receivedTime),
		FrequencyAlert: s.tracker.IsPossibleAttack(),
	}
}

// mlSignal produces the ML channel input for fusion. Disabled and
// unavailable states both yield an unavailable signal; the reason
// distinguishes them in the explanation.
func (s *FraudDetectionService) mlSignal(ctx context.Context, input core.AnalysisInput) core.MLSignal {
	if !s.mlEnabled {
		return core.MLUnavailable("")
	}
	if !input.EnableMLAnalysis {
		return core.MLUnavailable("")
	}
	if s.mlAdapter == nil {
		return core.MLUnavailable("no classifier configured")
	}
	return s.mlAdapter.Predict(ctx, input.SenderInfo, input.MessageContent)
}

func (s *FraudDetectionService) verdictFromCache(entry *core.CacheEntry, processingID string) *core.CombinedVerdict {
	return &core.CombinedVerdict{
		IsFraud:         entry.IsFraud,
		RiskLevel:       core.RiskLevel(entry.RiskLevel),
		RiskScore:       core.ClampScore(entry.RiskScore),
		ConfidenceScore: core.ClampScore(entry.ConfidenceScore),
		Explanation: core.Explanation{
			Summary:          entry.Summary,
			DetailedAnalysis: "result served from cache",
		},
		FusionMode:   "cache",
		AnalyzedAt:   time.Now(),
		ProcessingID: processingID,
	}
}

// failSafeVerdict is the documented fallback for internal faults:
// never silently safe, always flagged for manual review.
func (s *FraudDetectionService) failSafeVerdict(processingID string) *core.CombinedVerdict {
	return &core.CombinedVerdict{
		IsFraud:         false,
		RiskLevel:       core.RiskMedium,
		RiskScore:       40,
		ConfidenceScore: 30,
		Explanation: core.Explanation{
			Summary:          "Analysis could not be completed",
			DetailedAnalysis: "internal analysis fault; result is a conservative fallback, not a clean verdict",
			Recommendations:  []string{"Manual review required; treat the message as suspicious"},
		},
		FusionMode:   "failsafe",
		AnalyzedAt:   time.Now(),
		ProcessingID: processingID,
	}
}

func (s *FraudDetectionService) failSafeMessageVerdict(processingID string) *core.MessageVerdict {
	return &core.MessageVerdict{
		IsFraud:         false,
		ThreatLevel:     core.ThreatSuspicious,
		ConfidenceScore: 30,
		Explanation: core.Explanation{
			Summary:          "Analysis could not be completed",
			DetailedAnalysis: "internal analysis fault; result is a conservative fallback, not a clean verdict",
			Recommendations:  []string{"Manual review required; treat the message as suspicious"},
		},
		AnalyzedAt:   time.Now(),
		ProcessingID: processingID,
	}
}

func (s *FraudDetectionService) failSafeQRVerdict(processingID string) *core.QRVerdict {
	return &core.QRVerdict{
		QRType:          core.QRNonPayment,
		IsFraud:         false,
		ThreatLevel:     core.ThreatSuspicious,
		ConfidenceScore: 30,
		Explanation: core.Explanation{
			Summary:          "Analysis could not be completed",
			DetailedAnalysis: "internal analysis fault; result is a conservative fallback, not a clean verdict",
			Recommendations:  []string{"Manual review required; do not act on this QR code"},
		},
		AnalyzedAt:   time.Now(),
		ProcessingID: processingID,
	}
}

// verdictKey digests the sender and content into the cache key.
func verdictKey(sender, content string) string {
	h := sha256.New()
	h.Write([]byte(sender))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
