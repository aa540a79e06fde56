package core

import (
	"math"
	"time"
)

// Score is the canonical 0-100 risk/confidence scale used across the
// engine. All external confidence representations (the ML classifier's
// 0..1 float in particular) are converted at the boundary.
type Score int

// ClampScore bounds a raw integer to the canonical 0-100 range.
func ClampScore(n int) Score {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return Score(n)
}

// ScoreFromUnit converts a 0..1 confidence into a Score, rounding half up.
func ScoreFromUnit(f float64) Score {
	return ClampScore(int(math.Round(f * 100)))
}

// Unit converts a Score back to the 0..1 scale.
func (s Score) Unit() float64 {
	return float64(s) / 100
}

// SenderType classifies what kind of entity a sender identifier represents.
type SenderType string

const (
	SenderUnknown    SenderType = "unknown"
	SenderIndividual SenderType = "individual"
	SenderBusiness   SenderType = "business"
	SenderBank       SenderType = "bank"
	SenderGovernment SenderType = "government"
	SenderScammer    SenderType = "scammer"
)

// Legitimacy classifies whether a sender genuinely belongs to the
// organization it claims to represent.
type Legitimacy string

const (
	LegitimacyLegitimate Legitimacy = "legitimate"
	LegitimacySuspicious Legitimacy = "suspicious"
	LegitimacyFraudulent Legitimacy = "fraudulent"
	LegitimacyUnknown    Legitimacy = "unknown"
)

// UrgencyLevel is an ordered scale of time-pressure language intensity.
type UrgencyLevel int

const (
	UrgencyNone UrgencyLevel = iota
	UrgencyLow
	UrgencyMedium
	UrgencyHigh
	UrgencyExtreme
)

func (u UrgencyLevel) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	case UrgencyExtreme:
		return "extreme"
	default:
		return "none"
	}
}

// LanguageQuality is the outcome of the language-quality heuristic.
type LanguageQuality string

const (
	QualityProfessional LanguageQuality = "professional"
	QualityMixed        LanguageQuality = "mixed"
	QualityPoor         LanguageQuality = "poor"
)

// RiskLevel is the ordinal severity bucket used on the SMS path.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// ThreatLevel is the ordinal severity bucket used on the message and QR
// paths.
type ThreatLevel string

const (
	ThreatSafe       ThreatLevel = "SAFE"
	ThreatSuspicious ThreatLevel = "SUSPICIOUS"
	ThreatHighRisk   ThreatLevel = "HIGH_RISK"
	ThreatCritical   ThreatLevel = "CRITICAL"
)

// QRType classifies a QR payload as payment-initiating or informational.
// Payment payloads are held to stricter risk thresholds.
type QRType string

const (
	QRPayment    QRType = "PAYMENT"
	QRNonPayment QRType = "NON_PAYMENT"
)

// AnalysisInput is the immutable per-call input to the SMS analysis path.
type AnalysisInput struct {
	SenderInfo       string
	MessageContent   string
	ReceivedTime     time.Time
	UserLocation     string
	EnableMLAnalysis bool
}

// SenderVerdict is the pure classification of a sender identifier.
type SenderVerdict struct {
	SenderType SenderType
	Legitimacy Legitimacy
	Reputation Score
	RedFlags   []string
}

// ContentVerdict is the pure classification of message text.
type ContentVerdict struct {
	FraudPatterns            []string
	UrgencyLevel             UrgencyLevel
	SocialEngineeringTactics []string
	SuspiciousElements       []string
	LanguageQuality          LanguageQuality
}

// HasPattern reports whether a named fraud pattern was detected.
func (c ContentVerdict) HasPattern(tag string) bool {
	for _, p := range c.FraudPatterns {
		if p == tag {
			return true
		}
	}
	return false
}

// MLVerdict is the normalized output of the external fraud classifier.
type MLVerdict struct {
	IsFraud    bool
	Confidence float64
	Details    string
}

// MLSignal is a tagged optional MLVerdict. The zero value is
// unavailable, so fusion code cannot accidentally read an absent
// verdict as a not-fraud signal.
type MLSignal struct {
	verdict   MLVerdict
	available bool
	reason    string
}

// MLAvailable wraps a verdict the classifier actually produced.
func MLAvailable(v MLVerdict) MLSignal {
	return MLSignal{verdict: v, available: true}
}

// MLUnavailable records why no verdict could be produced.
func MLUnavailable(reason string) MLSignal {
	return MLSignal{reason: reason}
}

// Verdict returns the wrapped verdict and whether one is present.
func (s MLSignal) Verdict() (MLVerdict, bool) {
	return s.verdict, s.available
}

// Available reports whether the classifier produced a verdict.
func (s MLSignal) Available() bool {
	return s.available
}

// Reason describes why the signal is unavailable. Empty when available.
func (s MLSignal) Reason() string {
	return s.reason
}

// ContextFlags carries the stateful context-tracker outputs into fusion.
type ContextFlags struct {
	Suspicious     bool
	FrequencyAlert bool
}

// Explanation is the deterministic human-readable rationale attached to
// every verdict.
type Explanation struct {
	Summary          string
	DetailedAnalysis string
	RedFlags         []string
	Recommendations  []string
}

// CombinedVerdict is the terminal result of the SMS analysis path.
type CombinedVerdict struct {
	IsFraud         bool
	RiskLevel       RiskLevel
	RiskScore       Score
	ConfidenceScore Score
	Explanation     Explanation
	SenderAnalysis  SenderVerdict
	ContentAnalysis ContentVerdict
	FusionMode      string
	AnalyzedAt      time.Time
	ProcessingID    string
}

// MessageVerdict is the terminal result of the generic message path,
// which reports the four-level SAFE..CRITICAL taxonomy.
type MessageVerdict struct {
	IsFraud         bool
	ThreatLevel     ThreatLevel
	ConfidenceScore Score
	Explanation     Explanation
	SenderAnalysis  SenderVerdict
	ContentAnalysis ContentVerdict
	AnalyzedAt      time.Time
	ProcessingID    string
}

// QRVerdict is the terminal result of the QR analysis path.
type QRVerdict struct {
	QRType          QRType
	IsFraud         bool
	ThreatLevel     ThreatLevel
	ConfidenceScore Score
	Explanation     Explanation
	ContentAnalysis ContentVerdict
	AnalyzedAt      time.Time
	ProcessingID    string
}

// URLReputation is the answer from the external URL reputation provider.
type URLReputation struct {
	IsSafe  bool
	Details string
}

// CacheEntry is a previously computed verdict keyed by a digest of the
// sender and message content.
type CacheEntry struct {
	Key             string
	IsFraud         bool
	RiskLevel       string
	RiskScore       int
	ConfidenceScore int
	Summary         string
	LastSeen        time.Time
	ExpiresAt       time.Time
}
