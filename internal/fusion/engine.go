package fusion

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
)

// Fusion modes reported in verdicts.
const (
	ModeMLPrimary   = "ml_primary"
	ModeTraditional = "traditional"
)

// Channel weights and trigger thresholds. The ML channel dominates when
// available; within the heuristic channel, content outweighs sender.
const (
	mlWeight          = 0.7
	traditionalWeight = 0.3
	whoWeight         = 0.4
	whatWeight        = 0.6

	mlFraudThreshold          = 70
	traditionalFraudThreshold = 60
)

// urgencyRisk maps urgency levels to their whatRisk contribution.
var urgencyRisk = map[core.UrgencyLevel]int{
	core.UrgencyNone:    0,
	core.UrgencyLow:     8,
	core.UrgencyMedium:  18,
	core.UrgencyHigh:    30,
	core.UrgencyExtreme: 45,
}

// Thresholds maps a numeric risk score onto the four-level
// SAFE..CRITICAL taxonomy. Lower bounds, inclusive.
type Thresholds struct {
	Critical   int
	HighRisk   int
	Suspicious int
}

var (
	// PaymentThresholds are the stricter cutoffs for payment QR
	// payloads: a false negative costs money.
	PaymentThresholds = Thresholds{Critical: 70, HighRisk: 50, Suspicious: 30}

	// NonPaymentThresholds apply to informational QR payloads.
	NonPaymentThresholds = Thresholds{Critical: 90, HighRisk: 70, Suspicious: 45}

	// MessageThresholds mirror the SMS cutoffs on the SAFE..CRITICAL
	// taxonomy for the generic message path.
	MessageThresholds = Thresholds{Critical: 80, HighRisk: 60, Suspicious: 40}
)

// Level buckets a risk score under the given thresholds.
func (t Thresholds) Level(score core.Score) core.ThreatLevel {
	switch {
	case int(score) >= t.Critical:
		return core.ThreatCritical
	case int(score) >= t.HighRisk:
		return core.ThreatHighRisk
	case int(score) >= t.Suspicious:
		return core.ThreatSuspicious
	default:
		return core.ThreatSafe
	}
}

// Engine deterministically combines the partial analysis signals into
// one verdict. It is pure: no state, no I/O, no randomness.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new risk fusion engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Combine fuses the sender, content, ML and context signals. When the
// ML signal is present the final score blends both channels; when it is
// unavailable the engine ignores the ML channel entirely rather than
// reading its absence as a safety signal.
func (e *Engine) Combine(
	sender core.SenderVerdict,
	content core.ContentVerdict,
	ml core.MLSignal,
	flags core.ContextFlags,
) core.CombinedVerdict {
	who := e.whoRisk(sender)
	what := e.whatRisk(content)
	traditional := float64(who)*whoWeight + float64(what)*whatWeight

	verdict := core.CombinedVerdict{
		SenderAnalysis:  sender,
		ContentAnalysis: content,
	}

	if mlVerdict, ok := ml.Verdict(); ok {
		mlScore := math.Round(mlVerdict.Confidence * 100)
		final := mlScore*mlWeight + traditional*traditionalWeight

		verdict.FusionMode = ModeMLPrimary
		verdict.RiskScore = core.ClampScore(int(math.Round(final)))
		verdict.IsFraud = mlVerdict.IsFraud || final >= mlFraudThreshold

		confidence := int(math.Round(mlVerdict.Confidence*80)) + 20
		if mlAgreesWithSender(mlVerdict, sender) {
			confidence += 10
		}
		verdict.ConfidenceScore = core.ClampScore(confidence)
	} else {
		verdict.FusionMode = ModeTraditional
		verdict.RiskScore = core.ClampScore(int(math.Round(traditional)))
		verdict.IsFraud = traditional >= traditionalFraudThreshold ||
			sender.Legitimacy == core.LegitimacyFraudulent ||
			(len(content.FraudPatterns) >= 3 && content.UrgencyLevel == core.UrgencyExtreme)
		verdict.ConfidenceScore = e.traditionalConfidence(sender, content)
	}

	verdict.RiskLevel = riskLevelForScore(verdict.RiskScore)
	verdict.Explanation = e.explain(verdict, ml, flags)

	e.logger.Debug("Fused risk signals",
		zap.Int("who_risk", who),
		zap.Int("what_risk", what),
		zap.Int("final_score", int(verdict.RiskScore)),
		zap.String("mode", verdict.FusionMode),
		zap.Bool("is_fraud", verdict.IsFraud))
	return verdict
}

// ContentRisk exposes the content-channel score for callers that have
// no sender signal, the QR path in particular.
func (e *Engine) ContentRisk(content core.ContentVerdict) core.Score {
	return core.Score(e.whatRisk(content))
}

// whoRisk scores the sender channel from reputation, legitimacy and red
// flags.
func (e *Engine) whoRisk(sender core.SenderVerdict) int {
	risk := 100 - int(sender.Reputation)
	switch sender.Legitimacy {
	case core.LegitimacyFraudulent:
		risk += 50
	case core.LegitimacySuspicious:
		risk += 30
	case core.LegitimacyLegitimate:
		risk -= 20
	default:
		risk += 10
	}
	risk += 15 * len(sender.RedFlags)
	return int(core.ClampScore(risk))
}

// whatRisk scores the content channel from patterns, urgency, tactics
// and suspicious elements, with bonuses for the two highest-signal
// pattern combinations.
func (e *Engine) whatRisk(content core.ContentVerdict) int {
	risk := 18 * len(content.FraudPatterns)
	risk += urgencyRisk[content.UrgencyLevel]
	risk += 12 * len(content.SocialEngineeringTactics)
	risk += 8 * len(content.SuspiciousElements)

	if content.HasPattern(rules.TagThreat) && content.HasPattern(rules.TagHarvesting) {
		risk += 25
	}
	if content.HasPattern(rules.TagUrgency) && content.HasPattern(rules.TagSuspiciousLinks) {
		risk += 20
	}
	return int(core.ClampScore(risk))
}

// traditionalConfidence scores how sure the heuristic-only verdict is.
func (e *Engine) traditionalConfidence(sender core.SenderVerdict, content core.ContentVerdict) core.Score {
	confidence := 70
	switch sender.Legitimacy {
	case core.LegitimacyLegitimate:
		confidence += 15
	case core.LegitimacyFraudulent:
		confidence += 20
	case core.LegitimacyUnknown:
		confidence -= 15
	}
	if len(content.FraudPatterns) > 0 {
		confidence += 10
	}
	if len(content.SocialEngineeringTactics) > 2 {
		confidence += 10
	}
	if len(content.FraudPatterns) == 0 &&
		len(content.SuspiciousElements) == 0 &&
		len(sender.RedFlags) == 0 {
		confidence -= 10
	}
	if confidence < 30 {
		confidence = 30
	}
	if confidence > 98 {
		confidence = 98
	}
	return core.Score(confidence)
}

func mlAgreesWithSender(ml core.MLVerdict, sender core.SenderVerdict) bool {
	if ml.IsFraud {
		return sender.Legitimacy == core.LegitimacyFraudulent ||
			sender.Legitimacy == core.LegitimacySuspicious
	}
	return sender.Legitimacy == core.LegitimacyLegitimate
}

// riskLevelForScore buckets the final score on the SMS taxonomy.
func riskLevelForScore(score core.Score) core.RiskLevel {
	switch {
	case score >= 80:
		return core.RiskCritical
	case score >= 60:
		return core.RiskHigh
	case score >= 40:
		return core.RiskMedium
	default:
		return core.RiskLow
	}
}

// explain assembles the deterministic explanation: summary, detailed
// analysis naming the fusion mode and any degraded providers, the
// collected red flags, and recommendations matched to the severity.
func (e *Engine) explain(v core.CombinedVerdict, ml core.MLSignal, flags core.ContextFlags) core.Explanation {
	var exp core.Explanation

	if v.IsFraud {
		exp.Summary = fmt.Sprintf("Potential fraud detected (risk %s, score %d/100)", v.RiskLevel, v.RiskScore)
	} else if v.RiskLevel == core.RiskMedium {
		exp.Summary = fmt.Sprintf("Some suspicious indicators present (score %d/100)", v.RiskScore)
	} else {
		exp.Summary = fmt.Sprintf("No significant fraud indicators (score %d/100)", v.RiskScore)
	}

	var details []string
	if v.FusionMode == ModeMLPrimary {
		mlVerdict, _ := ml.Verdict()
		details = append(details, fmt.Sprintf(
			"ML classifier verdict: fraud=%t confidence=%.2f", mlVerdict.IsFraud, mlVerdict.Confidence))
	} else if reason := ml.Reason(); reason != "" {
		details = append(details, fmt.Sprintf(
			"ML verdict unavailable (%s); heuristic analysis only", reason))
	} else {
		details = append(details, "ML analysis disabled; heuristic analysis only")
	}
	details = append(details, fmt.Sprintf(
		"sender classified %s (%s, reputation %d/100)",
		v.SenderAnalysis.Legitimacy, v.SenderAnalysis.SenderType, v.SenderAnalysis.Reputation))
	if n := len(v.ContentAnalysis.FraudPatterns); n > 0 {
		details = append(details, fmt.Sprintf(
			"%d fraud pattern(s): %s; urgency %s",
			n, strings.Join(v.ContentAnalysis.FraudPatterns, ", "), v.ContentAnalysis.UrgencyLevel))
	} else {
		details = append(details, "no fraud patterns in message content")
	}
	if flags.Suspicious {
		details = append(details, "received outside the active usage window")
	}
	if flags.FrequencyAlert {
		details = append(details, "part of an unusual burst of verification messages")
	}
	exp.DetailedAnalysis = strings.Join(details, ". ")

	exp.RedFlags = append(exp.RedFlags, v.SenderAnalysis.RedFlags...)
	exp.RedFlags = append(exp.RedFlags, v.ContentAnalysis.FraudPatterns...)
	exp.RedFlags = append(exp.RedFlags, v.ContentAnalysis.SuspiciousElements...)

	switch {
	case v.IsFraud:
		exp.Recommendations = append(exp.Recommendations,
			"Do not click links or share OTPs, PINs or passwords",
			"Block and report the sender",
			"Report to the 1930 cyber crime helpline if money was shared")
	case v.RiskLevel == core.RiskMedium:
		exp.Recommendations = append(exp.Recommendations,
			"Verify directly with the institution through official channels",
			"Avoid acting on links or callback numbers in the message")
	default:
		exp.Recommendations = append(exp.Recommendations,
			"No action needed; stay alert for unusual requests")
	}
	return exp
}
