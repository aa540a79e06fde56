package qr

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/analyzer"
	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/fusion"
)

var (
	paymentPrefixes = []string{"upi://pay", "upi:", "bitcoin:", "ethereum:", "litecoin:", "tez://"}
	paymentKeywords = []string{"paytm", "phonepe", "gpay", "googlepay", "bhim", "netbanking", "@upi", "@ybl", "@okaxis", "@oksbi", "@paytm"}
	suspiciousPayee = regexp.MustCompile(`(?i)\b(free|lottery|prize|winner|lucky|reward|bonus|jackpot|cash)\w*\b`)
	httpURLRe       = regexp.MustCompile(`https?://[^\s"'<>]+`)
)

// Classify decides whether a QR payload initiates a payment. Payment
// payloads are scored under stricter thresholds.
func Classify(data string) core.QRType {
	lower := strings.ToLower(strings.TrimSpace(data))
	for _, prefix := range paymentPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return core.QRPayment
		}
	}
	if strings.Contains(lower, "pa=") && strings.Contains(lower, "am=") {
		return core.QRPayment
	}
	for _, kw := range paymentKeywords {
		if strings.Contains(lower, kw) {
			return core.QRPayment
		}
	}
	return core.QRNonPayment
}

// Analyzer routes QR payloads through content analysis plus the URL
// reputation provider and buckets the score under payment or
// non-payment thresholds.
type Analyzer struct {
	content    *analyzer.ContentAnalyzer
	engine     *fusion.Engine
	reputation core.URLReputationChecker
	logger     *zap.Logger
}

// NewAnalyzer creates a new QR analyzer.
func NewAnalyzer(
	content *analyzer.ContentAnalyzer,
	engine *fusion.Engine,
	reputation core.URLReputationChecker,
	logger *zap.Logger,
) *Analyzer {
	return &Analyzer{
		content:    content,
		engine:     engine,
		reputation: reputation,
		logger:     logger,
	}
}

// Analyze scores a QR payload. Payment payloads use the stricter
// threshold table; the reputation provider's degraded mode is surfaced
// in the explanation rather than hidden.
func (a *Analyzer) Analyze(ctx context.Context, data string) core.QRVerdict {
	qrType := Classify(data)
	contentVerdict := a.content.Analyze(data)

	score := int(a.engine.ContentRisk(contentVerdict))
	var redFlags []string
	var details []string

	if qrType == core.QRPayment {
		if payee := a.suspiciousPayeeName(data); payee != "" {
			score += 30
			redFlags = append(redFlags, fmt.Sprintf("suspicious payee name %q", payee))
		}
	}

	reputationUnsafe := false
	if link := httpURLRe.FindString(data); link != "" {
		rep, err := a.reputation.Check(ctx, link)
		if err != nil {
			// Provider contract is fail-open; treat a hard error the same.
			details = append(details, "reputation check failed; degraded mode")
		} else if !rep.IsSafe {
			reputationUnsafe = true
			score += 40
			redFlags = append(redFlags, "linked URL flagged by reputation provider: "+rep.Details)
		} else {
			details = append(details, "linked URL reputation: "+rep.Details)
		}
	}

	thresholds := fusion.NonPaymentThresholds
	if qrType == core.QRPayment {
		thresholds = fusion.PaymentThresholds
	}
	finalScore := core.ClampScore(score)
	level := thresholds.Level(finalScore)
	isFraud := int(finalScore) >= thresholds.HighRisk

	confidence := 70
	if len(contentVerdict.FraudPatterns) > 0 {
		confidence += 10
	}
	if reputationUnsafe {
		confidence += 10
	}
	if len(contentVerdict.FraudPatterns) == 0 && len(redFlags) == 0 {
		confidence -= 10
	}
	if confidence > 98 {
		confidence = 98
	}
	if confidence < 30 {
		confidence = 30
	}

	redFlags = append(redFlags, contentVerdict.FraudPatterns...)
	redFlags = append(redFlags, contentVerdict.SuspiciousElements...)

	details = append([]string{
		fmt.Sprintf("QR classified %s; scored under %s thresholds", qrType, strings.ToLower(string(qrType))),
	}, details...)

	explanation := core.Explanation{
		Summary:          fmt.Sprintf("QR risk %s (score %d/100)", level, finalScore),
		DetailedAnalysis: strings.Join(details, ". "),
		RedFlags:         redFlags,
		Recommendations:  a.recommendations(qrType, level),
	}

	a.logger.Debug("QR analysis complete",
		zap.String("type", string(qrType)),
		zap.Int("score", int(finalScore)),
		zap.String("level", string(level)))

	return core.QRVerdict{
		QRType:          qrType,
		IsFraud:         isFraud,
		ThreatLevel:     level,
		ConfidenceScore: core.Score(confidence),
		Explanation:     explanation,
		ContentAnalysis: contentVerdict,
	}
}

// suspiciousPayeeName inspects the pa= and pn= parameters of a UPI
// payload for bait wording.
func (a *Analyzer) suspiciousPayeeName(data string) string {
	parsed, err := url.Parse(data)
	if err != nil {
		return ""
	}
	query := parsed.Query()
	for _, param := range []string{"pn", "pa"} {
		if v := query.Get(param); v != "" && suspiciousPayee.MatchString(v) {
			return v
		}
	}
	return ""
}

func (a *Analyzer) recommendations(qrType core.QRType, level core.ThreatLevel) []string {
	if level == core.ThreatSafe {
		return []string{"No action needed; confirm the payee before paying"}
	}
	recs := []string{"Do not proceed with this QR code"}
	if qrType == core.QRPayment {
		recs = append(recs, "Verify the payee identity through the official app before any payment")
	}
	if level == core.ThreatHighRisk || level == core.ThreatCritical {
		recs = append(recs, "Report the QR source; report to the 1930 cyber crime helpline if money was paid")
	}
	return recs
}
