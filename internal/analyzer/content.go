package analyzer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
)

var (
	bodyPhoneRe   = regexp.MustCompile(`(?:^|[^0-9])((?:\+91[\s\-]?)?[6-9][0-9]{9})(?:[^0-9]|$)`)
	currencyRe    = regexp.MustCompile(`(?i)(?:rs\.?\s*[0-9]|₹\s*[0-9]|\binr\b|\brupees?\b|\blakhs?\b|\bcrores?\b|\brefund\b|\bwallet\s+balance\b)`)
	repeatPunctRe = regexp.MustCompile(`[!?]{2,}|\.{4,}`)
	wordSplitRe   = regexp.MustCompile(`[a-z]{4,}`)
)

// ContentAnalyzer scans free text for fraud cues using the shared rule
// library. Analysis is case-insensitive and a pure function of the
// input text.
type ContentAnalyzer struct {
	lib    *rules.Library
	logger *zap.Logger
}

// NewContentAnalyzer creates a new content analyzer.
func NewContentAnalyzer(lib *rules.Library, logger *zap.Logger) *ContentAnalyzer {
	return &ContentAnalyzer{
		lib:    lib,
		logger: logger,
	}
}

// Analyze extracts fraud patterns, urgency, social-engineering tactics
// and other suspicious elements from the message text. Checks are
// additive; a single message can carry several patterns at once.
func (a *ContentAnalyzer) Analyze(text string) core.ContentVerdict {
	verdict := core.ContentVerdict{LanguageQuality: core.QualityProfessional}
	if strings.TrimSpace(text) == "" {
		return verdict
	}

	urgency := core.UrgencyNone
	raise := func(min core.UrgencyLevel) {
		if urgency < min {
			urgency = min
		}
	}
	addPattern := func(tag string) {
		if !contains(verdict.FraudPatterns, tag) {
			verdict.FraudPatterns = append(verdict.FraudPatterns, tag)
		}
	}

	// Urgency and time pressure.
	if a.lib.MatchAny(rules.CategoryUrgency, text) {
		addPattern(rules.TagUrgency)
		raise(core.UrgencyHigh)
	}

	// Threats and account actions.
	if a.lib.MatchAny(rules.CategoryThreat, text) {
		addPattern(rules.TagThreat)
		raise(core.UrgencyMedium)
	}

	// Rewards and prizes.
	if a.lib.MatchAny(rules.CategoryReward, text) {
		addPattern(rules.TagReward)
	}

	// Credential, OTP and link harvesting.
	if a.lib.MatchAny(rules.CategoryHarvesting, text) {
		addPattern(rules.TagHarvesting)
		raise(core.UrgencyMedium)
	}

	// Social engineering phrasing; each matched rule contributes a
	// named tactic.
	for _, r := range a.lib.MatchAll(rules.CategorySocialEngineering, text) {
		addPattern(rules.TagSocialEng)
		verdict.SocialEngineeringTactics = append(verdict.SocialEngineeringTactics, r.Note)
	}

	// Language quality heuristic.
	issues := a.languageIssues(text)
	switch {
	case len(issues) >= 3:
		verdict.LanguageQuality = core.QualityPoor
		verdict.SuspiciousElements = append(verdict.SuspiciousElements,
			"poor language quality: "+strings.Join(issues, ", "))
	case len(issues) > 0:
		verdict.LanguageQuality = core.QualityMixed
	}

	// Suspicious links.
	for _, r := range a.lib.MatchAll(rules.CategorySuspiciousLink, text) {
		addPattern(rules.TagSuspiciousLinks)
		verdict.SuspiciousElements = append(verdict.SuspiciousElements,
			"suspicious link: "+r.Note)
	}

	// Callback numbers embedded in the body.
	if bodyPhoneRe.MatchString(text) {
		verdict.SuspiciousElements = append(verdict.SuspiciousElements,
			"additional phone numbers for callback")
	}

	// Financial vocabulary is only suspicious alongside fraud cues;
	// legitimate transaction alerts are full of it.
	if len(verdict.FraudPatterns) > 0 && currencyRe.MatchString(text) {
		verdict.SuspiciousElements = append(verdict.SuspiciousElements,
			"financial terms combined with fraud indicators")
	}

	// Threat plus urgency is the strongest local cue.
	if contains(verdict.FraudPatterns, rules.TagThreat) && contains(verdict.FraudPatterns, rules.TagUrgency) {
		urgency = core.UrgencyExtreme
	}
	verdict.UrgencyLevel = urgency

	if len(verdict.FraudPatterns) > 0 {
		a.logger.Debug("Content analysis found fraud patterns",
			zap.Strings("patterns", verdict.FraudPatterns),
			zap.String("urgency", urgency.String()))
	}
	return verdict
}

// languageIssues collects the individual language-quality problems:
// excessive capitals, repeated punctuation, known misspellings and
// heavy word repetition.
func (a *ContentAnalyzer) languageIssues(text string) []string {
	var issues []string

	letters, uppers := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters >= 20 && float64(uppers)/float64(letters) > 0.30 {
		issues = append(issues, "excessive capitalization")
	}

	if repeatPunctRe.MatchString(text) {
		issues = append(issues, "repeated punctuation")
	}

	lower := strings.ToLower(text)
	for _, word := range a.lib.Misspellings() {
		if strings.Contains(lower, word) {
			issues = append(issues, fmt.Sprintf("misspelling %q", word))
			break
		}
	}

	counts := make(map[string]int)
	for _, w := range wordSplitRe.FindAllString(lower, -1) {
		counts[w]++
		if counts[w] == 4 {
			issues = append(issues, fmt.Sprintf("word %q repeated excessively", w))
			break
		}
	}

	return issues
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
