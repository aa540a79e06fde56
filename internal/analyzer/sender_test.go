package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
)

func newSenderAnalyzer(t *testing.T) *SenderAnalyzer {
	t.Helper()
	return NewSenderAnalyzer(rules.NewLibrary(), zap.NewNop())
}

func TestAnalyzeKnownInstitution(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("SBIINB")

	assert.Equal(t, core.SenderBank, verdict.SenderType)
	assert.Equal(t, core.LegitimacyLegitimate, verdict.Legitimacy)
	assert.Equal(t, core.Score(95), verdict.Reputation)
	assert.Empty(t, verdict.RedFlags)
}

func TestAnalyzeNormalizesCaseAndSpace(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("  sbiinb ")
	assert.Equal(t, core.LegitimacyLegitimate, verdict.Legitimacy)
	assert.Equal(t, core.Score(95), verdict.Reputation)
}

func TestAnalyzeRegisteredHeaderShape(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("VM-SHOPXY")

	assert.Equal(t, core.SenderBusiness, verdict.SenderType)
	assert.Equal(t, core.LegitimacyLegitimate, verdict.Legitimacy)
	assert.Equal(t, core.Score(85), verdict.Reputation)
}

func TestAnalyzeFakeBankCode(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("SBI12345")

	assert.Equal(t, core.SenderScammer, verdict.SenderType)
	assert.Equal(t, core.LegitimacyFraudulent, verdict.Legitimacy)
	assert.Equal(t, core.Score(5), verdict.Reputation)
	require.NotEmpty(t, verdict.RedFlags)
	assert.Contains(t, verdict.RedFlags, "impersonates a bank (SBI)")
}

func TestAnalyzeFakeGovernmentCode(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("UIDAI99")

	assert.Equal(t, core.LegitimacyFraudulent, verdict.Legitimacy)
	assert.Contains(t, verdict.RedFlags, "impersonates a government body (UIDAI)")
}

func TestAnalyzeTyposquat(t *testing.T) {
	a := newSenderAnalyzer(t)

	// One character appended to a real bank header; not a suspicious
	// shape on its own, but within edit distance 1 of SBIINB.
	verdict := a.Analyze("SBIINB1")

	assert.Equal(t, core.SenderUnknown, verdict.SenderType)
	assert.Equal(t, core.LegitimacySuspicious, verdict.Legitimacy)
	assert.Equal(t, core.Score(20), verdict.Reputation)
	require.Len(t, verdict.RedFlags, 1)
	assert.Contains(t, verdict.RedFlags[0], "SBIINB")
	assert.Contains(t, verdict.RedFlags[0], "State Bank of India")
}

func TestAnalyzeTyposquatTieIsStable(t *testing.T) {
	// SBIXPB is edit distance 2 from both SBIINB and SBIUPI. The scan
	// must always report the lexicographically first code, not whichever
	// one a map happened to yield.
	for i := 0; i < 50; i++ {
		verdict := newSenderAnalyzer(t).Analyze("SBIXPB")
		require.Len(t, verdict.RedFlags, 1)
		assert.Equal(t, "closely resembles SBIINB (State Bank of India)", verdict.RedFlags[0])
	}
}

func TestAnalyzePhoneDomesticClean(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("+919876543210")

	assert.Equal(t, core.SenderIndividual, verdict.SenderType)
	assert.Equal(t, core.LegitimacyUnknown, verdict.Legitimacy)
	assert.Equal(t, core.Score(60), verdict.Reputation)
	assert.Empty(t, verdict.RedFlags)
}

func TestAnalyzePhoneTelemarketingMalformed(t *testing.T) {
	a := newSenderAnalyzer(t)

	// 140 telemarketing prefix, and a 10-digit number that cannot be a
	// mobile subscriber.
	verdict := a.Analyze("1404567890")

	assert.Equal(t, core.SenderIndividual, verdict.SenderType)
	assert.Equal(t, core.LegitimacyFraudulent, verdict.Legitimacy)
	assert.Equal(t, core.Score(15), verdict.Reputation)
	assert.Contains(t, verdict.RedFlags, "number in the 140 telemarketing range")
	assert.Contains(t, verdict.RedFlags, "malformed mobile number shape")
}

func TestAnalyzePhoneInternational(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("+14155550123")

	assert.Equal(t, core.LegitimacySuspicious, verdict.Legitimacy)
	assert.Equal(t, core.Score(45), verdict.Reputation)
	assert.Contains(t, verdict.RedFlags, "non-domestic number claiming local service")
}

func TestAnalyzePhoneRepeatedDigits(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("+919999999999")

	assert.Contains(t, verdict.RedFlags, "digit pattern typical of spoofed or VoIP numbers")
	assert.Equal(t, core.Score(40), verdict.Reputation)
}

func TestAnalyzeUnknownSender(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("some random words")

	assert.Equal(t, core.SenderUnknown, verdict.SenderType)
	assert.Equal(t, core.LegitimacyUnknown, verdict.Legitimacy)
	assert.Equal(t, core.Score(50), verdict.Reputation)
}

func TestAnalyzeEmptySender(t *testing.T) {
	a := newSenderAnalyzer(t)

	verdict := a.Analyze("")

	assert.Equal(t, core.SenderUnknown, verdict.SenderType)
	assert.Equal(t, core.LegitimacyUnknown, verdict.Legitimacy)
	assert.Equal(t, core.Score(50), verdict.Reputation)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("SBIINB", "SBIINB"))
	assert.Equal(t, 1, levenshtein("SBIINB1", "SBIINB"))
	assert.Equal(t, 1, levenshtein("SB1INB", "SBIINB"))
	assert.Equal(t, 6, levenshtein("", "SBIINB"))
}
