package frontend

import (
	"time"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

type explanationDTO struct {
	Summary          string   `json:"summary"`
	DetailedAnalysis string   `json:"detailed_analysis,omitempty"`
	RedFlags         []string `json:"red_flags,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

type senderDTO struct {
	SenderType string   `json:"sender_type"`
	Legitimacy string   `json:"legitimacy"`
	Reputation int      `json:"reputation"`
	RedFlags   []string `json:"red_flags,omitempty"`
}

type contentDTO struct {
	FraudPatterns            []string `json:"fraud_patterns,omitempty"`
	UrgencyLevel             string   `json:"urgency_level"`
	SocialEngineeringTactics []string `json:"social_engineering_tactics,omitempty"`
	SuspiciousElements       []string `json:"suspicious_elements,omitempty"`
	LanguageQuality          string   `json:"language_quality"`
}

type combinedDTO struct {
	IsFraud         bool           `json:"is_fraud"`
	RiskLevel       string         `json:"risk_level"`
	RiskScore       int            `json:"risk_score"`
	ConfidenceScore int            `json:"confidence_score"`
	Explanation     explanationDTO `json:"explanation"`
	SenderAnalysis  senderDTO      `json:"sender_analysis"`
	ContentAnalysis contentDTO     `json:"content_analysis"`
	FusionMode      string         `json:"fusion_mode"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
	ProcessingID    string         `json:"processing_id"`
}

type messageDTO struct {
	IsFraud         bool           `json:"is_fraud"`
	ThreatLevel     string         `json:"threat_level"`
	ConfidenceScore int            `json:"confidence_score"`
	Explanation     explanationDTO `json:"explanation"`
	SenderAnalysis  senderDTO      `json:"sender_analysis"`
	ContentAnalysis contentDTO     `json:"content_analysis"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
	ProcessingID    string         `json:"processing_id"`
}

type qrDTO struct {
	QRType          string         `json:"qr_type"`
	IsFraud         bool           `json:"is_fraud"`
	ThreatLevel     string         `json:"threat_level"`
	ConfidenceScore int            `json:"confidence_score"`
	Explanation     explanationDTO `json:"explanation"`
	ContentAnalysis contentDTO     `json:"content_analysis"`
	AnalyzedAt      time.Time      `json:"analyzed_at"`
	ProcessingID    string         `json:"processing_id"`
}

func explanationToDTO(e core.Explanation) explanationDTO {
	return explanationDTO{
		Summary:          e.Summary,
		DetailedAnalysis: e.DetailedAnalysis,
		RedFlags:         e.RedFlags,
		Recommendations:  e.Recommendations,
	}
}

func senderToDTO(s core.SenderVerdict) senderDTO {
	return senderDTO{
		SenderType: string(s.SenderType),
		Legitimacy: string(s.Legitimacy),
		Reputation: int(s.Reputation),
		RedFlags:   s.RedFlags,
	}
}

func contentToDTO(c core.ContentVerdict) contentDTO {
	return contentDTO{
		FraudPatterns:            c.FraudPatterns,
		UrgencyLevel:             c.UrgencyLevel.String(),
		SocialEngineeringTactics: c.SocialEngineeringTactics,
		SuspiciousElements:       c.SuspiciousElements,
		LanguageQuality:          string(c.LanguageQuality),
	}
}

func combinedResponse(v *core.CombinedVerdict) combinedDTO {
	return combinedDTO{
		IsFraud:         v.IsFraud,
		RiskLevel:       string(v.RiskLevel),
		RiskScore:       int(v.RiskScore),
		ConfidenceScore: int(v.ConfidenceScore),
		Explanation:     explanationToDTO(v.Explanation),
		SenderAnalysis:  senderToDTO(v.SenderAnalysis),
		ContentAnalysis: contentToDTO(v.ContentAnalysis),
		FusionMode:      v.FusionMode,
		AnalyzedAt:      v.AnalyzedAt,
		ProcessingID:    v.ProcessingID,
	}
}

func messageResponse(v *core.MessageVerdict) messageDTO {
	return messageDTO{
		IsFraud:         v.IsFraud,
		ThreatLevel:     string(v.ThreatLevel),
		ConfidenceScore: int(v.ConfidenceScore),
		Explanation:     explanationToDTO(v.Explanation),
		SenderAnalysis:  senderToDTO(v.SenderAnalysis),
		ContentAnalysis: contentToDTO(v.ContentAnalysis),
		AnalyzedAt:      v.AnalyzedAt,
		ProcessingID:    v.ProcessingID,
	}
}

func qrResponse(v *core.QRVerdict) qrDTO {
	return qrDTO{
		QRType:          string(v.QRType),
		IsFraud:         v.IsFraud,
		ThreatLevel:     string(v.ThreatLevel),
		ConfidenceScore: int(v.ConfidenceScore),
		Explanation:     explanationToDTO(v.Explanation),
		ContentAnalysis: contentToDTO(v.ContentAnalysis),
		AnalyzedAt:      v.AnalyzedAt,
		ProcessingID:    v.ProcessingID,
	}
}
