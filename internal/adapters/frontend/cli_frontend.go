package frontend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/service"
)

// CLIFrontend implements a command-line interface for one-shot analysis.
type CLIFrontend struct {
	service *service.FraudDetectionService
	logger  *zap.Logger
	verbose bool
}

// NewCLIFrontend creates a new CLI frontend.
func NewCLIFrontend(svc *service.FraudDetectionService, logger *zap.Logger, verbose bool) (*CLIFrontend, error) {
	return &CLIFrontend{
		service: svc,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessSMS analyzes an SMS and displays the results.
func (f *CLIFrontend) ProcessSMS(ctx context.Context, input core.AnalysisInput) *core.CombinedVerdict {
	f.logger.Debug("Processing message", zap.String("sender", input.SenderInfo))

	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Sender: %s\n", input.SenderInfo)
	fmt.Printf("Content length: %d bytes\n", len(input.MessageContent))

	if f.verbose {
		preview := input.MessageContent
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nContent preview:\n%s\n", preview)
	}

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	verdict := f.service.AnalyzeSMS(ctx, input)
	duration := time.Since(startTime)

	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Fraud: %t\n", verdict.IsFraud)
	fmt.Printf("Risk level: %s\n", verdict.RiskLevel)
	fmt.Printf("Risk score: %d\n", verdict.RiskScore)
	fmt.Printf("Confidence: %d\n", verdict.ConfidenceScore)
	fmt.Printf("Mode: %s\n", verdict.FusionMode)
	fmt.Printf("Summary: %s\n", verdict.Explanation.Summary)
	if f.verbose {
		fmt.Printf("Detail: %s\n", verdict.Explanation.DetailedAnalysis)
		if len(verdict.Explanation.RedFlags) > 0 {
			fmt.Printf("Red flags:\n  - %s\n", strings.Join(verdict.Explanation.RedFlags, "\n  - "))
		}
	}
	if len(verdict.Explanation.Recommendations) > 0 {
		fmt.Printf("Recommendations:\n  - %s\n", strings.Join(verdict.Explanation.Recommendations, "\n  - "))
	}
	fmt.Printf("Processing time: %v\n", duration)

	return verdict
}

// ProcessQR analyzes QR payload data and displays the results.
func (f *CLIFrontend) ProcessQR(ctx context.Context, data string) *core.QRVerdict {
	fmt.Printf("\n=== QR Analysis ===\n")
	startTime := time.Now()
	verdict := f.service.AnalyzeQR(ctx, data)
	duration := time.Since(startTime)

	fmt.Printf("QR type: %s\n", verdict.QRType)
	fmt.Printf("Fraud: %t\n", verdict.IsFraud)
	fmt.Printf("Threat level: %s\n", verdict.ThreatLevel)
	fmt.Printf("Confidence: %d\n", verdict.ConfidenceScore)
	fmt.Printf("Summary: %s\n", verdict.Explanation.Summary)
	if len(verdict.Explanation.Recommendations) > 0 {
		fmt.Printf("Recommendations:\n  - %s\n", strings.Join(verdict.Explanation.Recommendations, "\n  - "))
	}
	fmt.Printf("Processing time: %v\n", duration)

	return verdict
}

// Start is a no-op for the CLI frontend.
func (f *CLIFrontend) Start() error {
	return nil
}

// Stop is a no-op for the CLI frontend.
func (f *CLIFrontend) Stop() error {
	return nil
}
