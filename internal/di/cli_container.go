package di

import (
	"flag"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/frontend"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/mlmodel"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/reputation"
	"github.com/Shubhamprana/Shabari-sub003/internal/analyzer"
	"github.com/Shubhamprana/Shabari-sub003/internal/config"
	"github.com/Shubhamprana/Shabari-sub003/internal/contextwatch"
	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/factory"
	"github.com/Shubhamprana/Shabari-sub003/internal/fusion"
	"github.com/Shubhamprana/Shabari-sub003/internal/logging"
	"github.com/Shubhamprana/Shabari-sub003/internal/metrics"
	"github.com/Shubhamprana/Shabari-sub003/internal/qr"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
	"github.com/Shubhamprana/Shabari-sub003/internal/service"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

// CLIFlags contains all command line flags for the one-shot CLI.
type CLIFlags struct {
	// ML provider flags
	Provider    string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Input flags
	Sender     string
	Message    string
	InputFile  string
	QRData     string
	RulesFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct.
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// ML provider flags
	flag.StringVar(&flags.Provider, "provider", "none", "ML provider (bedrock, gemini, openai, none)")
	flag.IntVar(&flags.MaxTokens, "max-tokens", 500, "Maximum tokens for classifier response")
	flag.Float64Var(&flags.Temperature, "temperature", 0.1, "Temperature for classifier generation")
	flag.Float64Var(&flags.TopP, "top-p", 0.9, "Top-p for classifier generation")
	flag.IntVar(&flags.MaxBodySize, "max-body-size", 4096, "Maximum message size to send to the classifier")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "ap-south-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "gpt-4o-mini", "OpenAI model name")

	// Input flags
	flag.StringVar(&flags.Sender, "sender", "", "Sender identifier (header or phone number)")
	flag.StringVar(&flags.Message, "message", "", "Message text to analyze")
	flag.StringVar(&flags.InputFile, "file", "", "Input message file (use stdin if not specified)")
	flag.StringVar(&flags.QRData, "qr", "", "QR payload data to analyze instead of a message")
	flag.StringVar(&flags.RulesFile, "rules", "", "Path to a YAML rule overlay file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection
// container for the one-shot CLI.
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register ML factory and adapter
	if err := container.Provide(factory.NewMLFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.MLFactory) (*mlmodel.Adapter, error) {
		return f.CreateAdapter()
	}); err != nil {
		return nil, err
	}

	// Register rule library
	if err := container.Provide(func(flags *CLIFlags) (*rules.Library, error) {
		lib := rules.NewLibrary()
		if flags.RulesFile != "" {
			if err := lib.LoadOverlay(flags.RulesFile); err != nil {
				return nil, err
			}
		}
		return lib, nil
	}); err != nil {
		return nil, err
	}

	// Register analyzers, fusion engine and context tracker
	if err := container.Provide(analyzer.NewSenderAnalyzer); err != nil {
		return nil, err
	}
	if err := container.Provide(analyzer.NewContentAnalyzer); err != nil {
		return nil, err
	}
	if err := container.Provide(fusion.NewEngine); err != nil {
		return nil, err
	}
	if err := container.Provide(func(logger *zap.Logger) *contextwatch.Tracker {
		return contextwatch.NewTracker(contextwatch.DefaultConfig(), logger)
	}); err != nil {
		return nil, err
	}

	// Register URL reputation checker (no external lookups for one-shot runs)
	if err := container.Provide(func() core.URLReputationChecker {
		return reputation.NewNullChecker()
	}); err != nil {
		return nil, err
	}

	// Register QR analyzer
	if err := container.Provide(qr.NewAnalyzer); err != nil {
		return nil, err
	}

	// Register metrics with a private registry
	if err := container.Provide(func() *metrics.Metrics {
		return metrics.New(prometheus.NewRegistry())
	}); err != nil {
		return nil, err
	}

	// Register fraud detection service with no cache
	if err := container.Provide(func() core.VerdictCache { return nil }); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config) service.Options {
		return service.Options{MLEnabled: cfg.GetML().Enabled}
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(service.NewFraudDetectionService); err != nil {
		return nil, err
	}

	// Register CLI frontend
	if err := container.Provide(func(svc *service.FraudDetectionService, logger *zap.Logger, flags *CLIFlags) (*frontend.CLIFrontend, error) {
		return frontend.NewCLIFrontend(svc, logger, flags.Verbose)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags.
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// CLI specific settings
	v.Set("server.frontend_type", "cli")
	v.Set("cli.verbose", flags.Verbose)
	v.Set("cache.enabled", false)

	// ML provider
	v.Set("ml.provider", flags.Provider)
	v.Set("ml.enabled", flags.Provider != "none" && flags.Provider != "")

	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_tokens", flags.MaxTokens)
		v.Set("bedrock.temperature", flags.Temperature)
		v.Set("bedrock.top_p", flags.TopP)
		v.Set("bedrock.max_body_size", flags.MaxBodySize)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_tokens", flags.MaxTokens)
		v.Set("gemini.temperature", flags.Temperature)
		v.Set("gemini.top_p", flags.TopP)
		v.Set("gemini.max_body_size", flags.MaxBodySize)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_tokens", flags.MaxTokens)
		v.Set("openai.temperature", flags.Temperature)
		v.Set("openai.top_p", flags.TopP)
		v.Set("openai.max_body_size", flags.MaxBodySize)
	}

	return config.NewFromViper(v)
}
