package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"

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
	"github.com/Shubhamprana/Shabari-sub003/internal/ports"
	"github.com/Shubhamprana/Shabari-sub003/internal/qr"
	"github.com/Shubhamprana/Shabari-sub003/internal/rules"
	"github.com/Shubhamprana/Shabari-sub003/internal/service"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
// for the long-running service.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewMLFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register rule library, with the optional overlay file
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (*rules.Library, error) {
		lib := rules.NewLibrary()
		if path := cfg.GetString("rules.file"); path != "" {
			if err := lib.LoadOverlay(path); err != nil {
				return nil, err
			}
			logger.Info("Loaded rule overlay", zap.String("file", path))
		}
		return lib, nil
	}); err != nil {
		return nil, err
	}

	// Register analyzers and the fusion engine
	if err := container.Provide(analyzer.NewSenderAnalyzer); err != nil {
		return nil, err
	}
	if err := container.Provide(analyzer.NewContentAnalyzer); err != nil {
		return nil, err
	}
	if err := container.Provide(fusion.NewEngine); err != nil {
		return nil, err
	}

	// Register context tracker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *contextwatch.Tracker {
		ctxCfg := cfg.GetContext()
		return contextwatch.NewTracker(contextwatch.Config{
			ActiveWindow:   ctxCfg.ActiveWindow,
			OTPWindow:      ctxCfg.OTPWindow,
			BurstThreshold: ctxCfg.BurstThreshold,
		}, logger)
	}); err != nil {
		return nil, err
	}

	// Register ML adapter
	if err := container.Provide(func(f *factory.MLFactory) (*mlmodel.Adapter, error) {
		return f.CreateAdapter()
	}); err != nil {
		return nil, err
	}

	// Register URL reputation checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.URLReputationChecker {
		if !cfg.GetBool("reputation.enabled") {
			return reputation.NewNullChecker()
		}
		return reputation.NewStaticChecker(cfg.GetStringSlice("reputation.blocked_domains"), logger)
	}); err != nil {
		return nil, err
	}

	// Register QR analyzer
	if err := container.Provide(qr.NewAnalyzer); err != nil {
		return nil, err
	}

	// Register verdict cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.VerdictCache, error) {
		return f.CreateVerdictCache()
	}); err != nil {
		return nil, err
	}

	// Register metrics
	if err := container.Provide(func() *metrics.Metrics {
		return metrics.New(prometheus.DefaultRegisterer)
	}); err != nil {
		return nil, err
	}

	// Register service options
	if err := container.Provide(func(cfg *config.Config, f *factory.CacheFactory) (service.Options, error) {
		ttl, err := f.GetCacheTTL()
		if err != nil {
			return service.Options{}, err
		}
		return service.Options{
			CacheEnabled: f.IsCacheEnabled(),
			CacheTTL:     ttl,
			MLEnabled:    cfg.GetML().Enabled,
		}, nil
	}); err != nil {
		return nil, err
	}

	// Register fraud detection service
	if err := container.Provide(service.NewFraudDetectionService); err != nil {
		return nil, err
	}

	// Register frontend
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
