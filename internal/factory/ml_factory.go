package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/bedrock"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/gemini"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/mlmodel"
	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/openai"
	"github.com/Shubhamprana/Shabari-sub003/internal/config"
	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/utils"
)

// MLFactory creates ML classifiers and the fusion-side adapter around them.
type MLFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewMLFactory creates a new ML factory.
func NewMLFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *MLFactory {
	return &MLFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a classifier based on the configured provider.
// Provider "none" yields a nil classifier; the adapter treats it as a
// permanently unavailable signal.
func (f *MLFactory) CreateClassifier() (core.MLClassifier, error) {
	mlConfig := f.cfg.GetML()

	switch mlConfig.Provider {
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClassifier()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClassifier()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClassifier()
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported ML provider: %s", mlConfig.Provider)
	}
}

// CreateAdapter wraps the configured classifier in the timeout and
// panic isolation adapter.
func (f *MLFactory) CreateAdapter() (*mlmodel.Adapter, error) {
	classifier, err := f.CreateClassifier()
	if err != nil {
		return nil, err
	}
	mlConfig := f.cfg.GetML()
	return mlmodel.NewAdapter(classifier, mlConfig.Timeout, f.logger), nil
}
