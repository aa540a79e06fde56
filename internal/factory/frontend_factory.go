package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/frontend"
	"github.com/Shubhamprana/Shabari-sub003/internal/config"
	"github.com/Shubhamprana/Shabari-sub003/internal/ports"
	"github.com/Shubhamprana/Shabari-sub003/internal/service"
)

// FrontendFactory creates frontends based on configuration.
type FrontendFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *service.FraudDetectionService
}

// NewFrontendFactory creates a new frontend factory.
func NewFrontendFactory(cfg *config.Config, logger *zap.Logger, svc *service.FraudDetectionService) *FrontendFactory {
	return &FrontendFactory{
		cfg:     cfg,
		logger:  logger,
		service: svc,
	}
}

// CreateFrontend creates a frontend based on the configuration.
func (f *FrontendFactory) CreateFrontend() (ports.Frontend, error) {
	frontendType := f.cfg.GetString("server.frontend_type")

	switch frontendType {
	case "http":
		return frontend.NewHTTPFrontend(
			f.service,
			f.logger,
			f.cfg.GetString("server.listen_address"),
			f.cfg.GetStringSlice("server.allowed_origins"),
		), nil
	case "cli":
		return frontend.NewCLIFrontend(
			f.service,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported frontend type: %s", frontendType)
	}
}
