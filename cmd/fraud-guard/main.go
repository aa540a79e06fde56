package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/di"
	"github.com/Shubhamprana/Shabari-sub003/internal/ports"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	front ports.Frontend,
	cache core.VerdictCache,
) error {
	defer logger.Sync()

	// Start the frontend in the background; HTTP serving blocks
	errCh := make(chan error, 1)
	go func() {
		errCh <- front.Start()
	}()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down...", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("Frontend exited", zap.Error(err))
			return err
		}
		return nil
	}

	// Stop the frontend
	if err := front.Stop(); err != nil {
		logger.Error("Failed to stop frontend", zap.Error(err))
	}

	// Stop the cache if needed
	if stopper, ok := cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
