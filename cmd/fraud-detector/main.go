package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/adapters/frontend"
	"github.com/Shubhamprana/Shabari-sub003/internal/core"
	"github.com/Shubhamprana/Shabari-sub003/internal/di"
)

func main() {
	flags := di.ParseFlags()

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *di.CLIFlags, logger *zap.Logger, cli *frontend.CLIFrontend) error {
	defer logger.Sync()

	ctx := context.Background()

	// QR mode bypasses the message pipeline entirely
	if flags.QRData != "" {
		verdict := cli.ProcessQR(ctx, flags.QRData)
		if verdict.IsFraud {
			os.Exit(2)
		}
		return nil
	}

	message := flags.Message
	if message == "" {
		text, err := readMessage(flags, logger)
		if err != nil {
			return err
		}
		message = text
	}

	verdict := cli.ProcessSMS(ctx, core.AnalysisInput{
		SenderInfo:       flags.Sender,
		MessageContent:   message,
		ReceivedTime:     time.Now(),
		EnableMLAnalysis: flags.Provider != "none" && flags.Provider != "",
	})
	if verdict.IsFraud {
		os.Exit(2)
	}
	return nil
}

// readMessage reads the message text from the input file or stdin.
func readMessage(flags *di.CLIFlags, logger *zap.Logger) (string, error) {
	var reader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return "", fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		reader = file
		logger.Info("Reading message from file", zap.String("file", flags.InputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	data, err := io.ReadAll(bufio.NewReader(reader))
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	return string(data), nil
}
