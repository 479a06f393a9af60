// Package cli holds the showroom commands and the start-up steps they
// share.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"showroom/internal/config"
	"showroom/internal/log"
)

// LoadEnvFile loads path for local development. A missing file is fine.
func LoadEnvFile(path string) {
	if path == "" {
		return
	}
	_ = godotenv.Load(path)
}

// SetupLogger builds the process logger at the configured level and makes
// it the slog default.
func SetupLogger(level string, out io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{
		Level:     lvl,
		Component: log.ComponentApp,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger, nil
}

// LoadConfig reads v and runs validate on the result.
func LoadConfig(v *viper.Viper, validate func(*config.Config) error) (*config.Config, error) {
	cfg := config.Load(v)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext is cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func exitError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
