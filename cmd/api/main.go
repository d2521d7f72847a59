package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mmjournal/mmjournal/config"
	"github.com/mmjournal/mmjournal/internal/app"
	"github.com/mmjournal/mmjournal/pkg/logger"
)

const (
	defaultShutdownTimeout = 60 * time.Second
	// extra time the caller waits beyond the app's own drain timeout
	shutdownGrace = 5 * time.Second
	// how long a forced shutdown may take to acknowledge cancellation
	forceExitWait = 2 * time.Second
)

var errForcedShutdown = errors.New("forced shutdown")

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// signalNotify is swapped in tests to deliver signals by hand
var signalNotify = signal.Notify

// NewAppFunc defines the function signature for creating a new app
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

var newApp NewAppFunc = app.NewApp

// runServer initializes the journal, serves until a signal or server error,
// then drains. A second signal during the drain aborts it.
func runServer(cfg *config.Config, appLogger logger.Logger) error {
	journal := newApp(cfg, app.WithLogger(appLogger))

	if err := journal.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	// buffered for the first signal and an optional second one
	signals := make(chan os.Signal, 2)
	signalNotify(signals, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Journal server listening")
		serveErr <- journal.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Server error")
		}
		return err
	case sig := <-signals:
		appLogger.WithFields(map[string]interface{}{
			"signal":          sig.String(),
			"active_requests": journal.GetActiveRequestCount(),
		}).Info("Shutdown requested, draining requests (signal again to force)")
		return drain(journal, shutdownTimeout(cfg), signals, appLogger)
	}
}

// drain shuts the app down, giving up early when another signal arrives
func drain(journal app.AppInterface, timeout time.Duration, signals <-chan os.Signal, appLogger logger.Logger) error {
	journal.SetShutdownTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout+shutdownGrace)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- journal.Shutdown(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Error during graceful shutdown")
			return err
		}
		appLogger.Info("Server shut down gracefully")
		return nil
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).Warn("Forcing shutdown, in-flight requests may be cut off")
		cancel()

		select {
		case err := <-done:
			if err != nil {
				appLogger.WithField("error", err.Error()).Error("Error during forced shutdown")
			}
		case <-time.After(forceExitWait):
			appLogger.Warn("Forced shutdown did not finish in time")
		}
		return errForcedShutdown
	}
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return defaultShutdownTimeout
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.Info(fmt.Sprintf("Starting mmjournal %s on %s:%d", cfg.Version, cfg.Server.Host, cfg.Server.Port))

	if err := runServer(cfg, appLogger); err != nil {
		osExit(1)
	}
}
