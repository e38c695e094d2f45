package server

import (
	"context"
	"fmt"
	"io"
	"time"

	applogger "YieldAdvisor/pkg/logger"
)

// Runner is the HTTP server surface the app drives.
type Runner interface {
	Start() error
	Stop(ctx context.Context) error
	Err() <-chan error
}

// NamedCloser is a resource released on shutdown, in registration order.
type NamedCloser struct {
	Name   string
	Closer io.Closer
}

// CloserFunc adapts a func to io.Closer.
type CloserFunc func() error

func (f CloserFunc) Close() error { return f() }

// App encapsulates the application lifecycle.
type App struct {
	http            Runner
	logger          *applogger.Logger
	closers         []NamedCloser
	shutdownTimeout time.Duration
}

// New creates a new App. closers run after the HTTP server has stopped.
func New(http Runner, log *applogger.Logger, shutdownTimeout time.Duration, closers ...NamedCloser) *App {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &App{http: http, logger: log, closers: closers, shutdownTimeout: shutdownTimeout}
}

// Run starts the HTTP server and blocks until ctx is cancelled
// (main wires ctx to SIGINT/SIGTERM) or the server fails, then shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.http.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.shutdown()
	case err := <-a.http.Err():
		a.logger.Error("http server failed", applogger.Error(err))
		if sErr := a.shutdown(); sErr != nil {
			a.logger.Warn("shutdown after server failure", applogger.Error(sErr))
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// shutdown stops accepting requests first, then releases resources.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.http.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	for _, c := range a.closers {
		if c.Closer == nil {
			continue
		}
		if err := c.Closer.Close(); err != nil {
			a.logger.Warn("close error", applogger.String("resource", c.Name), applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}
