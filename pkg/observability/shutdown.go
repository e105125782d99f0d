package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownFunc releases one resource during teardown.
type ShutdownFunc func(context.Context) error

// ShutdownManager coordinates graceful teardown. On SIGINT or SIGTERM it
// drains the HTTP server first, then runs the registered shutdown functions
// in registration order, all under a single timeout. Functions run in order
// because later registrations may depend on earlier ones still being open
// (the OTel flush needs the network, the ops server needs its listeners).
type ShutdownManager struct {
	logger  *Logger
	server  *http.Server
	timeout time.Duration

	mu    sync.Mutex
	funcs []ShutdownFunc

	signals chan os.Signal
}

// NewShutdownManager creates a manager draining server on shutdown. A zero
// timeout defaults to 30 seconds.
func NewShutdownManager(logger *Logger, server *http.Server, timeout time.Duration) *ShutdownManager {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	sm := &ShutdownManager{
		logger:  logger,
		server:  server,
		timeout: timeout,
		signals: make(chan os.Signal, 1),
	}
	signal.Notify(sm.signals, syscall.SIGINT, syscall.SIGTERM)
	return sm
}

// RegisterShutdownFunc appends fn to the teardown sequence.
func (sm *ShutdownManager) RegisterShutdownFunc(fn ShutdownFunc) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.funcs = append(sm.funcs, fn)
}

// WaitForShutdown blocks until a termination signal arrives, then tears
// everything down. The returned error joins every failure encountered.
func (sm *ShutdownManager) WaitForShutdown() error {
	sig := <-sm.signals
	sm.logger.Infof("received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), sm.timeout)
	defer cancel()

	var errs []error
	if sm.server != nil {
		if err := sm.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	sm.mu.Lock()
	funcs := append([]ShutdownFunc(nil), sm.funcs...)
	sm.mu.Unlock()

	for i, fn := range funcs {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("shutdown timeout before step %d: %w", i, ctx.Err()))
			break
		}
		if err := fn(ctx); err != nil {
			sm.logger.WithError(err).Errorf("shutdown step %d failed", i)
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	sm.logger.Info("shutdown complete")
	return nil
}
