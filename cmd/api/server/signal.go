package server

import (
	"context"
	"os/signal"
	"syscall"
)

// WithShutdownSignal returns a context canceled on SIGINT or SIGTERM.
// The returned stop function releases the signal handler so a second
// signal kills the process immediately.
func WithShutdownSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
