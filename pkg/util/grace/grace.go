// Package grace ties context cancellation to termination signals.
package grace

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// NewGracefulContext returns context cancelled by SIGINT or SIGTERM, so a
// running batch is abandoned before it is committed. The returned function
// releases the signal handler and cancels the context.
func NewGracefulContext(l *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-ch:
			if l != nil {
				l.Info("received signal", zap.Stringer("signal", sig))
			} else {
				fmt.Fprintf(os.Stderr, "received signal %s\n", sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}
