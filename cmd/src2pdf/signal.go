package main

import (
	"context"
	"os/signal"
)

// notifyContext derives a context canceled on the first shutdown signal,
// so an interrupted run stops the browser and leaves no partial output.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
