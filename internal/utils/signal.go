package utils

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/apex/log"
)

// SignalContext returns a context that is cancelled on SIGINT or SIGTERM.
// A second signal exits the process immediately. The returned cancel stops
// listening for signals.
func SignalContext(parent context.Context, logger log.Interface) (context.Context, context.CancelFunc) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	ctx, cancel, _ := watchSignals(parent, logger, sigCh, func() { signal.Stop(sigCh) }, os.Exit)
	return ctx, cancel
}

// watchSignals cancels the context on the first value from sigCh and calls
// exit on the second. stop runs once the watcher returns, which happens when
// cancel is called or the parent is done. done is closed after stop.
func watchSignals(parent context.Context, logger log.Interface, sigCh <-chan os.Signal, stop func(), exit func(int)) (context.Context, context.CancelFunc, <-chan struct{}) {
	ctx, cancelCtx := context.WithCancel(parent)
	quit := make(chan struct{})
	done := make(chan struct{})

	var once sync.Once
	cancel := func() {
		cancelCtx()
		once.Do(func() { close(quit) })
	}

	go func() {
		defer close(done)
		defer stop()
		select {
		case sig := <-sigCh:
			logger.WithField("signal", sig.String()).Info("caught a stop signal, shutting down")
			cancelCtx()
		case <-quit:
			return
		case <-parent.Done():
			return
		}
		select {
		case <-sigCh:
			logger.Warn("second signal, exiting now")
			exit(1)
		case <-quit:
		case <-parent.Done():
		}
	}()

	return ctx, cancel, done
}
