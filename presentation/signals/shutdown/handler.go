package shutdown

import (
	"context"
	"os"
	"stegano/application/logging"
	palSignal "stegano/infrastructure/PAL/signal"
	"stegano/presentation/signals"
	"sync"
)

// Handler cancels the application context on the first shutdown signal.
// Cancellation stops the prime worker and any sieve in flight; the prime
// mirror is flushed by the deferred service shutdown in main.
type Handler struct {
	appCtx       context.Context
	appCtxCancel context.CancelFunc
	// 1-sized: os/signal uses non-blocking sends
	signalChan     chan os.Signal
	once           sync.Once
	signalProvider palSignal.Provider
	notifier       signals.Notifier
	logger         logging.Logger
}

func NewHandler(
	appCtx context.Context,
	appCtxCancel context.CancelFunc,
	signalProvider palSignal.Provider,
	notifier signals.Notifier,
	logger logging.Logger,
) signals.Handler {
	return &Handler{
		appCtx:         appCtx,
		appCtxCancel:   appCtxCancel,
		signalChan:     make(chan os.Signal, 1),
		signalProvider: signalProvider,
		notifier:       notifier,
		logger:         logger,
	}
}

func (h *Handler) Handle() {
	h.once.Do(func() {
		h.listenAndHandleShutdownSignals()
	})
}

func (h *Handler) listenAndHandleShutdownSignals() {
	h.notifier.Notify(h.signalChan, h.signalProvider.ShutdownSignals()...)
	go func() {
		defer h.notifier.Stop(h.signalChan)
		select {
		case sig := <-h.signalChan:
			h.logger.Printf("%s received, shutting down", sig)
			h.appCtxCancel()
		case <-h.appCtx.Done():
		}
	}()
}
