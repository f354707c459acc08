package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/apphost/internal/logfields"
)

// signalBridge translates SIGINT and SIGTERM into a single quit request on
// the event loop. It performs no plugin-touching work itself: the loop stops,
// and the caller of Run performs the shutdown path synchronously.
type signalBridge struct {
	ch   chan os.Signal
	done chan struct{}
}

// newSignalBridge arms the bridge. The first signal received quits the loop
// and disarms the bridge, so a repeated signal is not handled again by this
// subsystem.
func newSignalBridge(loop *Loop) *signalBridge {
	b := &signalBridge{
		ch:   make(chan os.Signal, 2),
		done: make(chan struct{}),
	}
	signal.Notify(b.ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-b.ch:
			signal.Stop(b.ch)
			slog.Info("Termination signal received, stopping event loop", logfields.Signal(sig.String()))
			loop.Quit()
		case <-b.done:
			signal.Stop(b.ch)
		}
	}()

	return b
}

// disarm releases the bridge without quitting the loop. Used when the loop
// stopped for another reason.
func (b *signalBridge) disarm() {
	close(b.done)
}
