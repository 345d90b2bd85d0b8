//go:build !windows

package signals

import (
	"os/signal"
	"syscall"
)

func init() {
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
}

// Handle dispatches signals to the interrupt handlers until StopHandle is called.
func Handle() {
	for sig := range sigChan {
		if sig == syscall.SIGINT || sig == syscall.SIGTERM {
			handleInterrupted()
		}
	}
}
