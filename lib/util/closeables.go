package util

import (
	"io"
	"sync"
)

var (
	closeOnExit = map[int]io.Closer{}
	nextCloser  int
	closeMutex  sync.Mutex
)

// RegisterCloser registers c to be closed by CloseAll. The returned function removes the
// registration without closing c. This function is thread-safe.
func RegisterCloser(c io.Closer) (unregister func()) {
	closeMutex.Lock()
	defer closeMutex.Unlock()
	id := nextCloser
	nextCloser++
	closeOnExit[id] = c
	log.WithField("count", len(closeOnExit)).Debug("registered closer")
	return func() {
		closeMutex.Lock()
		defer closeMutex.Unlock()
		delete(closeOnExit, id)
	}
}

// CloseAll closes every registered io.Closer and clears the registry. Close errors are
// logged. This function is thread-safe.
func CloseAll() {
	closeMutex.Lock()
	pending := closeOnExit
	closeOnExit = map[int]io.Closer{}
	closeMutex.Unlock()

	log.WithField("count", len(pending)).Debug("closing registered closers")
	for _, c := range pending {
		if err := c.Close(); err != nil {
			log.WithError(err).Warn("error closing resource")
		}
	}
}
