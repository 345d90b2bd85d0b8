package sshio

import (
	"context"
	"time"
)

// Deadliner is implemented by connections that support I/O deadlines, such as net.Conn.
type Deadliner interface {
	SetDeadline(t time.Time) error
}

// aLongTimeAgo is a non-zero time in the past; setting it as a deadline unblocks pending I/O.
var aLongTimeAgo = time.Unix(1, 0)

// WatchContext ties ctx to the deadline of conn for the duration of one operation. The
// returned stop function must be called when the operation finishes; it clears the deadline.
// If conn is not a Deadliner, cancellation cannot interrupt blocked I/O and only the
// context error is checked by the caller.
func WatchContext(ctx context.Context, conn interface{}) (stop func()) {
	d, ok := conn.(Deadliner)
	if !ok {
		return func() {}
	}
	if deadline, has := ctx.Deadline(); has {
		_ = d.SetDeadline(deadline)
	}
	if ctx.Done() == nil {
		return func() { _ = d.SetDeadline(time.Time{}) }
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			_ = d.SetDeadline(aLongTimeAgo)
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-finished
		_ = d.SetDeadline(time.Time{})
	}
}

// ContextError converts err into ErrTimeout when ctx has expired or been cancelled,
// so callers see one uniform timeout kind regardless of which layer noticed it.
func ContextError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if KindOf(err) == KindTimeout {
			return err
		}
		return WrapIO(timeoutError{ctxErr}, "context done")
	}
	return err
}

type timeoutError struct{ err error }

func (e timeoutError) Error() string   { return e.err.Error() }
func (e timeoutError) Unwrap() error   { return e.err }
func (e timeoutError) Timeout() bool   { return true }
func (e timeoutError) Temporary() bool { return false }
