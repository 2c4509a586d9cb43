package interactions

import "context"

// Waiter reports when a submitted event has been acknowledged.
type Waiter interface {
	Wait(ctx context.Context) error
}

// WaiterFunc adapts a function to Waiter.
type WaiterFunc func(ctx context.Context) error

func (f WaiterFunc) Wait(ctx context.Context) error { return f(ctx) }

type doneWaiter struct{}

func (doneWaiter) Wait(context.Context) error { return nil }

// Done is a Waiter that is already complete.
var Done Waiter = doneWaiter{}

// ChanWaiter completes once the channel is closed.
type ChanWaiter <-chan struct{}

func (w ChanWaiter) Wait(ctx context.Context) error {
	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Event is one atomic interaction with the server.
type Event interface {
	// Send submits the event and returns a handle for its acknowledgement.
	Send() Waiter
	// RunOnMain reports whether Send must run on the client's dispatch goroutine.
	RunOnMain() bool
}

// CallbackEvent is a deferred event whose submission runs body.
type CallbackEvent struct {
	body      func() Waiter
	runOnMain bool
}

func NewCallbackEvent(body func() Waiter, runOnMain bool) *CallbackEvent {
	return &CallbackEvent{body: body, runOnMain: runOnMain}
}

func (e *CallbackEvent) Send() Waiter {
	if w := e.body(); w != nil {
		return w
	}
	return Done
}

func (e *CallbackEvent) RunOnMain() bool { return e.runOnMain }
