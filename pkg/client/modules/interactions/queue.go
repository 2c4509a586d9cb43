package interactions

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Queue is an unbounded FIFO of events drained by a single worker.
// Events are submitted one at a time in push order.
type Queue struct {
	mu     sync.Mutex
	events []Event
	notify chan struct{}

	// Interval is the pause after each submitted event.
	Interval func() time.Duration
	// AckTimeout bounds the wait on each event's Waiter. Zero means no wait.
	AckTimeout func() time.Duration
	// Main runs fn on the client's dispatch goroutine and returns once fn
	// has run. Nil runs fn inline on the worker.
	Main func(fn func())

	Logger *log.Logger
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push appends ev. A nil event is ignored.
func (q *Queue) Push(ev Event) {
	if ev == nil {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Clear drops all pending events and returns how many were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.events)
	q.events = nil
	return n
}

func (q *Queue) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

// Run drains the queue until ctx is done.
func (q *Queue) Run(ctx context.Context) {
	for {
		ev, ok := q.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.notify:
				continue
			}
		}
		q.submit(ctx, ev)

		if d := q.interval(); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		} else if ctx.Err() != nil {
			return
		}
	}
}

func (q *Queue) submit(ctx context.Context, ev Event) {
	var w Waiter
	if ev.RunOnMain() && q.Main != nil {
		q.Main(func() { w = ev.Send() })
	} else {
		w = ev.Send()
	}
	if w == nil {
		return
	}

	timeout := q.ackTimeout()
	if timeout <= 0 {
		return
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := w.Wait(waitCtx); err != nil && !errors.Is(err, context.Canceled) {
		if q.Logger != nil {
			q.Logger.Println("interactions: waiting for acknowledgement:", err)
		}
	}
}

func (q *Queue) interval() time.Duration {
	if q.Interval == nil {
		return 0
	}
	return q.Interval()
}

func (q *Queue) ackTimeout() time.Duration {
	if q.AckTimeout == nil {
		return 0
	}
	return q.AckTimeout()
}
