package interactions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	sent []int
}

func (r *recorder) add(id int) {
	r.mu.Lock()
	r.sent = append(r.sent, id)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sent...)
}

func event(r *recorder, id int, main bool) Event {
	return NewCallbackEvent(func() Waiter {
		r.add(id)
		return Done
	}, main)
}

func runQueue(t *testing.T, q *Queue) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		q.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue()
	r := &recorder{}
	for i := range 20 {
		q.Push(event(r, i, false))
		q.Push(nil)
	}
	assert.Equal(t, 20, q.Len())

	stop := runQueue(t, q)
	defer stop()

	require.Eventually(t, func() bool { return len(r.snapshot()) == 20 }, time.Second, 5*time.Millisecond)
	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, r.snapshot())
	assert.Zero(t, q.Len())
}

func TestQueueMainExecutor(t *testing.T) {
	q := NewQueue()
	var mainCalls int
	var mu sync.Mutex
	q.Main = func(fn func()) {
		mu.Lock()
		mainCalls++
		mu.Unlock()
		fn()
	}
	r := &recorder{}
	q.Push(event(r, 1, true))
	q.Push(event(r, 2, false))
	q.Push(event(r, 3, true))

	stop := runQueue(t, q)
	defer stop()

	require.Eventually(t, func() bool { return len(r.snapshot()) == 3 }, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, mainCalls)
}

func TestQueueWaitsForAcknowledgement(t *testing.T) {
	q := NewQueue()
	q.AckTimeout = func() time.Duration { return time.Second }

	ack := make(chan struct{})
	r := &recorder{}
	q.Push(NewCallbackEvent(func() Waiter {
		r.add(1)
		return ChanWaiter(ack)
	}, false))
	q.Push(event(r, 2, false))

	stop := runQueue(t, q)
	defer stop()

	require.Eventually(t, func() bool { return len(r.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []int{1}, r.snapshot(), "second event must wait for the first acknowledgement")

	close(ack)
	require.Eventually(t, func() bool { return len(r.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestQueueAckTimeout(t *testing.T) {
	q := NewQueue()
	q.AckTimeout = func() time.Duration { return 20 * time.Millisecond }

	r := &recorder{}
	never := make(chan struct{})
	q.Push(NewCallbackEvent(func() Waiter {
		r.add(1)
		return ChanWaiter(never)
	}, false))
	q.Push(event(r, 2, false))

	stop := runQueue(t, q)
	defer stop()

	require.Eventually(t, func() bool { return len(r.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestQueueInterval(t *testing.T) {
	q := NewQueue()
	q.Interval = func() time.Duration { return 30 * time.Millisecond }

	var mu sync.Mutex
	var times []time.Time
	for range 3 {
		q.Push(NewCallbackEvent(func() Waiter {
			mu.Lock()
			times = append(times, time.Now())
			mu.Unlock()
			return nil
		}, false))
	}

	stop := runQueue(t, q)
	defer stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(times) == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(times); i++ {
		assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), 25*time.Millisecond)
	}
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	r := &recorder{}
	q.Push(event(r, 1, false))
	q.Push(event(r, 2, false))
	assert.Equal(t, 2, q.Clear())
	assert.Zero(t, q.Len())
}

func TestCallbackEventNilWaiter(t *testing.T) {
	ev := NewCallbackEvent(func() Waiter { return nil }, true)
	assert.True(t, ev.RunOnMain())
	assert.Equal(t, Done, ev.Send())
}

func TestChanWaiterContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ChanWaiter(make(chan struct{})).Wait(ctx), context.Canceled)
}
