package interactions

import (
	"context"
	"sync"
	"time"

	"github.com/go-mclib/mousewheel/pkg/client"
	jp "github.com/go-mclib/protocol/java_protocol"
)

const ModuleName = "interactions"

// Timing supplies the queue's rate limit and acknowledgement timeout.
type Timing interface {
	InteractionInterval() time.Duration
	AckTimeout() time.Duration
}

// Module owns the client's interaction queue and runs its worker for the
// lifetime of each connection.
type Module struct {
	client *client.Client
	queue  *Queue

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(timing Timing) *Module {
	q := NewQueue()
	if timing != nil {
		q.Interval = timing.InteractionInterval
		q.AckTimeout = timing.AckTimeout
	}
	return &Module{queue: q}
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) {
	m.client = c
	m.queue.Main = c.RunOnMain
	m.queue.Logger = c.Logger
}

func (m *Module) HandlePacket(*jp.WirePacket) {}

func (m *Module) Reset() {
	m.stop()
	if n := m.queue.Clear(); n > 0 {
		m.client.Logger.Printf("interactions: dropped %d pending events", n)
	}
}

// From retrieves the interactions module from a client.
func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

func (m *Module) OnConnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	m.queue.Logger = m.client.Logger
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	go func() {
		defer close(done)
		m.queue.Run(ctx)
	}()
}

func (m *Module) OnDisconnect() { m.stop() }

func (m *Module) stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Push enqueues ev. Nil events are ignored.
func (m *Module) Push(ev Event) { m.queue.Push(ev) }

func (m *Module) Queue() *Queue { return m.queue }
