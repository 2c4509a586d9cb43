package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-mclib/protocol/auth"
	jp "github.com/go-mclib/protocol/java_protocol"
	session_server "github.com/go-mclib/protocol/java_protocol/session_server"
)

type Client struct {
	*jp.TCPClient

	// connection
	Address    string
	Username   string
	Verbose    bool
	OnlineMode bool
	ClientID   string
	Brand      string

	// reconnection
	MaxReconnectAttempts int
	shouldReconnect      bool
	forceClosed          bool

	Logger *log.Logger

	// auth/session (populated during connect)
	LoginData     auth.LoginData
	SessionClient *session_server.SessionServerClient

	// modules
	modules       []Module
	modulesByName map[string]Module
	handlers      []Handler

	// populated after Connect()
	resolvedHost string
	resolvedPort string

	// dispatch loop
	tasks    chan func()
	loopMu   sync.RWMutex
	loopDone chan struct{}
}

// ResolvedAddr returns the resolved host and port after Connect().
func (c *Client) ResolvedAddr() (host, port string) {
	return c.resolvedHost, c.resolvedPort
}

// New creates a minimal client. Register modules before calling ConnectAndStart.
func New(address, username string, onlineMode bool) *Client {
	return &Client{
		TCPClient:            jp.NewTCPClient(),
		Address:              address,
		Username:             username,
		OnlineMode:           onlineMode,
		Brand:                "vanilla",
		MaxReconnectAttempts: 5,
		Logger:               log.New(os.Stdout, "", log.LstdFlags),
		modulesByName:        make(map[string]Module),
		tasks:                make(chan func()),
	}
}

// Register adds a module to the client. Panics on duplicate name.
func (c *Client) Register(m Module) {
	if _, exists := c.modulesByName[m.Name()]; exists {
		panic("module already registered: " + m.Name())
	}
	c.modules = append(c.modules, m)
	c.modulesByName[m.Name()] = m
	m.Init(c)
}

// Module returns a registered module by name, or nil.
func (c *Client) Module(name string) Module {
	return c.modulesByName[name]
}

// RegisterHandler appends a lightweight packet callback (escape hatch).
func (c *Client) RegisterHandler(h Handler) {
	c.handlers = append(c.handlers, h)
}

// GetUsername returns the client's username.
func (c *Client) GetUsername() string { return c.Username }

// GetAddress returns the server address.
func (c *Client) GetAddress() string { return c.Address }

// Disconnect closes the connection. If force is true, no reconnect is attempted.
func (c *Client) Disconnect(force bool) error {
	c.shouldReconnect = !force
	c.forceClosed = force
	return c.TCPClient.Close()
}

// RunOnMain runs fn on the dispatch goroutine, the same goroutine that
// delivers packets to modules, and returns after fn has run. When no
// connection is active fn runs on the caller's goroutine.
func (c *Client) RunOnMain(fn func()) {
	c.loopMu.RLock()
	done := c.loopDone
	c.loopMu.RUnlock()
	if done == nil {
		fn()
		return
	}

	finished := make(chan struct{})
	select {
	case c.tasks <- func() { defer close(finished); fn() }:
	case <-done:
		return
	}
	select {
	case <-finished:
	case <-done:
	}
}

func (c *Client) setLoop(done chan struct{}) {
	c.loopMu.Lock()
	c.loopDone = done
	c.loopMu.Unlock()
}

// ConnectAndStart connects, performs auth, and enters the module dispatch
// loop, reconnecting according to MaxReconnectAttempts.
func (c *Client) ConnectAndStart(ctx context.Context) error {
	attempts := 0
	maxAttempts := c.MaxReconnectAttempts

	for {
		c.shouldReconnect = false
		c.forceClosed = false
		err := c.connectAndStartOnce(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return nil
		}

		c.Logger.Printf("connection error: %v", err)

		if !c.shouldReconnect || maxAttempts == 0 {
			c.Logger.Printf("not reconnecting, exiting...")
			return err
		}

		attempts++
		if maxAttempts > 0 && attempts > maxAttempts {
			c.Logger.Printf("max reconnect attempts (%d) reached, giving up", maxAttempts)
			return err
		}
		if maxAttempts == -1 {
			c.Logger.Printf("reconnecting in 3 seconds... (attempt %d)", attempts)
		} else {
			c.Logger.Printf("reconnecting in 3 seconds... (attempt %d/%d)", attempts, maxAttempts)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(3 * time.Second):
		}
	}
}

func (c *Client) connectAndStartOnce(ctx context.Context) error {
	c.TCPClient = jp.NewTCPClient()
	c.TCPClient.EnableDebug(c.Verbose)

	// reset all modules
	for _, m := range c.modules {
		m.Reset()
	}

	// TCP connect
	resolvedHost, resolvedPort, err := c.Connect(c.Address)
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	c.resolvedHost = resolvedHost
	c.resolvedPort = resolvedPort

	// auth
	if err := c.initializeAuth(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	c.setLoop(done)
	defer func() {
		c.setLoop(nil)
		close(done)
		for _, m := range c.modules {
			if dh, ok := m.(DisconnectHandler); ok {
				dh.OnDisconnect()
			}
		}
	}()

	// notify modules of connection
	for _, m := range c.modules {
		if ch, ok := m.(ConnectHandler); ok {
			ch.OnConnect()
		}
	}

	incoming := make(chan *jp.WirePacket, 64)
	readErr := make(chan error, 1)
	go func() {
		for {
			wire, err := c.ReadWirePacket()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case incoming <- wire:
			case <-done:
				return
			}
		}
	}()

	// dispatch loop: packets and main-thread tasks share one goroutine
	for {
		select {
		case wire := <-incoming:
			for _, m := range c.modules {
				m.HandlePacket(wire)
			}
			for _, h := range c.handlers {
				h(c, wire)
			}
		case fn := <-c.tasks:
			fn()
		case err := <-readErr:
			c.Logger.Println("read packet error:", err)
			c.shouldReconnect = !c.forceClosed
			return err
		case <-ctx.Done():
			_ = c.TCPClient.Close()
			return ctx.Err()
		}
	}
}
