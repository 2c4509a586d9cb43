package client

import jp "github.com/go-mclib/protocol/java_protocol"

// Module is a pluggable game-state component.
type Module interface {
	// Name returns a unique key for this module (e.g. "protocol", "inventory", "scrolling").
	Name() string
	// Init is called once when the module is registered on a client.
	// Store the *Client reference for later use.
	Init(c *Client)
	// HandlePacket is called for every incoming packet in any connection state,
	// always from the client's dispatch goroutine.
	HandlePacket(pkt *jp.WirePacket)
	// Reset is called on reconnect to clear module state.
	Reset()
}

// ConnectHandler is optionally implemented by modules that need to act
// after TCP connection is established but before the packet loop starts.
// The protocol module uses this to send handshake + login start.
type ConnectHandler interface {
	OnConnect()
}

// DisconnectHandler is optionally implemented by modules that own
// background work tied to a single connection.
type DisconnectHandler interface {
	OnDisconnect()
}

// Handler is a lightweight packet callback for one-off matching.
type Handler func(c *Client, pkt *jp.WirePacket)
