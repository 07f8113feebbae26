package transport

import (
	"net"

	"github.com/skaiser/dgate/rpc/common"
)

// --------------------------------------------------------------------------
// Connection Lifecycle Events
// --------------------------------------------------------------------------

// EventType identifies a connection lifecycle event emitted by a server
// transport.
type EventType uint8

const (
	// EventListening is emitted once the listener accepts connections
	EventListening EventType = iota
	// EventConnOpened is emitted when a new connection was accepted
	EventConnOpened
	// EventConnClosed is emitted after a connection was torn down
	EventConnClosed
	// EventConnTimeout is emitted when a connection was destroyed because
	// it stayed idle past the configured timeout
	EventConnTimeout
)

// String returns the name of the event type
func (e EventType) String() string {
	switch e {
	case EventListening:
		return "listening"
	case EventConnOpened:
		return "connection opened"
	case EventConnClosed:
		return "connection closed"
	case EventConnTimeout:
		return "connection timeout"
	default:
		return "unknown"
	}
}

// Event is a connection lifecycle notification. Addr is the remote address
// of the affected connection, or the listen address for EventListening.
type Event struct {
	Type EventType
	Addr net.Addr
}

// EventListener receives lifecycle events. Listeners are called synchronously
// from the transport goroutines and must not block.
type EventListener func(e Event)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// IConnHandler processes the requests of exactly one connection. The
// transport guarantees strictly sequential calls: Handle is never invoked
// concurrently for the same handler, and Close is called exactly once after
// the last Handle returned.
type IConnHandler interface {
	// Handle processes a single raw request message and returns the raw
	// response message to write back
	Handle(req []byte) (resp []byte)
	// Close releases any per-connection state
	Close()
}

// HandlerFactory creates a new IConnHandler for each accepted connection
type HandlerFactory func() IConnHandler

// IRPCServerTransport is the interface for the server transport layer
// It must accept a ServerConfig as a parameter
type IRPCServerTransport interface {
	// RegisterHandlerFactory registers the factory that supplies one
	// handler per accepted connection
	RegisterHandlerFactory(factory HandlerFactory)
	// Subscribe registers a listener for connection lifecycle events
	Subscribe(listener EventListener)
	// Listen starts the transport layer and blocks serving connections
	// until Close is called
	Listen(config common.ServerConfig) error
	// Addr returns the bound listen address (nil before Listen)
	Addr() net.Addr
	// Close stops the listener and terminates Listen
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the client transport layer.
// A client transport owns a single connection and matches the sequential
// request/response contract of the protocol: Send writes one message and
// blocks until the next message arrives.
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration.
	// Calling Connect on an already connected transport is a no-op.
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response
	Send(req []byte) (resp []byte, err error)
	// Close closes the transport connection (idempotent)
	Close() error
}
