package base

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/skaiser/dgate/rpc/common"
	"github.com/skaiser/dgate/rpc/transport"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	factory    transport.HandlerFactory
	config     common.ServerConfig
	listener   net.Listener
	listeners  []transport.EventListener
	bufferPool *sync.Pool
	bufferSize int
	mu         sync.Mutex
	closed     bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the specified
// connector and read buffer size
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IRPCServerTransport {
	return &serverTransport{
		connector:  connector,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return make([]byte, bufferSize)
			},
		},
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandlerFactory(factory transport.HandlerFactory) {
	t.factory = factory
}

func (t *serverTransport) Subscribe(listener transport.EventListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.factory == nil {
		return fmt.Errorf("no handler factory registered")
	}
	t.config = config

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %v", err)
	}

	t.mu.Lock()
	t.listener = listener
	t.closed = false
	t.mu.Unlock()

	Logger.Infof("Starting %s server on %s (idle timeout %d ms)",
		t.connector.GetName(), listener.Addr(), config.IdleTimeoutMillis)

	t.emit(transport.EventListening, listener.Addr())

	// Accept connections
	for {
		conn, err := listener.Accept()
		if err != nil {
			if t.isClosed() || errors.Is(err, net.ErrClosed) {
				Logger.Infof("Listener on %s shut down", listener.Addr())
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		// Handle the connection in a goroutine
		go t.handleConnection(conn)
	}
}

func (t *serverTransport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.listener == nil {
		return nil
	}
	t.closed = true
	return t.listener.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (t *serverTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// emit notifies all subscribed listeners
func (t *serverTransport) emit(eventType transport.EventType, addr net.Addr) {
	t.mu.Lock()
	listeners := t.listeners
	t.mu.Unlock()

	for _, l := range listeners {
		l(transport.Event{Type: eventType, Addr: addr})
	}
}

// handleConnection serves one connection until it is closed by the peer,
// destroyed by the idle timeout or hit by an unrecoverable error.
//
// Requests are processed strictly in order: one read, one handler call, one
// write. A single read is assumed to deliver one complete message, which
// holds for small messages on local links but has no framing to back it up
// for larger payloads.
func (t *serverTransport) handleConnection(conn net.Conn) {
	defer conn.Close()

	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		Logger.Errorf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
		return
	}

	// Per-connection handler (owns the connection state)
	handler := t.factory()
	defer handler.Close()

	Logger.Infof("Client connected from %s", conn.RemoteAddr())
	t.emit(transport.EventConnOpened, conn.RemoteAddr())
	defer t.emit(transport.EventConnClosed, conn.RemoteAddr())

	// Idle timeout, 0 disables
	idle := time.Duration(t.config.IdleTimeoutMillis) * time.Millisecond

	// Get a buffer from the pool
	buf := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(buf)

	for {
		if idle > 0 {
			if err := conn.SetReadDeadline(time.Now().Add(idle)); err != nil {
				Logger.Errorf("Failed to set read deadline: %v", err)
				return
			}
		}

		n, err := conn.Read(buf)

		// Case EOF: connection closed by client
		if err == io.EOF {
			Logger.Infof("Connection closed by client %s", conn.RemoteAddr())
			return
		}

		// Case idle timeout: destroy the connection without a response
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			Logger.Infof("Destroying idle connection from %s after %d ms", conn.RemoteAddr(), t.config.IdleTimeoutMillis)
			t.emit(transport.EventConnTimeout, conn.RemoteAddr())
			return
		}

		// Case other read error: log and close connection
		if err != nil {
			Logger.Errorf("Error reading from %s: %v", conn.RemoteAddr(), err)
			return
		}

		start := time.Now()
		resp := handler.Handle(buf[:n])
		Logger.Debugf("Processed request from %s in %s", conn.RemoteAddr(), time.Since(start))

		if resp == nil {
			continue
		}

		// Write failures are logged but never tear down the handler state:
		// the next read on the broken connection surfaces the error
		if _, err := conn.Write(resp); err != nil {
			Logger.Errorf("Failed to write response to %s: %v", conn.RemoteAddr(), err)
		}
	}
}
