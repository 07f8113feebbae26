package base

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/skaiser/dgate/rpc/common"
	"github.com/skaiser/dgate/rpc/transport"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection based on the provided configuration
	Connect(endpoint string) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
//
// The protocol is strictly sequential per connection, so the transport owns
// exactly one connection and matches each written request with the next
// message read from the stream. A mutex serializes concurrent Send calls.
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig
	conn      net.Conn
	connMu    sync.Mutex
	buf       []byte
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the
// specified connector and read buffer size
func NewBaseClientTransport(connector IClientConnector, bufferSize int) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
		buf:       make([]byte, bufferSize),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	// Already connected, nothing to do
	if t.conn != nil {
		return nil
	}

	if config.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}
	t.config = config

	conn, err := t.connector.Connect(config.Transport.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %v", config.Transport.Endpoint, err)
	}

	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		return fmt.Errorf("failed to upgrade connection to %s: %v", config.Transport.Endpoint, err)
	}

	t.conn = conn
	Logger.Infof("Connected to %s using %s transport", config.Transport.Endpoint, t.connector.GetName())
	return nil
}

func (t *clientTransport) Send(req []byte) (resp []byte, err error) {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	if t.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second

	if timeout > 0 {
		if err := t.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return nil, fmt.Errorf("failed to set write deadline: %v", err)
		}
	}

	if _, err := t.conn.Write(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}

	if timeout > 0 {
		if err := t.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %v", err)
		}
	}

	// Read the next message off the stream, it answers the request just
	// written (one read, one message)
	n, err := t.conn.Read(t.buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	// Copy out of the reusable buffer
	out := make([]byte, n)
	copy(out, t.buf[:n])
	return out, nil
}

func (t *clientTransport) Close() error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	if t.conn == nil {
		return nil
	}

	err := t.conn.Close()
	t.conn = nil
	return err
}
