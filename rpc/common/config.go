package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Shared transport tuning
// --------------------------------------------------------------------------

// SocketConf holds socket buffer tuning shared by all stream transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP-specific tuning (ignored by unix sockets).
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Supported stream encodings. EncodingBinary treats the stream as raw
// single-byte-per-character data and is the default; EncodingUTF8 is
// equivalent on the Go side (byte passthrough) but is validated so a typo
// in configuration fails loudly.
const (
	EncodingBinary = "binary"
	EncodingUTF8   = "utf-8"
)

// ValidateEncoding checks that the configured stream encoding is supported.
func ValidateEncoding(enc string) error {
	switch enc {
	case EncodingBinary, EncodingUTF8:
		return nil
	default:
		return fmt.Errorf("unsupported stream encoding %q (expected %s or %s)", enc, EncodingBinary, EncodingUTF8)
	}
}

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

// DefaultIdleTimeoutMillis is the idle timeout applied to accepted
// connections when none is configured. A value of 0 disables the timeout.
const DefaultIdleTimeoutMillis = 10000

// ServerTransportConfig holds the listen endpoint and socket tuning of the
// server transport.
type ServerTransportConfig struct {
	Endpoint string
	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters for the gateway server.
type ServerConfig struct {
	Transport ServerTransportConfig

	// IdleTimeoutMillis destroys a connection that stays silent for the
	// given duration; 0 disables the timeout entirely.
	IdleTimeoutMillis int

	// Encoding is the stream text encoding (see ValidateEncoding)
	Encoding string

	// MetricsEndpoint optionally serves Prometheus metrics over HTTP;
	// empty disables the listener.
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// DefaultServerConfig returns a ServerConfig with the protocol defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Transport:         ServerTransportConfig{Endpoint: "0.0.0.0:7000"},
		IdleTimeoutMillis: DefaultIdleTimeoutMillis,
		Encoding:          EncodingBinary,
		LogLevel:          "info",
	}
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Gateway Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Idle Timeout", fmt.Sprintf("%d ms", c.IdleTimeoutMillis))
	addField("Encoding", c.Encoding)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	addSection("Socket")
	addField("Write Buffer", strconv.Itoa(c.Transport.WriteBufferSize))
	addField("Read Buffer", strconv.Itoa(c.Transport.ReadBufferSize))
	addField("TCP NoDelay", fmt.Sprintf("%t", c.Transport.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.Transport.TCPLingerSec))

	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientTransportConfig holds the endpoint and socket tuning of the client
// transport. The protocol is strictly sequential per connection, so the
// client owns exactly one connection to one endpoint.
type ClientTransportConfig struct {
	Endpoint string
	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters for the gateway client.
type ClientConfig struct {
	Transport     ClientTransportConfig
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	return sb.String()
}
