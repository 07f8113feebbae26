package tcp

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/skaiser/dgate/rpc/common"
	"github.com/skaiser/dgate/rpc/transport"
)

// echoHandler answers every message with itself
type echoHandler struct{}

func (echoHandler) Handle(req []byte) []byte { return append([]byte(nil), req...) }

func (echoHandler) Close() {}

func startEchoServer(t *testing.T, idleMillis int) (string, <-chan transport.Event) {
	t.Helper()

	srv := NewTCPServerTransport()
	events := make(chan transport.Event, 16)
	srv.Subscribe(func(e transport.Event) { events <- e })
	srv.RegisterHandlerFactory(func() transport.IConnHandler { return echoHandler{} })

	config := common.DefaultServerConfig()
	config.Transport.Endpoint = "127.0.0.1:0"
	config.IdleTimeoutMillis = idleMillis

	go func() { _ = srv.Listen(config) }()

	waitForEvent(t, events, transport.EventListening)
	t.Cleanup(func() { srv.Close() })

	return srv.Addr().String(), events
}

func waitForEvent(t *testing.T, events <-chan transport.Event, want transport.EventType) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Type == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for event %q", want)
		}
	}
}

func TestRequestResponseRoundTrip(t *testing.T) {
	addr, _ := startEchoServer(t, 0)

	c := NewTCPClientTransport()
	config := common.ClientConfig{
		Transport:     common.ClientTransportConfig{Endpoint: addr},
		TimeoutSecond: 2,
	}
	if err := c.Connect(config); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	for _, msg := range [][]byte{
		[]byte(`{"db":"Relational"}`),
		[]byte("plain text"),
	} {
		resp, err := c.Send(msg)
		if err != nil {
			t.Fatalf("send failed: %v", err)
		}
		if !bytes.Equal(resp, msg) {
			t.Errorf("expected echo %q, got %q", msg, resp)
		}
	}
}

func TestConnectIsIdempotent(t *testing.T) {
	addr, _ := startEchoServer(t, 0)

	c := NewTCPClientTransport()
	config := common.ClientConfig{Transport: common.ClientTransportConfig{Endpoint: addr}, TimeoutSecond: 2}
	if err := c.Connect(config); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if err := c.Connect(config); err != nil {
		t.Fatalf("second connect failed: %v", err)
	}
	defer c.Close()

	if _, err := c.Send([]byte("ping")); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close failed: %v", err)
	}
}

func TestIdleConnectionIsDestroyed(t *testing.T) {
	addr, events := startEchoServer(t, 100)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	waitForEvent(t, events, transport.EventConnOpened)

	// Stay silent past the idle timeout
	waitForEvent(t, events, transport.EventConnTimeout)
	waitForEvent(t, events, transport.EventConnClosed)

	// The server closed the connection without writing anything
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if _, err := conn.Read(buf); err == nil {
		t.Fatal("expected closed connection, read succeeded")
	}
}

func TestZeroIdleTimeoutKeepsConnectionOpen(t *testing.T) {
	addr, _ := startEchoServer(t, 0)

	c := NewTCPClientTransport()
	config := common.ClientConfig{Transport: common.ClientTransportConfig{Endpoint: addr}, TimeoutSecond: 2}
	if err := c.Connect(config); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer c.Close()

	// Silence that would trip a (shorter) idle timeout
	time.Sleep(300 * time.Millisecond)

	if _, err := c.Send([]byte("still here")); err != nil {
		t.Fatalf("send after silence failed: %v", err)
	}
}
