package server

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/skaiser/dgate/lib/provider"
	"github.com/skaiser/dgate/rpc/cache"
	"github.com/skaiser/dgate/rpc/common"
	"github.com/skaiser/dgate/rpc/serializer"
	"github.com/skaiser/dgate/rpc/transport"
)

var Logger = logger.GetLogger("rpc")

// NewGatewayServer creates a new gateway server
// It takes a config, the two providers, a transport and a serializer as
// parameters
//
// Usage:
//
//	s := server.NewGatewayServer(
//		config,
//		relationalProvider,
//		documentProvider,
//		tcp.NewTCPServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewGatewayServer(
	config common.ServerConfig,
	relational provider.IProvider,
	document provider.IProvider,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *GatewayServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created Gateway Server")
	Logger.Infof(config.String())

	return &GatewayServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		dispatcher: NewDispatcher(relational, document),
		sessions:   xsync.NewMapOf[uint64, *gatewayConn](),
	}
}

// GatewayServer ties together the transport, the serializer and the
// dispatcher. Each accepted connection gets its own gatewayConn handler
// with its own record cache; the sessions map tracks the live handlers.
type GatewayServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	dispatcher IDispatcher
	sessions   *xsync.MapOf[uint64, *gatewayConn]
	nextConnID uint64
}

// Serve initializes the server and starts the transport layer. It blocks
// until Close is called or the listener fails.
func (s *GatewayServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

// Close stops the listener and terminates Serve
func (s *GatewayServer) Close() error {
	return s.transport.Close()
}

// Addr returns the bound listen address (nil before Serve)
func (s *GatewayServer) Addr() net.Addr {
	return s.transport.Addr()
}

// Subscribe registers a listener for connection lifecycle events
func (s *GatewayServer) Subscribe(l transport.EventListener) {
	s.transport.Subscribe(l)
}

// ActiveConnections returns the number of currently served connections
func (s *GatewayServer) ActiveConnections() int {
	return s.sessions.Size()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (s *GatewayServer) init() error {

	// Init logger
	common.InitLoggers(s.config.LogLevel)

	// Reject unknown stream encodings before opening the listener
	if err := common.ValidateEncoding(s.config.Encoding); err != nil {
		return err
	}

	// Track connection lifecycle in the metrics
	s.transport.Subscribe(func(e transport.Event) {
		switch e.Type {
		case transport.EventConnOpened:
			connectionsTotal.Inc()
			connectionsActive.Inc()
		case transport.EventConnClosed:
			connectionsActive.Dec()
		case transport.EventConnTimeout:
			idleTimeoutsTotal.Inc()
		}
	})

	// Optionally expose Prometheus metrics over HTTP
	if s.config.MetricsEndpoint != "" {
		go s.serveMetrics()
	}

	s.registerTransportHandler()
	return nil
}

// registerTransportHandler installs the per-connection handler factory
func (s *GatewayServer) registerTransportHandler() {
	s.transport.RegisterHandlerFactory(func() transport.IConnHandler {
		id := atomic.AddUint64(&s.nextConnID, 1)
		conn := &gatewayConn{
			id:     id,
			server: s,
			cache:  cache.New(),
		}
		s.sessions.Store(id, conn)
		return conn
	})
}

// serveMetrics exposes the VictoriaMetrics registry in Prometheus text format
func (s *GatewayServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	Logger.Infof("Serving metrics on http://%s/metrics", s.config.MetricsEndpoint)
	if err := http.ListenAndServe(s.config.MetricsEndpoint, mux); err != nil {
		Logger.Errorf("Metrics listener failed: %v", err)
	}
}

// --------------------------------------------------------------------------
// Per-Connection Handler
// --------------------------------------------------------------------------

// gatewayConn is the handler for one connection. It owns the connection's
// record cache; the transport guarantees sequential Handle calls, so the
// cache needs no locking.
type gatewayConn struct {
	id     uint64
	server *GatewayServer
	cache  *cache.RecordCache
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IConnHandler)
// --------------------------------------------------------------------------

func (c *gatewayConn) Handle(raw []byte) []byte {
	var resp *common.Response

	// Decode the request
	var req common.Request
	if err := c.server.serializer.Deserialize(raw, &req); err != nil {
		// Malformed messages are answered, never fatal for the connection
		Logger.Debugf("Failed to deserialize request on connection %d: %v", c.id, err)
		resp = common.NewErrorResponse(common.ErrSignatureMismatch)
	} else {
		resp = c.server.dispatcher.Dispatch(context.Background(), &req, c.cache)
	}

	// Encode the bare payload (result, null or error object)
	out, err := c.server.serializer.Serialize(resp.Payload())
	if err != nil {
		Logger.Errorf("Failed to serialize response on connection %d: %v", c.id, err)
		out, _ = c.server.serializer.Serialize(map[string]any{"error": "failed to serialize response"})
	}
	return out
}

func (c *gatewayConn) Close() {
	c.server.sessions.Delete(c.id)
}
