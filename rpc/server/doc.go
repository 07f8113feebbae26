// Package server implements the request side of the data gateway. It wires
// the transport, the serializer and the two data providers together and
// drives the per-connection request pipeline: decode, validate, resolve,
// invoke, cache and normalize.
//
// The package focuses on:
//   - Dispatching requests to the relational or document provider, or to
//     records cached by earlier calls on the same connection
//   - Per-connection, per-tenant record caching with wipe-on-direct-call
//     semantics (see the rpc/cache package)
//   - Normalizing provider results to plain serializer-safe values
//   - Uniform error reporting: every failure, including panics inside a
//     provider, is answered with an error payload on the same connection
//
// Key Components:
//
//   - IDispatcher/Dispatcher: The request pipeline. A single dispatcher
//     instance serves all connections; per-connection state lives in the
//     record cache handed to Dispatch.
//
//   - GatewayServer: Ties config, transport, serializer and dispatcher
//     together and creates one handler (with one record cache) per accepted
//     connection.
//
//   - Normalize: Flattens records through their capability interfaces so
//     results survive serialization.
//
// Usage Example:
//
//	config := common.DefaultServerConfig()
//
//	s := server.NewGatewayServer(
//	  config,
//	  relationalProvider,
//	  documentProvider,
//	  tcp.NewTCPServerTransport(),
//	  serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server handles connections concurrently; requests within one
//	connection are strictly sequential, which is what makes the lock-free
//	record cache safe. The Serve method is not thread-safe and should be
//	called only once.
package server
