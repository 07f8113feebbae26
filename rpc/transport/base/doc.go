// Package base provides a foundation for the gateway's transport layers,
// implementing core functionality for socket communication independent of the
// specific network protocol (TCP, Unix sockets, etc.). It serves as a base
// layer that can be extended with protocol-specific connectors.
//
// The package focuses on:
//   - Protocol-agnostic client and server transport implementations
//   - Strictly sequential request/response processing per connection
//   - Idle connection reaping driven by read deadlines
//   - Buffer reuse through a sync.Pool on the server side
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific
//     operations that allow extending the base transport with different
//     network protocols.
//
//   - clientTransport: Core client implementation that owns a single
//     connection and matches each request with the next message read from
//     the stream.
//
//   - serverTransport: Core server implementation that accepts connections
//     and drives one IConnHandler per connection in a dedicated goroutine.
//
// Wire Format:
//
//	Messages are not length-prefixed. One socket read is treated as one
//	complete message, mirroring the chunk handling of the protocol this
//	gateway implements. Payloads that exceed a single segment are therefore
//	not reassembled.
//
// Thread Safety:
//
//	All public methods are thread-safe. Each connection is served by exactly
//	one goroutine, so handlers never see concurrent calls; the client
//	transport serializes Send calls with a mutex.
package base
