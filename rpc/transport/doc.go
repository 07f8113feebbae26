// Package transport defines the interfaces and abstractions for the gateway's
// socket communication. It provides a common contract that all transport
// implementations must fulfill, enabling protocol-agnostic communication.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Per-connection handler ownership with strictly sequential dispatch
//   - Connection lifecycle events (listening, opened, closed, timeout)
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations
//     that manages a single connection and sends one request at a time.
//
//   - IRPCServerTransport: Interface for server-side transport implementations
//     that accepts connections and drives one handler per connection.
//
//   - IConnHandler/HandlerFactory: Per-connection request processing. The
//     factory is invoked once per accepted connection so handlers can carry
//     connection-scoped state without locking.
package transport
