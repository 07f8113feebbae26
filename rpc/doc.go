// Package rpc provides the request/response protocol of the data gateway.
// It acts as the communication layer between clients and the gateway server,
// carrying method calls against the backing data providers across network
// boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the protocol,
//     including the Request/Response messages, provider targets,
//     configuration structures, and logging.
//
//   - cache: The per-connection, per-tenant record cache that makes
//     follow-up method calls on previously returned records possible.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets).
//
//   - serializer: Message serialization with multiple format options
//     (JSON, GOB, CBOR) for converting between payloads and byte arrays.
//
//   - client: The gateway client, a thin call API over the transport and
//     serializer layers.
//
//   - server: The gateway server, wiring transport, serializer, dispatcher
//     and providers together.
package rpc
