// Package serializer provides message serialization for the gateway
// protocol. It defines a common interface and multiple implementations for
// serializing requests and response payloads between client and server.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Offering multiple implementations with different characteristics
//   - Keeping the decoded payload shape identical across formats
//
// Key Components:
//
//   - IRPCSerializer: Core interface that all serializer implementations
//     must satisfy. It is generic over the two shapes the protocol carries:
//     *common.Request inbound and arbitrary JSON-safe payloads outbound.
//
//   - jsonSerializerImpl: The protocol's published wire format and the
//     default everywhere. Any client that speaks newline-free JSON objects
//     can interoperate with it.
//
//   - cborSerializerImpl: Compact binary alternative built on
//     fxamacker/cbor. Maps decode as map[string]any so payloads look
//     exactly like their JSON-decoded counterparts.
//
//   - gobSerializerImpl: Go-native binary encoding. Payload values travel
//     inside an envelope struct so interface-typed (and nil) values can be
//     carried.
//
// The non-JSON serializers are point-to-point options for deployments
// where both ends are this implementation.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package serializer
