// Package common provides core data structures and utilities shared across
// the data-provider gateway. It defines the wire protocol elements,
// configuration structures and logging used by other packages.
//
// The package focuses on:
//   - Request/Response protocol definition for client-server communication
//   - Configuration structures for client and server components
//   - Custom logging built on the dragonboat logger facade
//
// Key Components:
//
//   - Request: One protocol message from client to server, naming a
//     provider target, a tenant, a model, a method and positional params.
//     The provider target travels under the historical wire field "db".
//
//   - ProviderTarget: Enumeration of the four dispatch targets (Relational,
//     Document, CachedRecord, CachedRecordSet) with string (de)serialization.
//
//   - Response: One protocol message from server to client: either the
//     normalized result payload or an {"error": msg} object. Payload and
//     ResponseFromPayload convert between the struct and the wire shape.
//
//   - ServerConfig / ClientConfig: Configuration for both ends including
//     idle-timeout policy, stream encoding and socket tuning.
//
//   - Logger: Custom logging implementation that plugs into the dragonboat
//     logging facade while providing consistent formatting.
package common
