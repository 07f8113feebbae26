// Package client implements the client side of the data gateway protocol.
// It sends requests over a configured transport and decodes the bare
// response payloads the gateway produces.
//
// The package focuses on:
//   - A small call API mirroring the four provider targets (Relational,
//     Document, CachedRecord, CachedRecordSet)
//   - Integration with the transport and serialization layers
//   - Distinguishing server-reported errors (ServerError) from transport
//     and serialization failures
//
// Key Components:
//
//   - NewGatewayClient: Factory function that creates a connected client.
//     The client owns one connection; the record cache on the server is
//     scoped to exactly this connection.
//
//   - GatewayClient.Call: Sends one request and blocks for its response.
//     Convenience wrappers exist per target.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  Transport:     common.ClientTransportConfig{Endpoint: "localhost:7000"},
//	  TimeoutSecond: 5,
//	}
//
//	c, _ := client.NewGatewayClient(config, tcp.NewTCPClientTransport(), serializer.NewJSONSerializer())
//	defer c.Close()
//
//	// Direct call, populates the connection's cache
//	student, _ := c.Relational("tenant-a", "Student", "findById", 5)
//
//	// Follow-up call on the cached record
//	parents, _ := c.CachedRecord("tenant-a", "student", "getParents")
//
// Thread Safety:
//
//	All public methods are thread-safe; concurrent calls are serialized by
//	the transport and answered in order.
package client
