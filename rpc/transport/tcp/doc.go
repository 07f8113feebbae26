// Package tcp implements the TCP socket-based transport for the gateway.
// It provides concrete implementations of the base package's connector
// interfaces optimized for TCP connections.
//
// This package builds on the base package's transport functionality,
// inheriting its sequential request handling, idle connection reaping and
// buffer reuse. See the base package documentation for details on the
// underlying transport mechanics and wire format.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
//
// The default message buffer size is 512 KB, which bounds the size of a
// single request or response message.
package tcp
