// Package cmd implements the command-line interface for the dgate data
// gateway. It provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - call: Commands for sending requests to a running gateway, including a
//     performance testing tool
//   - serve: Commands for starting and configuring the dgate server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dgate -help for a list of all commands.
package cmd
