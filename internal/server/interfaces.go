package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
//
// Implementations are expected to block in [RunServer] until the context is
// cancelled or a termination signal arrives, and to release resources in
// [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until ctx is cancelled
	// or a termination signal is received.
	RunServer(ctx context.Context)

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
