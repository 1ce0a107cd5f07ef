// Package delivery defines the entry points through which the application
// serves traffic. Servers are collected in an fx value group and started
// together by the composition root.
package delivery

import "context"

// Delivery is a long-running server (HTTP API, pubsub worker).
type Delivery interface {
	// Serve blocks until the server stops or the context is cancelled.
	Serve(ctx context.Context) error
}
