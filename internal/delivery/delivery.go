// Package delivery defines the contract for long-running servers
// managed by the application entry point.
package delivery

import "context"

// Delivery is a server started by the entry point and stopped through
// the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
