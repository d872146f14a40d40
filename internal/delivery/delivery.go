// Package delivery groups the ways the service is driven: the HTTP API and the scheduler.
package delivery

import "context"

// Delivery is a long-running entry point started by the fx app.
type Delivery interface {
	Serve(ctx context.Context) error
}
