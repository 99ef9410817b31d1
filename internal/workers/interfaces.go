// Package workers runs the long-lived background loops of the worker
// process, one per job queue, and waits for all of them on shutdown.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is canceled or the loop
// cannot continue.
//
// Example implementation:
//
//	type TickWorker struct{}
//
//	func (w *TickWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
