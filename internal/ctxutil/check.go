// Package ctxutil provides small context helpers shared by the storage
// backends.
package ctxutil

import "context"

// Canceled reports whether the context is done, returning its error
// (Canceled or DeadlineExceeded) or nil. Storage operations call it on
// entry so a dead context never reaches the disk or the network.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
