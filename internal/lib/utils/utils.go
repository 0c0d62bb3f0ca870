// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"context"
	"time"
)

// Sleep pauses for d or until ctx is done, whichever comes first.
//
// It returns ctx.Err() when the context ends the wait early, so callers
// simulating latency still stop as soon as the client goes away.
// A non-positive d returns immediately (unless ctx is already done).
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
