package utils

import (
	"context"
	"time"
)

// StartSessionJanitor launches a background goroutine that periodically drops
// expired sessions until ctx is cancelled.
func StartSessionJanitor(ctx context.Context, store *SessionStore, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := store.Sweep(); n > 0 {
					Sugar.Debugf("session janitor dropped %d expired sessions", n)
				}
			}
		}
	}()
}
