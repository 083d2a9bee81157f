package flightclient

import (
	"context"
	"time"
)

// simulateLatency blocks for d or until ctx is done, whichever comes first.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func hoursFrom(base time.Time, h int) *time.Time {
	t := base.Add(time.Duration(h) * time.Hour)
	return &t
}
