package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Sleeper is the loop's only suspension primitive besides network calls.
// Sleep returns early with the context error on cancellation.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
