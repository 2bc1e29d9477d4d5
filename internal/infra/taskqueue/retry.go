package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const defaultMaxRetries = 3

// withRetry runs fn up to maxRetries times with exponential backoff from 100ms.
func withRetry[T any](ctx context.Context, maxRetries int, notificationID string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying task registration",
				slog.String("notification_id", notificationID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for task registration",
		slog.String("notification_id", notificationID),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return zero, fmt.Errorf("failed to register task after %d retries: %w", maxRetries, lastErr)
}
