package httputil

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/macrosig/pkg/logger"
)

// Attempt is one candidate source in an ordered fallback chain
type Attempt struct {
	Name string
	Fn   func(ctx context.Context) error
}

// TryInOrder runs attempts sequentially and stops at the first success.
// A fixed delay separates attempts; there is no backoff and no jitter.
// Returns the name of the attempt that succeeded.
func TryInOrder(ctx context.Context, log *logger.Logger, delay time.Duration, attempts []Attempt) (string, error) {
	if len(attempts) == 0 {
		return "", fmt.Errorf("no attempts configured")
	}

	var lastErr error
	for i, attempt := range attempts {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := attempt.Fn(ctx); err != nil {
			lastErr = err
			log.WithFields(map[string]interface{}{
				"source": attempt.Name,
				"error":  err.Error(),
			}).Warn("Source failed, trying next")
			continue
		}

		log.WithField("source", attempt.Name).Debug("Source succeeded")
		return attempt.Name, nil
	}

	return "", fmt.Errorf("all %d sources failed, last error: %w", len(attempts), lastErr)
}
