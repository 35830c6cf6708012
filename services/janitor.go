package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunTokenJanitor deletes expired refresh-token records every interval until
// ctx is cancelled. It blocks; run it in its own goroutine.
func RunTokenJanitor(ctx context.Context, tokens *TokenService, interval time.Duration, logger *zap.SugaredLogger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.CleanupExpired(ctx)
			if err != nil {
				logger.Warnw("Failed to clean up expired refresh tokens", "error", err)
				continue
			}
			if n > 0 {
				logger.Infow("Expired refresh tokens removed", "count", n)
			}
		}
	}
}
