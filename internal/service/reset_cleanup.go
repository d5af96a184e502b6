package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ResetCleanup periodically purges expired reset codes for the lifetime
// of the process. Purge failures are logged and the loop keeps ticking.
type ResetCleanup struct {
	Codes    ResetCodeStore
	Interval time.Duration
}

// Run blocks until ctx is cancelled. The timer wait itself observes ctx,
// so shutdown never has to sit out a full interval.
func (w *ResetCleanup) Run(ctx context.Context) {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Minute * 10
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	zap.L().Debug("Reset code cleanup attached", zap.Duration("tick_every", interval))

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Reset code cleanup stopping")
			return
		case <-ticker.C:
			removed, err := w.Codes.PurgeExpired(ctx)
			if err != nil {
				zap.L().Error("Failed to purge expired reset codes", zap.Error(err))
				continue
			}

			if removed > 0 {
				zap.L().Debug("Purged expired reset codes", zap.Int64("removed", removed))
			}
		}
	}
}
