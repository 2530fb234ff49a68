package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// The producer publishes at fixed KST times; the worker refreshes right
// after each publish slot.
var publishHours = [3]int{0, 8, 16}

// RefreshWorker triggers a refresh at every scheduled publish time. Manual
// refreshes go through the same service path, so the in-flight no-op rule
// applies to both.
type RefreshWorker struct {
	svc    *LeaderboardService
	zone   *time.Location
	log    zerolog.Logger
	stopCh chan struct{}
}

func NewRefreshWorker(svc *LeaderboardService, zone *time.Location, log zerolog.Logger) *RefreshWorker {
	return &RefreshWorker{
		svc:    svc,
		zone:   zone,
		log:    log.With().Str("component", "refresh-worker").Logger(),
		stopCh: make(chan struct{}),
	}
}

// Start sleeps until each upcoming publish slot and refreshes.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.log.Info().Msg("refresh-worker: starting")

	for {
		next := NextPublish(time.Now().In(w.zone))
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			if err := w.svc.Refresh(ctx); err != nil && !errors.Is(err, ErrRefreshInFlight) {
				w.log.Warn().Err(err).Msg("scheduled refresh failed")
			}
		case <-ctx.Done():
			timer.Stop()
			w.log.Info().Msg("refresh-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			timer.Stop()
			w.log.Info().Msg("refresh-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RefreshWorker) Stop() {
	close(w.stopCh)
}

// NextPublish returns the first publish slot strictly after now, in now's
// location.
func NextPublish(now time.Time) time.Time {
	for _, h := range publishHours {
		slot := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location())
		if slot.After(now) {
			return slot
		}
	}
	// Past the last slot today; first slot tomorrow.
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), publishHours[0], 0, 0, 0, now.Location())
}
