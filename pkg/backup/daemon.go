package backup

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	apiv1 "github.com/xyrionz/SafeArchive/pkg/apis/api.safearchive.io/v1"
	"github.com/xyrionz/SafeArchive/pkg/metrics"
)

var sweepQueue = make(chan struct{}, 1)

// Sweep tells the sweeper daemon to run an expiry sweep.
func Sweep() {
	// This select statement lets us "rate limit" incoming sweeps. Because the channel is of size one, if the receiver
	// isn't ready (because a sweep is currently in-progress) when this function is called, the default case will be
	// hit and the event will be effectively dropped.
	select {
	case sweepQueue <- struct{}{}:
		logrus.Debugf("Handled a sweep event")
	default:
		logrus.Debugf("Dropped a sweep event")
	}
}

// StartSweeper launches the sweeper daemon. It sweeps once at startup,
// then on every tick of the interval and whenever Sweep is called,
// until the context ends.
func (e *Engine) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-sweepQueue:
				if _, err := e.Prune(); err != nil {
					logrus.Errorf("Failed to sweep expired archives: %v", err)
				}
			}
		}
	}()

	Sweep()
}

// Prune removes expired archives now and returns what was removed.
func (e *Engine) Prune() ([]apiv1.Archive, error) {
	window, expires := e.Config.ExpiryWindow()
	if !expires {
		return nil, nil
	}

	removed, err := e.Store.Sweep(window)
	for _, archived := range removed {
		metrics.ArchivesRemovedTotal.WithLabelValues("expired").Inc()
		if e.Config.Notifications {
			logrus.Infof("Removed expired archive %s", archived.FileName)
		} else {
			logrus.Debugf("Removed expired archive %s", archived.FileName)
		}
	}
	return removed, err
}
