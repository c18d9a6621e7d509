package game

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// StartIdleWorker periodically ends sessions that have been idle for maxIdle.
func StartIdleWorker(ctx context.Context, m *SessionManager, poll, maxIdle time.Duration, log *logrus.Entry) {
	if m == nil || poll <= 0 || maxIdle <= 0 {
		log.Warn("idle worker not started")
		return
	}

	log.WithFields(logrus.Fields{"poll": poll, "max_idle": maxIdle}).Info("idle worker started")
	go func() {
		ticker := time.NewTicker(poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("idle worker stopping")
				return
			case <-ticker.C:
				if n := m.ExpireIdle(maxIdle); n > 0 {
					log.WithFields(logrus.Fields{"expired": n, "active": m.Count()}).Info("expired idle sessions")
				}
			}
		}
	}()
}
