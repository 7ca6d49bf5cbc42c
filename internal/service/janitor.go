package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionJanitor periodically drops sessions nobody touched for longer than ttl.
type SessionJanitor struct {
	sessions SessionStore
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
}

func NewSessionJanitor(sessions SessionStore, ttl time.Duration, schedule string, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the sweep on the configured cron schedule until ctx is done.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		if _, err := j.Sweep(ctx); err != nil {
			j.logger.Error("failed to sweep idle sessions", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}

	c.Start()
	j.logger.Info("session janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}

// Sweep deletes sessions idle for longer than ttl and returns how many were removed.
func (j *SessionJanitor) Sweep(ctx context.Context) (int, error) {
	n, err := j.sessions.DeleteIdle(ctx, time.Now().Add(-j.ttl))
	if err != nil {
		return 0, err
	}

	if n > 0 {
		j.logger.Info("idle sessions removed", zap.Int("count", n))
	}
	return n, nil
}
