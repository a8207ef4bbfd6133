package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper removes games that were abandoned mid-play.
type Sweeper struct {
	games    GameRepository
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

// NewSweeper creates a sweeper that runs on the given cron schedule and
// removes games idle for longer than ttl.
func NewSweeper(games GameRepository, schedule string, ttl time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		games:    games,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep schedule until ctx is done.
func (s *Sweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("failed to sweep stale games", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("game sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("ttl", s.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("game sweeper stopped")

	return nil
}

// Sweep deletes every game idle past the TTL.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	before := s.now().Add(-s.ttl)

	n, err := s.games.DeleteStale(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("delete stale games: %w", err)
	}

	if n > 0 {
		s.logger.Info("stale games removed",
			zap.Int("count", n),
			zap.Time("before", before),
		)
	}

	return n, nil
}
