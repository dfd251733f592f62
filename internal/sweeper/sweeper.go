// Package sweeper runs the recurring expiry pass: it flips elapsed rows to
// their terminal status in the store, prunes the in-memory cache and tracker,
// and applies the address retention policy. It is the only component that
// mutates authoritative status without a caller-initiated request.
package sweeper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/cache"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/penalty"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository"
)

type Sweeper struct {
	logger  *zap.SugaredLogger
	repo    repository.Repository
	cache   *cache.PermissionCache
	tracker *penalty.Tracker
	clk     clock.Clock

	interval  time.Duration
	retention time.Duration
}

func NewSweeper(logger *zap.SugaredLogger, repo repository.Repository, c *cache.PermissionCache,
	t *penalty.Tracker, clk clock.Clock, cfg config.Config) *Sweeper {

	return &Sweeper{
		logger:    logger,
		repo:      repo,
		cache:     c,
		tracker:   t,
		clk:       clk,
		interval:  cfg.SweepInterval,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. A failed iteration
// logs and retries on the next tick; it never stops the loop.
func (s *Sweeper) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("shutting down expiry sweeper")
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Sweep performs one iteration. The time boundary is captured once so every
// row in the iteration expires against the same instant, even if the sweep
// itself is slow.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.clk.Now()

	if n, err := s.repo.ExpirePenalties(ctx, now); err != nil {
		s.logger.Warnw("failed to expire penalties, retrying next sweep", "error", err)
	} else if n > 0 {
		s.logger.Infow("expired penalties", "count", n)
	}

	if n, err := s.repo.ExpireAdmins(ctx, now); err != nil {
		s.logger.Warnw("failed to expire grants, retrying next sweep", "error", err)
	} else if n > 0 {
		s.logger.Infow("expired grants", "count", n)
	}

	// In-memory pruning is safe even when the store writes above failed:
	// reads are already lazily filtered, this only bounds memory.
	s.cache.Prune(now)
	s.tracker.PruneExpired(now)

	if s.retention > 0 {
		if n, err := s.repo.AnonymizeOldPenalties(ctx, now.Add(-s.retention)); err != nil {
			s.logger.Warnw("failed to apply address retention, retrying next sweep", "error", err)
		} else if n > 0 {
			s.logger.Infow("dropped stored addresses past retention", "count", n)
		}
	}
}
