package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/cache"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/penalty"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/utils"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSweeper(t *testing.T, cfg config.Config) (*Sweeper, *repository.MockRepository, *cache.PermissionCache, *penalty.Tracker, *clock.Fake) {
	ctrl := gomock.NewController(t)
	repo := repository.NewMockRepository(ctrl)
	clk := clock.NewFake(t0)
	c := cache.NewPermissionCache(clk)
	tr := penalty.NewTracker(zap.NewNop().Sugar(), 64)
	s := NewSweeper(zap.NewNop().Sugar(), repo, c, tr, clk, cfg)
	return s, repo, c, tr, clk
}

func TestSweeper_SingleTimeBoundary(t *testing.T) {
	s, repo, _, _, clk := newTestSweeper(t, config.Config{SweepInterval: time.Minute})

	// A slow first store call must not shift the boundary used by the rest
	// of the iteration: two rows with the same end instant expire together.
	repo.EXPECT().ExpirePenalties(gomock.Any(), t0).DoAndReturn(
		func(context.Context, time.Time) (int64, error) {
			clk.Advance(30 * time.Second)
			return 2, nil
		})
	repo.EXPECT().ExpireAdmins(gomock.Any(), t0).Return(int64(0), nil)

	s.Sweep(context.Background())
}

func TestSweeper_PrunesInMemoryStateEvenWhenStoreFails(t *testing.T) {
	s, repo, c, tr, _ := newTestSweeper(t, config.Config{SweepInterval: time.Minute})

	c.Refresh(1, []cache.Grant{{Flags: []string{"@admin/ban"}, Ends: utils.PointerOf(t0.Add(-time.Minute))}})
	tr.Add(3, model.KindGag, penalty.TimeBound{Ends: t0.Add(-time.Minute)}, 0)

	storeDown := errors.New("connection refused")
	repo.EXPECT().ExpirePenalties(gomock.Any(), t0).Return(int64(0), storeDown)
	repo.EXPECT().ExpireAdmins(gomock.Any(), t0).Return(int64(0), storeDown)

	// Logs and carries on; the next interval retries the store writes.
	s.Sweep(context.Background())

	assert.False(t, c.Check(1, "@admin/ban"))
	gagged, _ := tr.IsPenalized(3, model.KindGag, t0)
	assert.False(t, gagged)
}

func TestSweeper_RetentionWindow(t *testing.T) {
	s, repo, _, _, _ := newTestSweeper(t, config.Config{SweepInterval: time.Minute, RetentionDays: 30})

	repo.EXPECT().ExpirePenalties(gomock.Any(), t0).Return(int64(0), nil)
	repo.EXPECT().ExpireAdmins(gomock.Any(), t0).Return(int64(0), nil)
	repo.EXPECT().AnonymizeOldPenalties(gomock.Any(), t0.Add(-30*24*time.Hour)).Return(int64(4), nil)

	s.Sweep(context.Background())
}

func TestSweeper_RetentionDisabled(t *testing.T) {
	s, repo, _, _, _ := newTestSweeper(t, config.Config{SweepInterval: time.Minute})

	repo.EXPECT().ExpirePenalties(gomock.Any(), t0).Return(int64(0), nil)
	repo.EXPECT().ExpireAdmins(gomock.Any(), t0).Return(int64(0), nil)
	// No AnonymizeOldPenalties expectation: calling it would fail the test.

	s.Sweep(context.Background())
}
