package app

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/cache"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/messaging/notifier"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/penalty"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/reconcile"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/service"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/sweeper"
)

// Run wires the component graph and blocks until shutdown. The repository and
// notifier live on a delayed context so in-flight background writes can drain
// after the services stop.
func Run(cfg config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, delayedCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	clk, err := clock.NewSystem(cfg.Timezone, cfg.UTCStorage)
	if err != nil {
		logger.Fatalw("failed to create clock", "error", err)
	}

	repo, err := repository.NewSQLRepository(delayedCtx, logger, delayedWg, clk, cfg)
	if err != nil {
		logger.Fatalw("failed to create repository", "error", err)
	}

	// Fail fast on an unreachable store or a broken schema: running against
	// an unknown schema is worse than not running.
	if err := repo.CheckConnection(ctx); err != nil {
		logger.Fatalw("database is unreachable", "error", err)
	}
	if err := repo.ApplyMigrations(ctx); err != nil {
		logger.Fatalw("failed to migrate schema", "error", err)
	}

	var notif notifier.Notifier
	if cfg.Kafka.Enabled {
		notif = notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg)
	} else {
		notif = notifier.NewNoop()
	}

	permCache := cache.NewPermissionCache(clk)
	tracker := penalty.NewTracker(logger, cfg.MaxSlots)
	loader := reconcile.NewLoader(logger, repo, permCache, tracker)

	if count, err := loader.LoadAll(ctx); err != nil {
		// Fail-open: starting with an empty cache only delays grants until
		// the store recovers, it never revokes or denies wrongly.
		logger.Warnw("initial admin load failed, starting with empty cache", "error", err)
	} else {
		logger.Infow("loaded admin cache", "identities", count)
	}

	sweeper.NewSweeper(logger, repo, permCache, tracker, clk, cfg).Run(ctx, wg)

	svc := service.NewAdminService(ctx, logger, repo, permCache, tracker, loader, notif, clk, cfg)
	service.RunHooks(ctx, logger, wg, svc)

	wg.Wait()
	logger.Info("shutting down")

	logger.Info("shutting down delayed services")
	delayedCancel()
	delayedWg.Wait()
}
