package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hooks is the narrow surface the game-event delivery layer invokes. The
// engine adapter owns dispatch; the core never calls engine APIs directly.
// All methods are safe on the engine's event thread: none of them block on
// store I/O.
type Hooks interface {
	OnIdentityConnect(identity int64, slot int)
	OnIdentityDisconnect(slot int)
	OnChatMessage(slot int, text string) bool
	OnVoice(slot int) bool
	OnIntervalTick()
	OnMapChange()
}

var _ Hooks = (*AdminService)(nil)

// RunHooks publishes the hook surface for the engine adapter and keeps it
// alive until shutdown.
func RunHooks(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, hooks Hooks) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("engine hooks ready")
		<-ctx.Done()
	}()
}
