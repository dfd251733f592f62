// Package service is the seam between the game engine's event hooks and the
// admin backend. Engine-facing callbacks run on the engine's event thread and
// never block on store I/O; store work happens on background goroutines and
// lands through the cache's and tracker's own synchronization. Admin commands
// may block on the store and surface errors to the issuing admin.
package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/cache"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/config"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/messaging/notifier"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/penalty"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/reconcile"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

type AdminService struct {
	logger  *zap.SugaredLogger
	repo    repository.Repository
	cache   *cache.PermissionCache
	tracker *penalty.Tracker
	loader  *reconcile.Loader
	notif   notifier.Notifier
	clk     clock.Clock

	timeMode    config.TimeMode
	serverID    int32
	multiServer bool

	// ctx bounds background store work spawned from engine callbacks.
	ctx context.Context

	mu       sync.Mutex
	sessions []int64 // slot -> identity, 0 when empty
}

func NewAdminService(ctx context.Context, logger *zap.SugaredLogger, repo repository.Repository,
	c *cache.PermissionCache, t *penalty.Tracker, loader *reconcile.Loader, notif notifier.Notifier,
	clk clock.Clock, cfg config.Config) *AdminService {

	return &AdminService{
		logger:      logger,
		repo:        repo,
		cache:       c,
		tracker:     t,
		loader:      loader,
		notif:       notif,
		clk:         clk,
		timeMode:    cfg.TimeMode,
		serverID:    cfg.ServerID,
		multiServer: cfg.MultiServer,
		ctx:         ctx,
		sessions:    make([]int64, cfg.MaxSlots),
	}
}

// scopeFor returns the server id to stamp on a new row. In a single-server
// deployment everything is written globally so rows never end up scoped to an
// id that stops meaning anything if servers are added later.
func (s *AdminService) scopeFor(global bool) *int32 {
	if global || !s.multiServer {
		return nil
	}
	serverID := s.serverID
	return &serverID
}

// OnIdentityConnect registers the session and reconciles the identity's
// grants and penalties off the event thread.
func (s *AdminService) OnIdentityConnect(identity int64, slot int) {
	s.mu.Lock()
	if slot >= 0 && slot < len(s.sessions) {
		s.sessions[slot] = identity
	}
	s.mu.Unlock()

	go func() {
		s.loader.LoadOne(s.ctx, identity)
		s.loader.MaterializePenalties(s.ctx, identity, slot)
	}()
}

// OnIdentityDisconnect drops the slot's penalties synchronously so the slot
// can be reused without a new player inheriting them. Tick-bound progress is
// captured first and persisted in the background; grants stay cached across
// sessions.
func (s *AdminService) OnIdentityDisconnect(slot int) {
	progress := s.tracker.TickProgress(slot)
	s.tracker.RemoveAll(slot)

	s.mu.Lock()
	if slot >= 0 && slot < len(s.sessions) {
		s.sessions[slot] = 0
	}
	s.mu.Unlock()

	if len(progress) == 0 {
		return
	}
	go func() {
		for _, p := range progress {
			if err := s.repo.UpdatePenaltyPassed(s.ctx, p.RecordID, p.Passed); err != nil {
				s.logger.Warnw("failed to persist penalty progress", "record", p.RecordID, "error", err)
			}
		}
	}()
}

// OnChatMessage gates a chat line. Hot path: in-memory only.
func (s *AdminService) OnChatMessage(slot int, _ string) bool {
	gagged, _ := s.tracker.IsPenalized(slot, model.KindGag, s.clk.Now())
	return !gagged
}

// OnVoice gates voice transmission. Hot path: in-memory only.
func (s *AdminService) OnVoice(slot int) bool {
	muted, _ := s.tracker.IsPenalized(slot, model.KindMute, s.clk.Now())
	return !muted
}

// OnIntervalTick advances tick-mode countdowns for every connected session.
// Budgets spent by this tick are flipped to their terminal status in the
// store off the event thread, so a fully served penalty never re-applies on
// reconnect. In absolute mode this is a no-op; the wall clock is
// authoritative there.
func (s *AdminService) OnIntervalTick() {
	if s.timeMode != config.TimeModeTick {
		return
	}

	s.mu.Lock()
	slots := make([]int, 0, len(s.sessions))
	for slot, identity := range s.sessions {
		if identity != 0 {
			slots = append(slots, slot)
		}
	}
	s.mu.Unlock()

	// A silence row surfaces under both kinds; keying by record id collapses
	// it to one store write.
	served := make(map[int64]int)
	for _, slot := range slots {
		for _, kind := range []model.PenaltyKind{model.KindGag, model.KindMute} {
			for _, p := range s.tracker.Tick(slot, kind) {
				served[p.RecordID] = p.Passed
			}
		}
	}
	if len(served) == 0 {
		return
	}

	go func() {
		for id, passed := range served {
			if err := s.repo.ExpirePenalty(s.ctx, id, passed); err != nil {
				s.logger.Warnw("failed to expire served penalty", "record", id, "error", err)
			}
		}
	}()
}

// OnMapChange clears all session penalty state at the level boundary.
func (s *AdminService) OnMapChange() {
	s.tracker.Reset()
}

// Penalized reports whether the session is under the given restriction and,
// when wall-clock bounded, until when.
func (s *AdminService) Penalized(slot int, kind model.PenaltyKind) (bool, *time.Time) {
	return s.tracker.IsPenalized(slot, kind, s.clk.Now())
}

// CheckPermission is the permission gate for the command surface.
func (s *AdminService) CheckPermission(identity int64, flag string) bool {
	return s.cache.Check(identity, flag)
}

// PlayerGrants returns the effective grant view for target-protection and
// display purposes.
func (s *AdminService) PlayerGrants(identity int64) cache.GrantView {
	return s.cache.Load(identity)
}

// Grant writes a permission grant and refreshes the cache. A nil ends never
// expires; global applies the grant on every server sharing the store.
func (s *AdminService) Grant(ctx context.Context, identity int64, name string, flags []string,
	immunity int, ends *time.Time, global bool) error {

	rec := &model.AdminRecord{
		Identity: identity,
		Name:     name,
		Immunity: immunity,
		Flags:    flags,
		Created:  s.clk.Now(),
		Ends:     ends,
	}
	rec.ServerID = s.scopeFor(global)

	if err := s.repo.UpsertAdmin(ctx, rec); err != nil {
		return err
	}

	s.loader.LoadOne(ctx, identity)
	if err := s.notif.GrantChanged(ctx, identity, notifier.GrantChangeGranted); err != nil {
		s.logger.Warnw("failed to publish grant notification", "identity", identity, "error", err)
	}
	return nil
}

// Revoke removes the grant for one scope and refreshes the cache. Revoking a
// per-server grant never shadows a global one; removing global rights takes an
// explicit global revoke.
func (s *AdminService) Revoke(ctx context.Context, identity int64, global bool) error {
	if err := s.repo.DeleteAdmin(ctx, identity, global); err != nil {
		return err
	}

	view := s.loader.LoadOne(ctx, identity)
	if !view.Granted() {
		s.cache.Evict(identity)
	}
	if err := s.notif.GrantChanged(ctx, identity, notifier.GrantChangeRevoked); err != nil {
		s.logger.Warnw("failed to publish revoke notification", "identity", identity, "error", err)
	}
	return nil
}

// IssuePenalty persists a penalty row and, when the target is connected
// (slot >= 0), applies it to the session immediately. The row is written
// first: if the store is down the admin gets an explicit error and no
// in-memory-only penalty is applied. duration is in minutes (absolute mode)
// or intervals (tick mode); 0 means permanent.
func (s *AdminService) IssuePenalty(ctx context.Context, identity int64, slot int,
	kind model.PenaltyKind, duration int, reason string, address *string, global bool) (int64, error) {

	now := s.clk.Now()
	rec := &model.PenaltyRecord{
		Identity: identity,
		Address:  address,
		Kind:     kind,
		Status:   model.StatusActive,
		Reason:   reason,
		Duration: duration,
		Created:  now,
	}
	rec.ServerID = s.scopeFor(global)

	if duration > 0 {
		switch s.timeMode {
		case config.TimeModeTick:
			passed := 0
			rec.Passed = &passed
		default:
			ends := now.Add(time.Duration(duration) * time.Minute)
			rec.Ends = &ends
		}
	}

	id, err := s.repo.InsertPenalty(ctx, rec)
	if err != nil {
		return 0, err
	}

	if slot >= 0 {
		for _, k := range penalty.CommKinds(kind) {
			s.tracker.Add(slot, k, expiryFor(rec), id)
		}
	}

	if err := s.notif.PenaltyIssued(ctx, rec); err != nil {
		s.logger.Warnw("failed to publish penalty notification", "record", id, "error", err)
	}
	return id, nil
}

func expiryFor(rec *model.PenaltyRecord) penalty.Expiry {
	switch {
	case rec.Permanent():
		return penalty.Unbounded{}
	case rec.Passed != nil:
		return penalty.TickBound{Budget: rec.Duration, Passed: *rec.Passed}
	default:
		return penalty.TimeBound{Ends: *rec.Ends}
	}
}

// LiftPenalty flips the persisted row to Lifted and, when the target is still
// connected, drops the matching session entries.
func (s *AdminService) LiftPenalty(ctx context.Context, id int64, kind model.PenaltyKind, slot int) error {
	if err := s.repo.LiftPenalty(ctx, id, kind); err != nil {
		return err
	}

	if slot >= 0 {
		s.tracker.RemoveRecord(slot, id)
	}
	if err := s.notif.PenaltyLifted(ctx, id, kind); err != nil {
		s.logger.Warnw("failed to publish lift notification", "record", id, "error", err)
	}
	return nil
}

// ReloadAdmins refreshes the whole permission cache from the store.
func (s *AdminService) ReloadAdmins(ctx context.Context) (int, error) {
	count, err := s.loader.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.notif.AdminListReloaded(ctx, count); err != nil {
		s.logger.Warnw("failed to publish reload notification", "error", err)
	}
	return count, nil
}
