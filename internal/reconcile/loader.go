// Package reconcile pulls authoritative state out of the shared store and
// merges it into the in-memory cache and tracker: per identity at connect
// time, or for everyone on an explicit reload.
package reconcile

import (
	"context"

	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/cache"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/penalty"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

type Loader struct {
	logger  *zap.SugaredLogger
	repo    repository.Repository
	cache   *cache.PermissionCache
	tracker *penalty.Tracker
}

func NewLoader(logger *zap.SugaredLogger, repo repository.Repository, c *cache.PermissionCache, t *penalty.Tracker) *Loader {
	return &Loader{
		logger:  logger,
		repo:    repo,
		cache:   c,
		tracker: t,
	}
}

// LoadOne fetches both scopes for one identity in a single round trip and
// refreshes the cache. On store failure the identity keeps whatever is
// already cached and connects with that (fail-open: a permission-store outage
// never blocks connectivity and never revokes cached rights).
func (l *Loader) LoadOne(ctx context.Context, identity int64) cache.GrantView {
	records, err := l.repo.GetAdmin(ctx, identity)
	if err != nil {
		l.logger.Warnw("failed to load grants, keeping cached state", "identity", identity, "error", err)
		return l.cache.Load(identity)
	}

	groups := l.groupsFor(ctx, records)
	l.cache.Refresh(identity, l.grantsFrom(records, groups))
	return l.cache.Load(identity)
}

// LoadAll refreshes the whole cache from the store. Identities with no rows
// left lose their cached entry (revocation propagates). Returns the number of
// identities now cached.
func (l *Loader) LoadAll(ctx context.Context) (int, error) {
	records, err := l.repo.GetAdmins(ctx)
	if err != nil {
		return 0, err
	}

	groups := l.groupsFor(ctx, records)
	all := make(map[int64][]cache.Grant)
	for _, rec := range records {
		grant := l.grantFrom(rec, groups)
		if len(grant.Flags) == 0 {
			continue
		}
		all[rec.Identity] = append(all[rec.Identity], grant)
	}

	l.cache.BulkRefreshAll(all)
	return len(all), nil
}

// MaterializePenalties turns the identity's active persisted penalty rows
// into tracker entries for the given slot. Failure is fail-open for the
// connection but logged: the rows stay authoritative and apply on the next
// reconnect or sweep-driven reload.
func (l *Loader) MaterializePenalties(ctx context.Context, identity int64, slot int) {
	records, err := l.repo.GetActivePenalties(ctx, identity)
	if err != nil {
		l.logger.Warnw("failed to load penalties", "identity", identity, "error", err)
		return
	}

	for _, rec := range records {
		if servedOut(rec) {
			// The row was fully served in an earlier session but its terminal
			// status never landed; close it out instead of re-applying.
			if err := l.repo.ExpirePenalty(ctx, rec.ID, *rec.Passed); err != nil {
				l.logger.Warnw("failed to expire served penalty", "record", rec.ID, "error", err)
			}
			continue
		}
		for _, kind := range penalty.CommKinds(rec.Kind) {
			l.tracker.Add(slot, kind, expiryFrom(rec), rec.ID)
		}
	}
}

// servedOut reports whether a tick-mode row's persisted countdown is already
// spent.
func servedOut(rec *model.PenaltyRecord) bool {
	return rec.Passed != nil && rec.Duration > 0 && *rec.Passed >= rec.Duration
}

// expiryFrom picks the expiry model recorded on the row: permanent rows are
// unbounded, rows carrying an elapsed-interval counter resume their tick
// countdown, the rest expire against the wall clock. An already-elapsed end
// still materializes; the tracker reports it inactive on the first check.
func expiryFrom(rec *model.PenaltyRecord) penalty.Expiry {
	switch {
	case rec.Permanent():
		return penalty.Unbounded{}
	case rec.Passed != nil:
		return penalty.TickBound{Budget: rec.Duration, Passed: *rec.Passed}
	case rec.Ends != nil:
		return penalty.TimeBound{Ends: *rec.Ends}
	default:
		return penalty.Unbounded{}
	}
}

// groupsFor fetches group definitions only when a record references one.
func (l *Loader) groupsFor(ctx context.Context, records []*model.AdminRecord) map[string]*model.GroupRecord {
	needed := false
	for _, rec := range records {
		for _, flag := range rec.Flags {
			if model.IsGroupRef(flag) {
				needed = true
			}
		}
	}
	if !needed {
		return nil
	}

	list, err := l.repo.GetGroups(ctx)
	if err != nil {
		l.logger.Warnw("failed to load groups, group flags unresolved", "error", err)
		return nil
	}

	groups := make(map[string]*model.GroupRecord, len(list))
	for _, g := range list {
		groups["#"+g.Name] = g
	}
	return groups
}

func (l *Loader) grantsFrom(records []*model.AdminRecord, groups map[string]*model.GroupRecord) []cache.Grant {
	grants := make([]cache.Grant, 0, len(records))
	for _, rec := range records {
		grant := l.grantFrom(rec, groups)
		if len(grant.Flags) == 0 {
			continue
		}
		grants = append(grants, grant)
	}
	return grants
}

// grantFrom expands group references into leaf flags. Unknown groups are
// skipped and logged; the rest of the grant still loads.
func (l *Loader) grantFrom(rec *model.AdminRecord, groups map[string]*model.GroupRecord) cache.Grant {
	grant := cache.Grant{
		Immunity: rec.Immunity,
		Ends:     rec.Ends,
		Global:   rec.Global(),
	}

	for _, flag := range rec.Flags {
		if !model.IsGroupRef(flag) {
			grant.Flags = append(grant.Flags, flag)
			continue
		}
		group, ok := groups[flag]
		if !ok {
			l.logger.Warnw("skipping unknown group reference", "identity", rec.Identity, "group", flag)
			continue
		}
		grant.Flags = append(grant.Flags, group.Flags...)
		if group.Immunity > grant.Immunity {
			grant.Immunity = group.Immunity
		}
	}
	return grant
}
