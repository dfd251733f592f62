// Package cache holds the in-memory admin permission cache consulted on every
// permission check. All operations are non-blocking and never touch the store;
// a store outage leaves the cached state untouched (stale-but-available).
package cache

import (
	"sync"
	"time"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

// Grant is one cached permission grant. Flags are treated as a set; duplicate
// flags are inert. A nil Ends never expires.
type Grant struct {
	Flags    []string
	Immunity int
	Ends     *time.Time
	Global   bool
}

func (g *Grant) expired(now time.Time) bool {
	return g.Ends != nil && !now.Before(*g.Ends)
}

// GrantView is the effective union of an identity's non-expired grants,
// global and this-server scope combined.
type GrantView struct {
	Flags    map[string]struct{}
	Immunity int
	// Ends is the latest expiry among contributing grants, nil when any
	// contributing grant never expires.
	Ends *time.Time
}

func emptyView() GrantView {
	return GrantView{Flags: map[string]struct{}{}}
}

func (v GrantView) Has(flag string) bool {
	if _, ok := v.Flags[flag]; ok {
		return true
	}
	_, ok := v.Flags[model.RootFlag]
	return ok
}

func (v GrantView) Granted() bool {
	return len(v.Flags) > 0
}

// entry is immutable once stored; refresh replaces the whole pointer so
// readers never observe a half-written grant set.
type entry struct {
	grants []Grant
}

type PermissionCache struct {
	clk     clock.Clock
	entries sync.Map // Identity (int64) -> *entry
}

func NewPermissionCache(clk clock.Clock) *PermissionCache {
	return &PermissionCache{clk: clk}
}

// Load returns the effective view for identity, lazily filtering grants whose
// expiry has passed. Absent identities get an empty view. Never blocks.
func (c *PermissionCache) Load(identity int64) GrantView {
	v, ok := c.entries.Load(identity)
	if !ok {
		return emptyView()
	}

	now := c.clk.Now()
	view := emptyView()
	unbounded := false
	var latest *time.Time
	for i := range v.(*entry).grants {
		g := &v.(*entry).grants[i]
		if g.expired(now) {
			continue
		}
		for _, flag := range g.Flags {
			view.Flags[flag] = struct{}{}
		}
		if g.Immunity > view.Immunity {
			view.Immunity = g.Immunity
		}
		if g.Ends == nil {
			unbounded = true
		} else if latest == nil || g.Ends.After(*latest) {
			latest = g.Ends
		}
	}
	if !unbounded {
		view.Ends = latest
	}
	return view
}

// Check reports whether identity holds flag (or the root flag) on a
// non-expired grant. Immunity comparison is the caller's concern.
func (c *PermissionCache) Check(identity int64, flag string) bool {
	return c.Load(identity).Has(flag)
}

func (c *PermissionCache) Immunity(identity int64) int {
	return c.Load(identity).Immunity
}

// Refresh atomically replaces the cached grants for one identity. An empty
// grant set removes the entry so revocation propagates.
func (c *PermissionCache) Refresh(identity int64, grants []Grant) {
	if len(grants) == 0 {
		c.entries.Delete(identity)
		return
	}
	cp := make([]Grant, len(grants))
	copy(cp, grants)
	c.entries.Store(identity, &entry{grants: cp})
}

// BulkRefreshAll replaces the cache contents with the given state. Identities
// present in both old and new state are replaced per key, never cleared first,
// so there is no window with nothing cached for them. Identities absent from
// the new state are removed unless a concurrent Refresh got there first
// (per-key last-write-wins by completion order).
func (c *PermissionCache) BulkRefreshAll(all map[int64][]Grant) {
	stale := make(map[int64]interface{})
	c.entries.Range(func(k, v interface{}) bool {
		if _, ok := all[k.(int64)]; !ok {
			stale[k.(int64)] = v
		}
		return true
	})

	for identity, grants := range all {
		c.Refresh(identity, grants)
	}
	for identity, old := range stale {
		c.entries.CompareAndDelete(identity, old)
	}
}

// Evict drops the cached grants for identity. Grants persist across sessions,
// so this is not part of the disconnect path; it is used when an admin is
// fully de-provisioned.
func (c *PermissionCache) Evict(identity int64) {
	c.entries.Delete(identity)
}

// Prune removes entries whose every grant has expired. Read correctness never
// needs this (Load filters lazily); it bounds memory between full reloads.
func (c *PermissionCache) Prune(now time.Time) int {
	removed := 0
	c.entries.Range(func(k, v interface{}) bool {
		e := v.(*entry)
		for i := range e.grants {
			if !e.grants[i].expired(now) {
				return true
			}
		}
		if c.entries.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	return removed
}
