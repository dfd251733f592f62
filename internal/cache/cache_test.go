package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/clock"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/utils"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

const identity = int64(76561198000000001)

func TestPermissionCache_GlobalGrantAppliesEverywhere(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	c.Refresh(identity, []Grant{
		{Flags: []string{"@admin/ban", "@admin/chat"}, Immunity: 50, Global: true},
	})

	view := c.Load(identity)
	assert.True(t, view.Granted())
	assert.True(t, view.Has("@admin/ban"))
	assert.True(t, view.Has("@admin/chat"))
	assert.Equal(t, 50, view.Immunity)
	assert.Nil(t, view.Ends)
}

func TestPermissionCache_UnionOfScopes(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	// A per-server grant never shadows a global one; the effective set is the
	// union of both.
	c.Refresh(identity, []Grant{
		{Flags: []string{"@admin/ban"}, Immunity: 80, Global: true},
		{Flags: []string{"@admin/chat"}, Immunity: 20},
	})

	view := c.Load(identity)
	assert.True(t, view.Has("@admin/ban"))
	assert.True(t, view.Has("@admin/chat"))
	assert.Equal(t, 80, view.Immunity)
}

func TestPermissionCache_RootFlagGrantsEverything(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	c.Refresh(identity, []Grant{{Flags: []string{model.RootFlag}, Global: true}})

	assert.True(t, c.Check(identity, "@admin/ban"))
	assert.True(t, c.Check(identity, "@anything/else"))
}

func TestPermissionCache_LazyExpiry(t *testing.T) {
	clk := clock.NewFake(t0)
	c := NewPermissionCache(clk)

	c.Refresh(identity, []Grant{
		{Flags: []string{"@admin/ban"}, Ends: utils.PointerOf(t0.Add(time.Hour))},
	})

	assert.True(t, c.Check(identity, "@admin/ban"))

	// No eviction call needed: once the clock passes the expiry the grant is
	// treated as absent.
	clk.Advance(time.Hour)
	assert.False(t, c.Check(identity, "@admin/ban"))
	assert.False(t, c.Load(identity).Granted())
}

func TestPermissionCache_ViewEnds(t *testing.T) {
	clk := clock.NewFake(t0)
	c := NewPermissionCache(clk)

	short := utils.PointerOf(t0.Add(time.Hour))
	long := utils.PointerOf(t0.Add(2 * time.Hour))
	c.Refresh(identity, []Grant{
		{Flags: []string{"@admin/chat"}, Ends: short},
		{Flags: []string{"@admin/ban"}, Ends: long},
	})
	assert.Equal(t, long, c.Load(identity).Ends)

	// An unbounded grant makes the view unbounded.
	c.Refresh(identity, []Grant{
		{Flags: []string{"@admin/chat"}, Ends: short},
		{Flags: []string{"@admin/ban"}},
	})
	assert.Nil(t, c.Load(identity).Ends)
}

func TestPermissionCache_RefreshEmptyRemoves(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	c.Refresh(identity, []Grant{{Flags: []string{"@admin/ban"}, Global: true}})
	assert.True(t, c.Load(identity).Granted())

	c.Refresh(identity, nil)
	assert.False(t, c.Load(identity).Granted())
}

func TestPermissionCache_BulkRefreshAllRevokes(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	other := identity + 1
	c.Refresh(identity, []Grant{{Flags: []string{"@admin/ban"}, Global: true}})
	c.Refresh(other, []Grant{{Flags: []string{"@admin/chat"}, Global: true}})

	// identity has no rows left in the store; the full reload drops it.
	c.BulkRefreshAll(map[int64][]Grant{
		other: {{Flags: []string{"@admin/chat"}, Global: true}},
	})

	assert.False(t, c.Load(identity).Granted())
	assert.True(t, c.Load(other).Granted())
}

func TestPermissionCache_BulkRefreshConcurrentWithRefresh(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	bulkGrants := []Grant{{Flags: []string{"@admin/ban"}, Global: true}}
	singleGrants := []Grant{{Flags: []string{"@admin/chat"}}}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.BulkRefreshAll(map[int64][]Grant{identity: bulkGrants})
		}()
		go func() {
			defer wg.Done()
			c.Refresh(identity, singleGrants)
		}()
	}
	wg.Wait()

	// Final state is one of the two inputs, never a merge of fragments.
	view := c.Load(identity)
	hasBan := view.Has("@admin/ban")
	hasChat := view.Has("@admin/chat")
	assert.True(t, hasBan != hasChat, "expected exactly one input to win, got ban=%v chat=%v", hasBan, hasChat)
}

func TestPermissionCache_Prune(t *testing.T) {
	clk := clock.NewFake(t0)
	c := NewPermissionCache(clk)

	c.Refresh(identity, []Grant{
		{Flags: []string{"@admin/ban"}, Ends: utils.PointerOf(t0.Add(time.Minute))},
	})
	other := identity + 1
	c.Refresh(other, []Grant{{Flags: []string{"@admin/chat"}, Global: true}})

	assert.Equal(t, 0, c.Prune(t0))

	removed := c.Prune(t0.Add(2 * time.Minute))
	assert.Equal(t, 1, removed)
	assert.False(t, c.Load(identity).Granted())
	assert.True(t, c.Load(other).Granted())
}

func TestPermissionCache_Evict(t *testing.T) {
	c := NewPermissionCache(clock.NewFake(t0))

	c.Refresh(identity, []Grant{{Flags: []string{"@admin/ban"}, Global: true}})
	c.Evict(identity)
	assert.False(t, c.Load(identity).Granted())
}
