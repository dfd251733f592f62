package penalty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestTracker() *Tracker {
	return NewTracker(zap.NewNop().Sugar(), 64)
}

func TestTracker_AddThenIsPenalized(t *testing.T) {
	tr := newTestTracker()
	end := t0.Add(time.Hour)

	tr.Add(7, model.KindGag, TimeBound{Ends: end}, 1)

	penalized, until := tr.IsPenalized(7, model.KindGag, t0)
	assert.True(t, penalized)
	assert.Equal(t, &end, until)

	// Other kind unaffected.
	penalized, _ = tr.IsPenalized(7, model.KindMute, t0)
	assert.False(t, penalized)
}

func TestTracker_RemoveAllIsIdempotent(t *testing.T) {
	tr := newTestTracker()
	tr.Add(5, model.KindGag, Unbounded{}, 0)

	tr.RemoveAll(5)
	tr.RemoveAll(5)

	penalized, until := tr.IsPenalized(5, model.KindGag, t0)
	assert.False(t, penalized)
	assert.Nil(t, until)
}

func TestTracker_SlotReuseDoesNotLeakPenalties(t *testing.T) {
	tr := newTestTracker()

	// Identity A on slot 5 collects penalties, then disconnects.
	tr.Add(5, model.KindGag, Unbounded{}, 1)
	tr.Add(5, model.KindMute, TimeBound{Ends: t0.Add(time.Hour)}, 2)
	tr.RemoveAll(5)

	// Identity B gets slot 5 and must start clean.
	for _, kind := range []model.PenaltyKind{model.KindGag, model.KindMute} {
		penalized, _ := tr.IsPenalized(5, kind, t0)
		assert.False(t, penalized, "kind %s leaked across slot reuse", kind)
	}
}

func TestTracker_TickBudgetExhaustion(t *testing.T) {
	tr := newTestTracker()
	tr.Add(3, model.KindGag, TickBound{Budget: 3}, 0)

	tr.Tick(3, model.KindGag)
	tr.Tick(3, model.KindGag)
	penalized, until := tr.IsPenalized(3, model.KindGag, t0)
	assert.True(t, penalized, "two of three intervals elapsed")
	assert.Nil(t, until, "tick-bound penalties have no wall-clock end")

	tr.Tick(3, model.KindGag)
	penalized, _ = tr.IsPenalized(3, model.KindGag, t0)
	assert.False(t, penalized, "budget of 3 exhausted after three ticks")
}

func TestTracker_TickReportsServedBudgets(t *testing.T) {
	tr := newTestTracker()
	tr.Add(3, model.KindGag, TickBound{Budget: 2}, 31)
	tr.Add(3, model.KindGag, Unbounded{}, 32)

	assert.Empty(t, tr.Tick(3, model.KindGag), "budget not yet spent")

	served := tr.Tick(3, model.KindGag)
	assert.Equal(t, []Progress{{RecordID: 31, Passed: 2}}, served)

	// The spent entry is gone, the unbounded one still holds the slot.
	penalized, until := tr.IsPenalized(3, model.KindGag, t0)
	assert.True(t, penalized)
	assert.Nil(t, until)
	assert.Empty(t, tr.TickProgress(3))
}

func TestTracker_TickIgnoresWallClockPenalties(t *testing.T) {
	tr := newTestTracker()
	end := t0.Add(time.Hour)
	tr.Add(3, model.KindMute, TimeBound{Ends: end}, 0)

	for i := 0; i < 100; i++ {
		tr.Tick(3, model.KindMute)
	}

	penalized, until := tr.IsPenalized(3, model.KindMute, t0)
	assert.True(t, penalized)
	assert.Equal(t, &end, until)
}

func TestTracker_ExpiredOnArrival(t *testing.T) {
	tr := newTestTracker()
	tr.Add(2, model.KindGag, TimeBound{Ends: t0.Add(-time.Second)}, 0)

	penalized, until := tr.IsPenalized(2, model.KindGag, t0)
	assert.False(t, penalized)
	assert.Nil(t, until)
}

func TestTracker_MultipleEntriesLatestEndWins(t *testing.T) {
	tr := newTestTracker()
	early := t0.Add(30 * time.Minute)
	late := t0.Add(2 * time.Hour)
	tr.Add(4, model.KindGag, TimeBound{Ends: early}, 1)
	tr.Add(4, model.KindGag, TimeBound{Ends: late}, 2)

	penalized, until := tr.IsPenalized(4, model.KindGag, t0)
	assert.True(t, penalized)
	assert.Equal(t, &late, until)

	// After the earlier entry lapses the later one still holds.
	penalized, until = tr.IsPenalized(4, model.KindGag, t0.Add(time.Hour))
	assert.True(t, penalized)
	assert.Equal(t, &late, until)
}

func TestTracker_UnboundedEntryHasNoEnd(t *testing.T) {
	tr := newTestTracker()
	tr.Add(4, model.KindGag, TimeBound{Ends: t0.Add(time.Hour)}, 1)
	tr.Add(4, model.KindGag, Unbounded{}, 2)

	penalized, until := tr.IsPenalized(4, model.KindGag, t0)
	assert.True(t, penalized)
	assert.Nil(t, until)
}

func TestTracker_SixtyMinuteMuteTimeline(t *testing.T) {
	tr := newTestTracker()
	end := t0.Add(60 * time.Minute)
	tr.Add(7, model.KindMute, TimeBound{Ends: end}, 0)

	penalized, until := tr.IsPenalized(7, model.KindMute, t0.Add(59*time.Minute))
	assert.True(t, penalized)
	assert.Equal(t, &end, until)

	penalized, until = tr.IsPenalized(7, model.KindMute, t0.Add(61*time.Minute))
	assert.False(t, penalized)
	assert.Nil(t, until)
}

func TestTracker_RemoveRecord(t *testing.T) {
	tr := newTestTracker()
	// One silence row materialized as both kinds under record id 9.
	tr.Add(6, model.KindGag, Unbounded{}, 9)
	tr.Add(6, model.KindMute, Unbounded{}, 9)
	tr.Add(6, model.KindGag, Unbounded{}, 10)

	tr.RemoveRecord(6, 9)

	penalized, _ := tr.IsPenalized(6, model.KindMute, t0)
	assert.False(t, penalized)
	penalized, _ = tr.IsPenalized(6, model.KindGag, t0)
	assert.True(t, penalized, "unrelated record must survive")
}

func TestTracker_TickProgress(t *testing.T) {
	tr := newTestTracker()
	tr.Add(8, model.KindGag, TickBound{Budget: 10, Passed: 4}, 21)
	tr.Add(8, model.KindMute, TimeBound{Ends: t0.Add(time.Hour)}, 22)
	tr.Tick(8, model.KindGag)

	progress := tr.TickProgress(8)
	assert.Equal(t, []Progress{{RecordID: 21, Passed: 5}}, progress)
}

func TestTracker_Reset(t *testing.T) {
	tr := newTestTracker()
	tr.Add(1, model.KindGag, Unbounded{}, 0)
	tr.Add(2, model.KindMute, Unbounded{}, 0)

	tr.Reset()

	for _, slot := range []int{1, 2} {
		for _, kind := range []model.PenaltyKind{model.KindGag, model.KindMute} {
			penalized, _ := tr.IsPenalized(slot, kind, t0)
			assert.False(t, penalized)
		}
	}
}

func TestTracker_PruneExpired(t *testing.T) {
	tr := newTestTracker()
	tr.Add(1, model.KindGag, TimeBound{Ends: t0.Add(time.Minute)}, 0)
	tr.Add(2, model.KindGag, TickBound{Budget: 1, Passed: 1}, 0)
	tr.Add(3, model.KindGag, Unbounded{}, 0)

	removed := tr.PruneExpired(t0.Add(2 * time.Minute))
	assert.Equal(t, 2, removed)

	penalized, _ := tr.IsPenalized(3, model.KindGag, t0.Add(2*time.Minute))
	assert.True(t, penalized)
}

func TestTracker_OutOfRangeSlotIsNoOp(t *testing.T) {
	tr := NewTracker(zap.NewNop().Sugar(), 4)

	tr.Add(99, model.KindGag, Unbounded{}, 0)
	tr.Tick(99, model.KindGag)
	tr.RemoveAll(99)

	penalized, _ := tr.IsPenalized(99, model.KindGag, t0)
	assert.False(t, penalized)
}

func TestTracker_CommKinds(t *testing.T) {
	assert.Equal(t, []model.PenaltyKind{model.KindGag}, CommKinds(model.KindGag))
	assert.Equal(t, []model.PenaltyKind{model.KindMute}, CommKinds(model.KindMute))
	assert.Equal(t, []model.PenaltyKind{model.KindGag, model.KindMute}, CommKinds(model.KindSilence))
	assert.Nil(t, CommKinds(model.KindBan))
	assert.Nil(t, CommKinds(model.KindWarn))
}
