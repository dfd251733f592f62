// Package penalty tracks active punitive states per connected session slot.
// The tracker is consulted on every chat and voice event, so every operation
// is in-memory only. Slots are reused after disconnect: RemoveAll must run
// before a slot is handed to a new connection or the new player would inherit
// a stale penalty.
package penalty

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

// Expiry is the tagged expiry model of one active penalty. TimeBound expires
// against the wall clock even across reconnects; TickBound counts intervals
// of actually connected time and ignores the clock; Unbounded lasts until
// lifted or disconnect.
type Expiry interface {
	active(now time.Time) bool
	endsAt() *time.Time
}

type TimeBound struct {
	Ends time.Time
}

func (t TimeBound) active(now time.Time) bool { return now.Before(t.Ends) }
func (t TimeBound) endsAt() *time.Time        { return &t.Ends }

type TickBound struct {
	Budget int
	Passed int
}

func (t TickBound) active(time.Time) bool { return t.Passed < t.Budget }
func (t TickBound) endsAt() *time.Time    { return nil }

type Unbounded struct{}

func (Unbounded) active(time.Time) bool { return true }
func (Unbounded) endsAt() *time.Time    { return nil }

// CommKinds maps a persisted penalty kind to the session-side kinds it
// restricts. Silence restricts chat and voice at once; bans and warns are not
// session penalties.
func CommKinds(kind model.PenaltyKind) []model.PenaltyKind {
	switch kind {
	case model.KindGag:
		return []model.PenaltyKind{model.KindGag}
	case model.KindMute:
		return []model.PenaltyKind{model.KindMute}
	case model.KindSilence:
		return []model.PenaltyKind{model.KindGag, model.KindMute}
	default:
		return nil
	}
}

type active struct {
	recordID int64
	exp      Expiry
}

// Progress is the elapsed-interval state of a tick-bound penalty, reported so
// the disconnect path can persist it before the slot's entries are dropped.
type Progress struct {
	RecordID int64
	Passed   int
}

type Tracker struct {
	logger *zap.SugaredLogger

	mu    sync.Mutex
	slots []map[model.PenaltyKind][]active

	warnOnce sync.Once
}

func NewTracker(logger *zap.SugaredLogger, maxSlots int) *Tracker {
	return &Tracker{
		logger: logger,
		slots:  make([]map[model.PenaltyKind][]active, maxSlots),
	}
}

func (t *Tracker) validSlot(slot int) bool {
	if slot < 0 || slot >= len(t.slots) {
		t.logger.Warnw("session slot out of range", "slot", slot, "max", len(t.slots))
		return false
	}
	return true
}

// Add appends an active penalty for the slot. Multiple simultaneous penalties
// of the same kind are allowed and evaluated independently. recordID ties the
// entry back to its persisted row (0 for none).
func (t *Tracker) Add(slot int, kind model.PenaltyKind, exp Expiry, recordID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validSlot(slot) {
		return
	}
	if t.slots[slot] == nil {
		t.slots[slot] = make(map[model.PenaltyKind][]active)
	}
	t.slots[slot][kind] = append(t.slots[slot][kind], active{recordID: recordID, exp: exp})
}

// IsPenalized reports whether any entry of kind is still active for the slot,
// evicting individually expired entries as a side effect. The returned instant
// is the latest known end among surviving entries, nil when an unbounded or
// tick-bound entry keeps the penalty open without a wall-clock end.
func (t *Tracker) IsPenalized(slot int, kind model.PenaltyKind, now time.Time) (bool, *time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validSlot(slot) || t.slots[slot] == nil {
		return false, nil
	}

	entries := t.slots[slot][kind]
	if len(entries) == 0 {
		return false, nil
	}

	kept := entries[:0]
	open := false
	var latest *time.Time
	for _, e := range entries {
		if !e.exp.active(now) {
			continue
		}
		kept = append(kept, e)
		if end := e.exp.endsAt(); end != nil {
			if !open && (latest == nil || end.After(*latest)) {
				latest = end
			}
		} else {
			// Unbounded or tick-bound: no wall-clock end to report.
			open = true
			latest = nil
		}
	}

	if len(kept) == 0 {
		delete(t.slots[slot], kind)
		return false, nil
	}
	t.slots[slot][kind] = kept
	return true, latest
}

// Tick advances the elapsed-interval counter of every tick-bound entry of
// kind for the slot. Entries whose budget is spent by this tick are dropped
// and reported so the caller can flip their persisted rows to a terminal
// status; lazy eviction must never be the only place a spent budget is seen.
// Time-bound entries ignore ticks (defensive no-op, logged once); calling
// Tick on them is an invariant violation upstream, never an error here.
func (t *Tracker) Tick(slot int, kind model.PenaltyKind) []Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validSlot(slot) || t.slots[slot] == nil {
		return nil
	}

	entries := t.slots[slot][kind]
	if len(entries) == 0 {
		return nil
	}

	kept := entries[:0]
	var served []Progress
	for _, e := range entries {
		switch exp := e.exp.(type) {
		case TickBound:
			exp.Passed++
			if exp.Passed >= exp.Budget {
				if e.recordID != 0 {
					served = append(served, Progress{RecordID: e.recordID, Passed: exp.Passed})
				}
				continue
			}
			e.exp = exp
			kept = append(kept, e)
		case TimeBound:
			t.warnOnce.Do(func() {
				t.logger.Warnw("tick delivered to a wall-clock penalty, ignoring", "slot", slot, "kind", kind)
			})
			kept = append(kept, e)
		default:
			kept = append(kept, e)
		}
	}

	if len(kept) == 0 {
		delete(t.slots[slot], kind)
	} else {
		t.slots[slot][kind] = kept
	}
	return served
}

// TickProgress returns the elapsed-interval state of the slot's tick-bound
// entries so it can be persisted before RemoveAll drops them.
func (t *Tracker) TickProgress(slot int) []Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validSlot(slot) || t.slots[slot] == nil {
		return nil
	}

	var out []Progress
	for _, entries := range t.slots[slot] {
		for _, e := range entries {
			if tb, ok := e.exp.(TickBound); ok && e.recordID != 0 {
				out = append(out, Progress{RecordID: e.recordID, Passed: tb.Passed})
			}
		}
	}
	return out
}

// RemoveAll drops every entry for the slot. Idempotent. The persisted rows
// remain the source of truth for future reconnects.
func (t *Tracker) RemoveAll(slot int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validSlot(slot) {
		return
	}
	t.slots[slot] = nil
}

// Reset clears every slot, used at a full state boundary such as a map
// transition.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		t.slots[i] = nil
	}
}

// RemoveRecord drops entries materialized from a specific persisted row, used
// when an admin lifts a penalty while the player is connected.
func (t *Tracker) RemoveRecord(slot int, recordID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.validSlot(slot) || t.slots[slot] == nil || recordID == 0 {
		return
	}

	for kind, entries := range t.slots[slot] {
		kept := entries[:0]
		for _, e := range entries {
			if e.recordID != recordID {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(t.slots[slot], kind)
		} else {
			t.slots[slot][kind] = kept
		}
	}
}

// PruneExpired evicts expired entries across all slots. Per-check eviction
// already keeps hot slots clean; this bounds idle slots between checks. The
// caller captures now once per sweep so a slow sweep cannot split entries
// with the same end instant across the boundary.
func (t *Tracker) PruneExpired(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for slot := range t.slots {
		for kind, entries := range t.slots[slot] {
			kept := entries[:0]
			for _, e := range entries {
				if e.exp.active(now) {
					kept = append(kept, e)
				} else {
					removed++
				}
			}
			if len(kept) == 0 {
				delete(t.slots[slot], kind)
			} else {
				t.slots[slot][kind] = kept
			}
		}
	}
	return removed
}
