package clock

import (
	"fmt"
	"sync"
	"time"
)

// Clock abstracts "now" so expiry logic can be tested deterministically and so
// a deployment can pin all timestamps to a configured zone or to UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystem returns a wall clock. When utcStorage is set all timestamps are
// reported in UTC regardless of timezone, so comparisons against stored rows
// are zone-independent. Otherwise timezone (IANA name, empty = local) is used.
func NewSystem(timezone string, utcStorage bool) (Clock, error) {
	if utcStorage {
		return &systemClock{loc: time.UTC}, nil
	}
	if timezone == "" {
		return &systemClock{loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	return &systemClock{loc: loc}, nil
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
