package model

import (
	"fmt"
	"strings"
	"time"
)

// RootFlag grants every permission.
const RootFlag = "@admin/root"

// PenaltyKind is the closed set of punitive states tracked per player.
type PenaltyKind string

const (
	KindGag     PenaltyKind = "GAG"
	KindMute    PenaltyKind = "MUTE"
	KindSilence PenaltyKind = "SILENCE"
	KindBan     PenaltyKind = "BAN"
	KindWarn    PenaltyKind = "WARN"
)

func ParsePenaltyKind(s string) (PenaltyKind, error) {
	switch k := PenaltyKind(strings.ToUpper(s)); k {
	case KindGag, KindMute, KindSilence, KindBan, KindWarn:
		return k, nil
	default:
		return "", fmt.Errorf("unknown penalty kind %q", s)
	}
}

// PenaltyStatus is the lifecycle of a persisted penalty row. Active rows
// transition to Expired (time elapsed) or Lifted (explicit action); both are
// terminal.
type PenaltyStatus string

const (
	StatusActive  PenaltyStatus = "ACTIVE"
	StatusLifted  PenaltyStatus = "LIFTED"
	StatusExpired PenaltyStatus = "EXPIRED"
	StatusUnknown PenaltyStatus = "UNKNOWN"
)

func ParsePenaltyStatus(s string) (PenaltyStatus, error) {
	switch st := PenaltyStatus(strings.ToUpper(s)); st {
	case StatusActive, StatusLifted, StatusExpired, StatusUnknown:
		return st, nil
	default:
		return "", fmt.Errorf("unknown penalty status %q", s)
	}
}

// AdminRecord is one grant row joined with its flags. A nil ServerID means the
// grant applies on every server sharing the store.
type AdminRecord struct {
	ID       int64
	Identity int64
	Name     string
	Immunity int
	Flags    []string
	Created  time.Time
	Ends     *time.Time
	ServerID *int32
}

func (a *AdminRecord) Global() bool {
	return a.ServerID == nil
}

func (a *AdminRecord) Expired(now time.Time) bool {
	return a.Ends != nil && !now.Before(*a.Ends)
}

// ValidFlag reports whether s is a leaf permission ("@x/y") or a group
// reference ("#name"). Rows carrying anything else are skipped at the
// repository boundary.
func ValidFlag(s string) bool {
	if len(s) < 2 {
		return false
	}
	return s[0] == '@' || s[0] == '#'
}

// IsGroupRef reports whether flag references a named group rather than a leaf
// permission.
func IsGroupRef(flag string) bool {
	return strings.HasPrefix(flag, "#")
}

// GroupRecord is a named bundle of flags an AdminRecord can reference.
type GroupRecord struct {
	Name     string
	Immunity int
	Flags    []string
}

// PenaltyRecord is a persisted punitive record. Duration is in minutes for
// absolute-time penalties and in intervals for tick-mode penalties; 0 means
// permanent. Passed carries the elapsed interval count for tick-mode rows so a
// reconnect resumes the countdown rather than restarting it.
type PenaltyRecord struct {
	ID       int64
	Identity int64
	Address  *string
	Kind     PenaltyKind
	Status   PenaltyStatus
	Reason   string
	Duration int
	Created  time.Time
	Ends     *time.Time
	Passed   *int
	ServerID *int32
}

func (p *PenaltyRecord) Permanent() bool {
	return p.Duration == 0
}

func (p *PenaltyRecord) Global() bool {
	return p.ServerID == nil
}
