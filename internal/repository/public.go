package repository

import (
	"context"
	"errors"
	"time"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

var (
	PenaltyNotFoundError = errors.New("penalty not found or not active")
	AdminNotFoundError   = errors.New("admin not found")
)

// Repository is the persistence gateway to the shared store. Every call is
// scoped to one logical operation with its own timeout; no transaction spans
// calls. Query text differs per backend but callers never see backend-specific
// SQL or error types.
type Repository interface {
	// CheckConnection is a cheap liveness probe used at startup to fail fast.
	CheckConnection(ctx context.Context) error
	// ApplyMigrations applies pending schema scripts in name order against a
	// version-tracking table. A failure aborts the remaining scripts and is
	// surfaced to the caller.
	ApplyMigrations(ctx context.Context) error

	// GetAdmins returns every non-expired grant visible to this server:
	// global rows (server_id IS NULL) and rows scoped to this server.
	GetAdmins(ctx context.Context) ([]*model.AdminRecord, error)
	// GetAdmin returns both scopes for one identity in a single round trip.
	GetAdmin(ctx context.Context, identity int64) ([]*model.AdminRecord, error)
	UpsertAdmin(ctx context.Context, rec *model.AdminRecord) error
	// DeleteAdmin removes the grant for the given scope. Removing a global
	// grant is the only way to remove global rights.
	DeleteAdmin(ctx context.Context, identity int64, global bool) error
	GetGroups(ctx context.Context) ([]*model.GroupRecord, error)

	// GetActivePenalties returns rows with Active status for one identity,
	// both scopes, for connect-time materialization.
	GetActivePenalties(ctx context.Context, identity int64) ([]*model.PenaltyRecord, error)
	InsertPenalty(ctx context.Context, rec *model.PenaltyRecord) (int64, error)
	// LiftPenalty flips an Active row to Lifted. Terminal states never revert.
	LiftPenalty(ctx context.Context, id int64, kind model.PenaltyKind) error
	// UpdatePenaltyPassed persists the elapsed interval count of a tick-mode
	// row so the countdown resumes on reconnect.
	UpdatePenaltyPassed(ctx context.Context, id int64, passed int) error
	// ExpirePenalty flips one fully served tick-mode row to Expired, recording
	// the final elapsed interval count. Already-terminal rows are left as is.
	ExpirePenalty(ctx context.Context, id int64, passed int) error

	// ExpirePenalties flips elapsed time-mode rows to Expired. Tick-mode rows
	// are excluded: their elapsed budget is process-local knowledge.
	ExpirePenalties(ctx context.Context, now time.Time) (int64, error)
	// ExpireAdmins drops grants whose expiry has passed.
	ExpireAdmins(ctx context.Context, now time.Time) (int64, error)
	// AnonymizeOldPenalties nulls the stored address of rows created before
	// the given instant, leaving identity and status intact.
	AnonymizeOldPenalties(ctx context.Context, before time.Time) (int64, error)
}
