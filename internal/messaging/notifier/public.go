package notifier

import (
	"context"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

type GrantChangeType string

const (
	GrantChangeGranted GrantChangeType = "GRANTED"
	GrantChangeRevoked GrantChangeType = "REVOKED"
)

// Notifier is the publish point for change notifications. Delivery (Discord
// relays, dashboards) is a consumer concern; the core only emits events.
type Notifier interface {
	AdminListReloaded(ctx context.Context, count int) error
	GrantChanged(ctx context.Context, identity int64, change GrantChangeType) error
	PenaltyIssued(ctx context.Context, rec *model.PenaltyRecord) error
	PenaltyLifted(ctx context.Context, id int64, kind model.PenaltyKind) error
}
