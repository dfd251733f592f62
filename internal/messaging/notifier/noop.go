package notifier

import (
	"context"

	"github.com/daffyyyy/CS2-SimpleAdmin-sub001/internal/repository/model"
)

// noopNotifier is used when no broker is configured.
type noopNotifier struct{}

func NewNoop() Notifier {
	return noopNotifier{}
}

func (noopNotifier) AdminListReloaded(context.Context, int) error                 { return nil }
func (noopNotifier) GrantChanged(context.Context, int64, GrantChangeType) error   { return nil }
func (noopNotifier) PenaltyIssued(context.Context, *model.PenaltyRecord) error    { return nil }
func (noopNotifier) PenaltyLifted(context.Context, int64, model.PenaltyKind) error { return nil }
