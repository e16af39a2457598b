package engine

import (
	"context"

	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
)

// EventSink receives the notifications an operation produced, flushed in one
// batch after the operation commits. Sink failures must not fail the
// operation; implementations are expected to log and move on.
type EventSink interface {
	Emit(ctx context.Context, events []*entity.SaleEvent)
}

type nopSink struct{}

func (nopSink) Emit(context.Context, []*entity.SaleEvent) {}
