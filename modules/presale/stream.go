package presale

import (
	"context"
	"sync"

	"github.com/asi-network/presale-engine/internal/subscription"
	"github.com/asi-network/presale-engine/modules/presale/engine"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/asi-network/presale-engine/pkg/logger/slogx"
)

// eventStream fans committed sale events out to subscribers. It is the
// engine's event sink and the worker's source at the same time.
type eventStream struct {
	mu   sync.Mutex
	subs []*subscription.Subscription[[]*entity.SaleEvent]
}

var _ engine.EventSink = (*eventStream)(nil)

func newEventStream() *eventStream {
	return &eventStream{}
}

func (s *eventStream) Name() string {
	return "presale-events"
}

// Emit forwards events to all live subscribers. Closed subscriptions are
// dropped; a slow subscriber never fails the emitting operation.
func (s *eventStream) Emit(ctx context.Context, events []*entity.SaleEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.subs[:0]
	for _, sub := range s.subs {
		if sub.IsClosed() {
			continue
		}
		if err := sub.Send(ctx, events); err != nil {
			logger.WarnContext(ctx, "Failed to send sale events to subscriber", slogx.Error(err))
			continue
		}
		live = append(live, sub)
	}
	s.subs = live
}

func (s *eventStream) Subscribe(_ context.Context, ch chan []*entity.SaleEvent) (*subscription.ClientSubscription[[]*entity.SaleEvent], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := subscription.NewSubscription[[]*entity.SaleEvent](ch)
	s.subs = append(s.subs, sub)
	return sub.Client(), nil
}
