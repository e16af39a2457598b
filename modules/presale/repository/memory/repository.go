package memory

import (
	"context"
	"sync"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/datagateway"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/samber/lo"
)

// Repository is an in-memory PresaleDataGateway. It backs deployments that
// run without Postgres and the engine test suites.
type Repository struct {
	mu        sync.RWMutex
	purchases []*entity.Purchase
	claims    []*entity.ClaimRecord
	events    []*entity.SaleEvent
}

var _ datagateway.PresaleDataGateway = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) CreatePurchase(_ context.Context, purchase *entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *purchase
	clone.Id = int64(len(r.purchases) + 1)
	r.purchases = append(r.purchases, &clone)
	return nil
}

func (r *Repository) CreateClaim(_ context.Context, claim *entity.ClaimRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *claim
	clone.Id = int64(len(r.claims) + 1)
	r.claims = append(r.claims, &clone)
	return nil
}

func (r *Repository) CreateEvents(_ context.Context, events []*entity.SaleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range events {
		clone := *event
		clone.Id = int64(len(r.events) + 1)
		r.events = append(r.events, &clone)
	}
	return nil
}

func (r *Repository) GetPurchases(_ context.Context, limit, offset int32) ([]*entity.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	newestFirst := lo.Reverse(append([]*entity.Purchase{}, r.purchases...))
	return paginate(newestFirst, limit, offset), nil
}

func (r *Repository) GetPurchasesByBuyer(_ context.Context, buyer common.Address, limit, offset int32) ([]*entity.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := lo.Filter(r.purchases, func(purchase *entity.Purchase, _ int) bool {
		return purchase.Buyer == buyer
	})
	return paginate(lo.Reverse(matched), limit, offset), nil
}

func (r *Repository) GetClaimsByClaimer(_ context.Context, claimer common.Address, limit, offset int32) ([]*entity.ClaimRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := lo.Filter(r.claims, func(claim *entity.ClaimRecord, _ int) bool {
		return claim.Claimer == claimer
	})
	return paginate(lo.Reverse(matched), limit, offset), nil
}

func (r *Repository) GetEvents(_ context.Context, limit, offset int32) ([]*entity.SaleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return paginate(append([]*entity.SaleEvent{}, r.events...), limit, offset), nil
}

func paginate[T any](items []T, limit, offset int32) []T {
	if offset >= int32(len(items)) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < int32(len(items)) {
		items = items[:limit]
	}
	return items
}
