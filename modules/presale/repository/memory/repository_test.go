package memory

import (
	"context"
	"testing"
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/holiman/uint256"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPurchase(buyer string, amount uint64) *entity.Purchase {
	return &entity.Purchase{
		Buyer:             common.NewAddress(buyer),
		PaymentKind:       common.PaymentToken,
		TokenAmount:       amount,
		PaymentTokenPrice: uint256.NewInt(amount * 15_000),
		AmountCharged:     uint256.NewInt(amount * 15_000),
		PurchasedAt:       time.Now(),
	}
}

func seedPurchases(t *testing.T, repo *Repository, count int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= count; i++ {
		require.NoError(t, repo.CreatePurchase(ctx, newPurchase("buyer", uint64(i))))
	}
}

func TestGetPurchases(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()
		repo := NewRepository()
		seedPurchases(t, repo, 3)

		purchases, err := repo.GetPurchases(ctx, 100, 0)
		require.NoError(t, err)
		amounts := lo.Map(purchases, func(p *entity.Purchase, _ int) uint64 { return p.TokenAmount })
		assert.Equal(t, []uint64{3, 2, 1}, amounts)
	})
	t.Run("limit and offset", func(t *testing.T) {
		t.Parallel()
		repo := NewRepository()
		seedPurchases(t, repo, 5)

		purchases, err := repo.GetPurchases(ctx, 2, 1)
		require.NoError(t, err)
		amounts := lo.Map(purchases, func(p *entity.Purchase, _ int) uint64 { return p.TokenAmount })
		assert.Equal(t, []uint64{4, 3}, amounts)
	})
	t.Run("offset past end", func(t *testing.T) {
		t.Parallel()
		repo := NewRepository()
		seedPurchases(t, repo, 2)

		purchases, err := repo.GetPurchases(ctx, 100, 10)
		require.NoError(t, err)
		assert.Empty(t, purchases)
	})
	t.Run("negative limit returns all", func(t *testing.T) {
		t.Parallel()
		repo := NewRepository()
		seedPurchases(t, repo, 4)

		purchases, err := repo.GetPurchases(ctx, -1, 0)
		require.NoError(t, err)
		assert.Len(t, purchases, 4)
	})
	t.Run("assigns sequential ids", func(t *testing.T) {
		t.Parallel()
		repo := NewRepository()
		seedPurchases(t, repo, 2)

		purchases, err := repo.GetPurchases(ctx, 100, 0)
		require.NoError(t, err)
		ids := lo.Map(purchases, func(p *entity.Purchase, _ int) int64 { return p.Id })
		assert.Equal(t, []int64{2, 1}, ids)
	})
}

func TestGetPurchasesByBuyer(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.CreatePurchase(ctx, newPurchase("alice", 1)))
	require.NoError(t, repo.CreatePurchase(ctx, newPurchase("bob", 2)))
	require.NoError(t, repo.CreatePurchase(ctx, newPurchase("alice", 3)))

	purchases, err := repo.GetPurchasesByBuyer(ctx, common.NewAddress("alice"), 100, 0)
	require.NoError(t, err)
	amounts := lo.Map(purchases, func(p *entity.Purchase, _ int) uint64 { return p.TokenAmount })
	assert.Equal(t, []uint64{3, 1}, amounts)

	purchases, err = repo.GetPurchasesByBuyer(ctx, common.NewAddress("stranger"), 100, 0)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestGetClaimsByClaimer(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.CreateClaim(ctx, &entity.ClaimRecord{Claimer: common.NewAddress("alice"), TokenAmount: 10, ClaimedAt: time.Now()}))
	require.NoError(t, repo.CreateClaim(ctx, &entity.ClaimRecord{Claimer: common.NewAddress("bob"), TokenAmount: 20, ClaimedAt: time.Now()}))
	require.NoError(t, repo.CreateClaim(ctx, &entity.ClaimRecord{Claimer: common.NewAddress("alice"), TokenAmount: 30, ClaimedAt: time.Now()}))

	claims, err := repo.GetClaimsByClaimer(ctx, common.NewAddress("alice"), 100, 0)
	require.NoError(t, err)
	amounts := lo.Map(claims, func(c *entity.ClaimRecord, _ int) uint64 { return c.TokenAmount })
	assert.Equal(t, []uint64{30, 10}, amounts)
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.CreateEvents(ctx, []*entity.SaleEvent{
		{Type: entity.EventPaused, Timestamp: time.Now()},
		{Type: entity.EventUnpaused, Timestamp: time.Now()},
	}))
	require.NoError(t, repo.CreateEvents(ctx, []*entity.SaleEvent{
		{Type: entity.EventTokensPurchased, Timestamp: time.Now()},
	}))

	// events are returned in insertion order
	events, err := repo.GetEvents(ctx, 100, 0)
	require.NoError(t, err)
	types := lo.Map(events, func(e *entity.SaleEvent, _ int) entity.EventType { return e.Type })
	assert.Equal(t, []entity.EventType{entity.EventPaused, entity.EventUnpaused, entity.EventTokensPurchased}, types)
	ids := lo.Map(events, func(e *entity.SaleEvent, _ int) int64 { return e.Id })
	assert.Equal(t, []int64{1, 2, 3}, ids)

	events, err = repo.GetEvents(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventTokensPurchased, events[0].Type)
}
