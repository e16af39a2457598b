package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/engine"
	"github.com/asi-network/presale-engine/modules/presale/ledger"
	"github.com/asi-network/presale-engine/modules/presale/oracle"
	"github.com/asi-network/presale-engine/modules/presale/repository/memory"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	saleOwner   = common.NewAddress("owner")
	saleAccount = common.NewAddress("engine-account")
	saleBuyer   = common.NewAddress("buyer")
)

type usecaseFixture struct {
	usecase      *Usecase
	repo         *memory.Repository
	paymentToken *ledger.CappedLedger
	clock        *fakeClock
	saleEnd      time.Time
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newUsecaseFixture(t *testing.T) *usecaseFixture {
	t.Helper()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: base}

	saleToken, err := ledger.NewCapped("ASI Token", "ASI", 18, 250_000_000, 1_000_000_000, saleAccount)
	require.NoError(t, err)
	paymentToken, err := ledger.NewCapped("Tether USD", "USDT", 6, 1_000_000_000, 0, saleOwner)
	require.NoError(t, err)
	nativeToken, err := ledger.NewCapped("Native", "NATIVE", 18, 0, 0, saleOwner)
	require.NoError(t, err)

	saleEngine, err := engine.New(engine.Config{
		Owner:        saleOwner,
		Account:      saleAccount,
		SaleToken:    saleToken,
		PaymentToken: paymentToken,
		NativeToken:  nativeToken,
		PriceFeed:    oracle.NewStaticFeed(uint256.NewInt(200_000_000_000), 8),
		SaleStart:    base.Add(time.Hour),
		SaleEnd:      base.Add(24 * time.Hour),
		Stages: []engine.Stage{
			{Threshold: 40_000_000, Price: uint256.NewInt(15_000)},
			{Threshold: 102_500_000, Price: uint256.NewInt(18_750)},
			{Threshold: 175_000_000, Price: uint256.NewInt(21_010)},
			{Threshold: 250_000_000, Price: uint256.NewInt(22_740)},
		},
		Now: clock.Now,
	})
	require.NoError(t, err)

	repo := memory.NewRepository()
	return &usecaseFixture{
		usecase:      New(saleEngine, repo),
		repo:         repo,
		paymentToken: paymentToken,
		clock:        clock,
		saleEnd:      base.Add(24 * time.Hour),
	}
}

func (f *usecaseFixture) buy(t *testing.T, amount uint64) {
	t.Helper()
	funds := uint256.NewInt(amount * 25_000)
	require.NoError(t, f.paymentToken.Transfer(saleOwner, saleBuyer, funds))
	require.NoError(t, f.paymentToken.Approve(saleBuyer, saleAccount, funds))
	_, err := f.usecase.BuyWithPaymentToken(context.Background(), saleBuyer, amount)
	require.NoError(t, err)
}

func TestGetSaleStatus(t *testing.T) {
	f := newUsecaseFixture(t)
	f.clock.Set(f.saleEnd.Add(-time.Hour))
	f.buy(t, 1_000)

	status := f.usecase.GetSaleStatus()
	assert.Equal(t, engine.PhaseSelling, status.Phase)
	assert.False(t, status.Paused)
	assert.Equal(t, uint64(1_000), status.TotalTokensSold)
	assert.Equal(t, uint64(250_000_000), status.PresaleCap)
	assert.Equal(t, uint256.NewInt(15_000), status.CurrentStagePrice)
	assert.Equal(t, uint256.NewInt(15_000_000), status.TotalRevenue)
	assert.Equal(t, f.saleEnd, status.SaleEnd)
}

func TestBuyRecordsPurchase(t *testing.T) {
	f := newUsecaseFixture(t)
	f.clock.Set(f.saleEnd.Add(-time.Hour))
	f.buy(t, 1_000)

	purchases, err := f.usecase.GetPurchases(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, saleBuyer, purchases[0].Buyer)
	assert.Equal(t, uint64(1_000), purchases[0].TokenAmount)
}

func TestClaimRecordsClaim(t *testing.T) {
	f := newUsecaseFixture(t)
	f.clock.Set(f.saleEnd.Add(-time.Hour))
	f.buy(t, 1_000)

	claimStart := f.saleEnd.Add(48 * time.Hour)
	require.NoError(t, f.usecase.ConfigureClaim(context.Background(), saleOwner, claimStart, 250_000_000))
	f.clock.Set(claimStart.Add(time.Minute))

	claim, err := f.usecase.Claim(context.Background(), saleBuyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), claim.TokenAmount)

	position, err := f.usecase.GetPosition(context.Background(), saleBuyer, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), position.Outstanding)
	assert.Len(t, position.Purchases, 1)
	assert.Len(t, position.Claims, 1)
}

func TestGetPosition(t *testing.T) {
	f := newUsecaseFixture(t)
	f.clock.Set(f.saleEnd.Add(-time.Hour))
	f.buy(t, 1_000)
	f.buy(t, 500)

	position, err := f.usecase.GetPosition(context.Background(), saleBuyer, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, saleBuyer, position.Buyer)
	assert.Equal(t, uint64(1_500), position.Outstanding)
	assert.Len(t, position.Purchases, 2)
	assert.Empty(t, position.Claims)
}

func TestQuote(t *testing.T) {
	f := newUsecaseFixture(t)

	quote, err := f.usecase.QuotePaymentTokenPrice(1_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), quote.TokenAmount)
	assert.Equal(t, uint256.NewInt(15_000_000), quote.PaymentTokenPrice)
	assert.Nil(t, quote.NativePrice)

	quote, err = f.usecase.QuoteNativePrice(context.Background(), 1_000)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(15_000_000), quote.PaymentTokenPrice)
	assert.Equal(t, uint256.NewInt(7_500_000_000_000_000), quote.NativePrice)
}
