package oracle

import (
	"context"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// RoundData is the latest price report from a feed. Answer is the price of
// one native-currency unit in fiat, scaled by the feed's Decimals.
type RoundData struct {
	RoundId   uint64
	Answer    *uint256.Int
	UpdatedAt time.Time
}

// PriceFeed reports the native-currency exchange rate used to convert
// payment-token prices into native amounts.
type PriceFeed interface {
	// Decimals returns the fixed-point precision exponent of Answer.
	Decimals() uint8
	LatestRoundData(ctx context.Context) (RoundData, error)
}

// StaticFeed is a PriceFeed with a fixed answer, the in-process equivalent of
// the price feed stub deployed on test networks. SetAnswer advances the round.
type StaticFeed struct {
	decimals uint8

	mu      sync.RWMutex
	roundId uint64
	answer  *uint256.Int
	updated time.Time
}

var _ PriceFeed = (*StaticFeed)(nil)

func NewStaticFeed(answer *uint256.Int, decimals uint8) *StaticFeed {
	return &StaticFeed{
		decimals: decimals,
		roundId:  1,
		answer:   new(uint256.Int).Set(answer),
		updated:  time.Now(),
	}
}

func (f *StaticFeed) Decimals() uint8 {
	return f.decimals
}

func (f *StaticFeed) SetAnswer(answer *uint256.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roundId++
	f.answer = new(uint256.Int).Set(answer)
	f.updated = time.Now()
}

func (f *StaticFeed) LatestRoundData(_ context.Context) (RoundData, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return RoundData{
		RoundId:   f.roundId,
		Answer:    new(uint256.Int).Set(f.answer),
		UpdatedAt: f.updated,
	}, nil
}
