package engine

import (
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// Stage is one pricing tier. Threshold is the cumulative whole-token cap of
// the tier: tokens sold while totalSold < Threshold are priced at Price.
// Price is in smallest payment-token units per whole token.
type Stage struct {
	Threshold uint64
	Price     *uint256.Int
}

type stageTable []Stage

func newStageTable(stages []Stage) (stageTable, error) {
	if len(stages) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "at least one stage is required")
	}
	table := make(stageTable, len(stages))
	prevThreshold := uint64(0)
	for i, stage := range stages {
		if stage.Threshold <= prevThreshold {
			return nil, errors.Wrapf(errs.InvalidArgument, "stage %d: thresholds must be strictly increasing", i)
		}
		if stage.Price == nil || stage.Price.IsZero() {
			return nil, errors.Wrapf(errs.InvalidArgument, "stage %d: price must be positive", i)
		}
		table[i] = Stage{
			Threshold: stage.Threshold,
			Price:     new(uint256.Int).Set(stage.Price),
		}
		prevThreshold = stage.Threshold
	}
	return table, nil
}

// cap returns the final cumulative threshold, the presale limit.
func (t stageTable) cap() uint64 {
	return t[len(t)-1].Threshold
}

// priceAt returns the per-token price in effect at the given cumulative sold
// count. At or above the presale limit it returns the final stage price.
func (t stageTable) priceAt(sold uint64) *uint256.Int {
	for _, stage := range t {
		if sold < stage.Threshold {
			return new(uint256.Int).Set(stage.Price)
		}
	}
	return new(uint256.Int).Set(t[len(t)-1].Price)
}

// quote walks the table from the current cumulative sold count and sums each
// stage's partial contribution, so a purchase straddling one or more stage
// boundaries is priced exactly. Fails with errs.PresaleLimitExceeded if
// sold+amount overshoots the final threshold.
func (t stageTable) quote(sold, amount uint64) (*uint256.Int, error) {
	if amount == 0 {
		return nil, errors.Wrap(errs.ZeroAmount, "token amount must be positive")
	}
	if amount > t.cap()-min(sold, t.cap()) {
		return nil, errors.Wrapf(errs.PresaleLimitExceeded, "%d tokens sold, requested %d, presale limit %d", sold, amount, t.cap())
	}

	total := uint256.NewInt(0)
	cursor := sold
	remaining := amount
	for _, stage := range t {
		if cursor >= stage.Threshold {
			continue
		}
		tranche := min(remaining, stage.Threshold-cursor)
		cost := new(uint256.Int).Mul(stage.Price, uint256.NewInt(tranche))
		total.Add(total, cost)
		cursor += tranche
		remaining -= tranche
		if remaining == 0 {
			break
		}
	}
	return total, nil
}

// revenueAt recomputes the blended total cost of all tokens sold so far.
func (t stageTable) revenueAt(sold uint64) *uint256.Int {
	if sold == 0 {
		return uint256.NewInt(0)
	}
	revenue, err := t.quote(0, min(sold, t.cap()))
	if err != nil {
		// unreachable: amount is positive and clamped to the limit
		return uint256.NewInt(0)
	}
	return revenue
}
