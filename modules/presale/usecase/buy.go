package usecase

import (
	"context"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/asi-network/presale-engine/pkg/logger"
	"github.com/asi-network/presale-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// BuyWithNative settles a native-currency purchase and records it in the
// audit trail. A failed audit write does not unwind the settled purchase;
// it is logged and surfaced to operators.
func (u *Usecase) BuyWithNative(ctx context.Context, buyer common.Address, amount uint64, attached *uint256.Int) (*entity.Purchase, error) {
	purchase, err := u.engine.BuyWithNative(ctx, buyer, amount, attached)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	u.recordPurchase(ctx, purchase)
	return purchase, nil
}

// BuyWithPaymentToken settles a stablecoin purchase and records it in the
// audit trail.
func (u *Usecase) BuyWithPaymentToken(ctx context.Context, buyer common.Address, amount uint64) (*entity.Purchase, error) {
	purchase, err := u.engine.BuyWithPaymentToken(ctx, buyer, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	u.recordPurchase(ctx, purchase)
	return purchase, nil
}

// Claim settles the caller's outstanding tokens and records the claim.
func (u *Usecase) Claim(ctx context.Context, claimer common.Address) (*entity.ClaimRecord, error) {
	claim, err := u.engine.Claim(ctx, claimer)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := u.presaleDg.CreateClaim(ctx, claim); err != nil {
		logger.ErrorContext(ctx, "Failed to record claim", slogx.Error(err), slogx.Stringer("claimer", claimer))
	}
	return claim, nil
}

func (u *Usecase) recordPurchase(ctx context.Context, purchase *entity.Purchase) {
	if err := u.presaleDg.CreatePurchase(ctx, purchase); err != nil {
		logger.ErrorContext(ctx, "Failed to record purchase", slogx.Error(err), slogx.Stringer("buyer", purchase.Buyer))
	}
}
