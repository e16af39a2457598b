package usecase

import (
	"context"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/cockroachdb/errors"
)

func (u *Usecase) GetPurchases(ctx context.Context, limit, offset int32) ([]*entity.Purchase, error) {
	purchases, err := u.presaleDg.GetPurchases(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during get purchases")
	}
	return purchases, nil
}

func (u *Usecase) GetEvents(ctx context.Context, limit, offset int32) ([]*entity.SaleEvent, error) {
	events, err := u.presaleDg.GetEvents(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during get events")
	}
	return events, nil
}

// Position is a buyer's standing in the sale: outstanding unclaimed tokens
// plus settled history.
type Position struct {
	Buyer       common.Address
	Outstanding uint64
	Purchases   []*entity.Purchase
	Claims      []*entity.ClaimRecord
}

func (u *Usecase) GetPosition(ctx context.Context, buyer common.Address, limit, offset int32) (Position, error) {
	purchases, err := u.presaleDg.GetPurchasesByBuyer(ctx, buyer, limit, offset)
	if err != nil {
		return Position{}, errors.Wrap(err, "error during get purchases")
	}
	claims, err := u.presaleDg.GetClaimsByClaimer(ctx, buyer, limit, offset)
	if err != nil {
		return Position{}, errors.Wrap(err, "error during get claims")
	}
	return Position{
		Buyer:       buyer,
		Outstanding: u.engine.PurchasedTokens(buyer),
		Purchases:   purchases,
		Claims:      claims,
	}, nil
}
