package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// Quote is a price for buying TokenAmount additional whole tokens at the
// current sold count.
type Quote struct {
	TokenAmount       uint64
	PaymentTokenPrice *uint256.Int
	// NativePrice is only set for native-currency quotes.
	NativePrice *uint256.Int
}

func (u *Usecase) QuotePaymentTokenPrice(amount uint64) (Quote, error) {
	price, err := u.engine.QuotePaymentTokenPrice(amount)
	if err != nil {
		return Quote{}, errors.WithStack(err)
	}
	return Quote{TokenAmount: amount, PaymentTokenPrice: price}, nil
}

func (u *Usecase) QuoteNativePrice(ctx context.Context, amount uint64) (Quote, error) {
	paymentPrice, err := u.engine.QuotePaymentTokenPrice(amount)
	if err != nil {
		return Quote{}, errors.WithStack(err)
	}
	nativePrice, err := u.engine.QuoteNativePrice(ctx, amount)
	if err != nil {
		return Quote{}, errors.WithStack(err)
	}
	return Quote{TokenAmount: amount, PaymentTokenPrice: paymentPrice, NativePrice: nativePrice}, nil
}
