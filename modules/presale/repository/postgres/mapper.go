package postgres

import (
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
	"github.com/samber/lo"
)

type purchaseModel struct {
	Id                int64
	Buyer             string
	PaymentKind       string
	TokenAmount       int64
	PaymentTokenPrice string
	AmountCharged     string
	PurchasedAt       time.Time
}

type claimModel struct {
	Id          int64
	Claimer     string
	TokenAmount int64
	ClaimedAt   time.Time
}

type saleEventModel struct {
	Id                int64
	Type              string
	Timestamp         time.Time
	Buyer             *string
	PaymentKind       *string
	TokenAmount       *int64
	PaymentTokenPrice *string
	AmountCharged     *string
	SaleStart         *time.Time
	SaleEnd           *time.Time
	ClaimStart        *time.Time
	ReservedTokens    *int64
}

func mapPurchaseTypeToModel(purchase *entity.Purchase) purchaseModel {
	return purchaseModel{
		Buyer:             purchase.Buyer.String(),
		PaymentKind:       purchase.PaymentKind.String(),
		TokenAmount:       int64(purchase.TokenAmount),
		PaymentTokenPrice: purchase.PaymentTokenPrice.Dec(),
		AmountCharged:     purchase.AmountCharged.Dec(),
		PurchasedAt:       purchase.PurchasedAt,
	}
}

func mapPurchaseModelToType(model purchaseModel) (*entity.Purchase, error) {
	paymentTokenPrice, err := parseAmount(model.PaymentTokenPrice)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse payment token price")
	}
	amountCharged, err := parseAmount(model.AmountCharged)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse amount charged")
	}
	return &entity.Purchase{
		Id:                model.Id,
		Buyer:             common.Address(model.Buyer),
		PaymentKind:       common.PaymentKind(model.PaymentKind),
		TokenAmount:       uint64(model.TokenAmount),
		PaymentTokenPrice: paymentTokenPrice,
		AmountCharged:     amountCharged,
		PurchasedAt:       model.PurchasedAt,
	}, nil
}

func mapPurchaseModels(models []purchaseModel) ([]*entity.Purchase, error) {
	purchases := make([]*entity.Purchase, 0, len(models))
	for _, model := range models {
		purchase, err := mapPurchaseModelToType(model)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		purchases = append(purchases, purchase)
	}
	return purchases, nil
}

func mapClaimTypeToModel(claim *entity.ClaimRecord) claimModel {
	return claimModel{
		Claimer:     claim.Claimer.String(),
		TokenAmount: int64(claim.TokenAmount),
		ClaimedAt:   claim.ClaimedAt,
	}
}

func mapClaimModelToType(model claimModel) *entity.ClaimRecord {
	return &entity.ClaimRecord{
		Id:          model.Id,
		Claimer:     common.Address(model.Claimer),
		TokenAmount: uint64(model.TokenAmount),
		ClaimedAt:   model.ClaimedAt,
	}
}

func mapSaleEventTypeToModel(event *entity.SaleEvent) saleEventModel {
	model := saleEventModel{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
	}
	switch event.Type {
	case entity.EventTokensPurchased:
		model.Buyer = lo.ToPtr(event.Buyer.String())
		model.PaymentKind = lo.ToPtr(event.PaymentKind.String())
		model.TokenAmount = lo.ToPtr(int64(event.TokenAmount))
		model.PaymentTokenPrice = lo.ToPtr(event.PaymentTokenPrice.Dec())
		model.AmountCharged = lo.ToPtr(event.AmountCharged.Dec())
	case entity.EventTokensClaimed:
		model.Buyer = lo.ToPtr(event.Buyer.String())
		model.TokenAmount = lo.ToPtr(int64(event.TokenAmount))
	case entity.EventWindowUpdated:
		model.SaleStart = lo.ToPtr(event.SaleStart)
		model.SaleEnd = lo.ToPtr(event.SaleEnd)
	case entity.EventClaimWindowUpdated:
		model.ClaimStart = lo.ToPtr(event.ClaimStart)
		model.ReservedTokens = lo.ToPtr(int64(event.ReservedTokens))
	}
	return model
}

func mapSaleEventModelToType(model saleEventModel) (*entity.SaleEvent, error) {
	event := &entity.SaleEvent{
		Id:        model.Id,
		Type:      entity.EventType(model.Type),
		Timestamp: model.Timestamp,
	}
	if model.Buyer != nil {
		event.Buyer = common.Address(*model.Buyer)
	}
	if model.PaymentKind != nil {
		event.PaymentKind = common.PaymentKind(*model.PaymentKind)
	}
	if model.TokenAmount != nil {
		event.TokenAmount = uint64(*model.TokenAmount)
	}
	if model.PaymentTokenPrice != nil {
		price, err := parseAmount(*model.PaymentTokenPrice)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse payment token price")
		}
		event.PaymentTokenPrice = price
	}
	if model.AmountCharged != nil {
		charged, err := parseAmount(*model.AmountCharged)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse amount charged")
		}
		event.AmountCharged = charged
	}
	if model.SaleStart != nil {
		event.SaleStart = *model.SaleStart
	}
	if model.SaleEnd != nil {
		event.SaleEnd = *model.SaleEnd
	}
	if model.ClaimStart != nil {
		event.ClaimStart = *model.ClaimStart
	}
	if model.ReservedTokens != nil {
		event.ReservedTokens = uint64(*model.ReservedTokens)
	}
	return event, nil
}

func mapSaleEventModels(models []saleEventModel) ([]*entity.SaleEvent, error) {
	events := make([]*entity.SaleEvent, 0, len(models))
	for _, model := range models {
		event, err := mapSaleEventModelToType(model)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		events = append(events, event)
	}
	return events, nil
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid amount %q", s)
	}
	return amount, nil
}
