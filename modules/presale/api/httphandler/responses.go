package httphandler

import (
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/asi-network/presale-engine/pkg/decimals"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// amount renders a smallest-unit value both raw and scaled for humans.
type amount struct {
	Raw     string          `json:"raw"`
	Decimal decimal.Decimal `json:"decimal"`
}

func newAmount(value *uint256.Int, precision uint8) *amount {
	if value == nil {
		return nil
	}
	return &amount{
		Raw:     value.Dec(),
		Decimal: decimals.ToDecimal(value, precision),
	}
}

type purchaseResponse struct {
	Id                int64              `json:"id"`
	Buyer             common.Address     `json:"buyer"`
	PaymentKind       common.PaymentKind `json:"paymentKind"`
	TokenAmount       uint64             `json:"tokenAmount"`
	PaymentTokenPrice *amount            `json:"paymentTokenPrice"`
	AmountCharged     *amount            `json:"amountCharged"`
	PurchasedAt       int64              `json:"purchasedAt"`
}

func (h *HttpHandler) newPurchaseResponse(purchase *entity.Purchase) purchaseResponse {
	chargedDecimals := h.paymentTokenDecimals
	if purchase.PaymentKind == common.PaymentNative {
		chargedDecimals = h.nativeDecimals
	}
	return purchaseResponse{
		Id:                purchase.Id,
		Buyer:             purchase.Buyer,
		PaymentKind:       purchase.PaymentKind,
		TokenAmount:       purchase.TokenAmount,
		PaymentTokenPrice: newAmount(purchase.PaymentTokenPrice, h.paymentTokenDecimals),
		AmountCharged:     newAmount(purchase.AmountCharged, chargedDecimals),
		PurchasedAt:       purchase.PurchasedAt.Unix(),
	}
}

type claimResponse struct {
	Id          int64          `json:"id"`
	Claimer     common.Address `json:"claimer"`
	TokenAmount uint64         `json:"tokenAmount"`
	ClaimedAt   int64          `json:"claimedAt"`
}

func newClaimResponse(claim *entity.ClaimRecord) claimResponse {
	return claimResponse{
		Id:          claim.Id,
		Claimer:     claim.Claimer,
		TokenAmount: claim.TokenAmount,
		ClaimedAt:   claim.ClaimedAt.Unix(),
	}
}

type saleEventResponse struct {
	Id                int64              `json:"id"`
	Type              entity.EventType   `json:"type"`
	Timestamp         int64              `json:"timestamp"`
	Buyer             common.Address     `json:"buyer,omitempty"`
	PaymentKind       common.PaymentKind `json:"paymentKind,omitempty"`
	TokenAmount       uint64             `json:"tokenAmount,omitempty"`
	PaymentTokenPrice *amount            `json:"paymentTokenPrice,omitempty"`
	AmountCharged     *amount            `json:"amountCharged,omitempty"`
	SaleStart         int64              `json:"saleStart,omitempty"`
	SaleEnd           int64              `json:"saleEnd,omitempty"`
	ClaimStart        int64              `json:"claimStart,omitempty"`
	ReservedTokens    uint64             `json:"reservedTokens,omitempty"`
}

func (h *HttpHandler) newSaleEventResponse(event *entity.SaleEvent) saleEventResponse {
	resp := saleEventResponse{
		Id:          event.Id,
		Type:        event.Type,
		Timestamp:   event.Timestamp.Unix(),
		Buyer:       event.Buyer,
		PaymentKind: event.PaymentKind,
		TokenAmount: event.TokenAmount,
	}
	if event.PaymentTokenPrice != nil {
		resp.PaymentTokenPrice = newAmount(event.PaymentTokenPrice, h.paymentTokenDecimals)
	}
	if event.AmountCharged != nil {
		chargedDecimals := h.paymentTokenDecimals
		if event.PaymentKind == common.PaymentNative {
			chargedDecimals = h.nativeDecimals
		}
		resp.AmountCharged = newAmount(event.AmountCharged, chargedDecimals)
	}
	if !event.SaleStart.IsZero() {
		resp.SaleStart = event.SaleStart.Unix()
	}
	if !event.SaleEnd.IsZero() {
		resp.SaleEnd = event.SaleEnd.Unix()
	}
	if !event.ClaimStart.IsZero() {
		resp.ClaimStart = event.ClaimStart.Unix()
	}
	resp.ReservedTokens = event.ReservedTokens
	return resp
}
