package entity

import (
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/holiman/uint256"
)

type EventType string

const (
	EventWindowUpdated      EventType = "window_updated"
	EventClaimWindowUpdated EventType = "claim_window_updated"
	EventTokensPurchased    EventType = "tokens_purchased"
	EventTokensClaimed      EventType = "tokens_claimed"
	EventPaused             EventType = "paused"
	EventUnpaused           EventType = "unpaused"
)

// SaleEvent is a notification emitted by the sale engine after an operation
// commits. Only the fields relevant to the event type are set.
type SaleEvent struct {
	Id        int64
	Type      EventType
	Timestamp time.Time

	// tokens_purchased / tokens_claimed
	Buyer             common.Address
	PaymentKind       common.PaymentKind
	TokenAmount       uint64
	PaymentTokenPrice *uint256.Int
	AmountCharged     *uint256.Int

	// window_updated / claim_window_updated
	SaleStart      time.Time
	SaleEnd        time.Time
	ClaimStart     time.Time
	ReservedTokens uint64
}

// Purchase is one settled purchase. TokenAmount is in whole tokens;
// PaymentTokenPrice and AmountCharged are in smallest units of the payment
// token and of the currency actually charged, respectively.
type Purchase struct {
	Id                int64
	Buyer             common.Address
	PaymentKind       common.PaymentKind
	TokenAmount       uint64
	PaymentTokenPrice *uint256.Int
	AmountCharged     *uint256.Int
	PurchasedAt       time.Time
}

// ClaimRecord is one settled claim. TokenAmount is in whole tokens.
type ClaimRecord struct {
	Id          int64
	Claimer     common.Address
	TokenAmount uint64
	ClaimedAt   time.Time
}
