package datagateway

import (
	"context"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
)

// PresaleDataGateway persists the audit trail of the sale: settled
// purchases, settled claims and emitted notifications.
type PresaleDataGateway interface {
	PresaleReaderDataGateway
	PresaleWriterDataGateway
}

type PresaleReaderDataGateway interface {
	// GetPurchases returns settled purchases, newest first. Use limit = -1 as no limit.
	GetPurchases(ctx context.Context, limit, offset int32) ([]*entity.Purchase, error)
	// GetPurchasesByBuyer returns the buyer's settled purchases, newest first.
	GetPurchasesByBuyer(ctx context.Context, buyer common.Address, limit, offset int32) ([]*entity.Purchase, error)
	// GetClaimsByClaimer returns the claimer's settled claims, newest first.
	GetClaimsByClaimer(ctx context.Context, claimer common.Address, limit, offset int32) ([]*entity.ClaimRecord, error)
	// GetEvents returns emitted notifications in emission order.
	GetEvents(ctx context.Context, limit, offset int32) ([]*entity.SaleEvent, error)
}

type PresaleWriterDataGateway interface {
	CreatePurchase(ctx context.Context, purchase *entity.Purchase) error
	CreateClaim(ctx context.Context, claim *entity.ClaimRecord) error
	CreateEvents(ctx context.Context, events []*entity.SaleEvent) error
}
