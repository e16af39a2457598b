package usecase

import (
	"time"

	"github.com/asi-network/presale-engine/modules/presale/engine"
	"github.com/holiman/uint256"
)

// SaleStatus is a point-in-time snapshot of the engine's public state.
type SaleStatus struct {
	Phase             engine.Phase
	Paused            bool
	TotalTokensSold   uint64
	PresaleCap        uint64
	CurrentStagePrice *uint256.Int
	TotalRevenue      *uint256.Int
	SaleStart         time.Time
	SaleEnd           time.Time
	ClaimStart        time.Time
	ReservedTokens    uint64
}

func (u *Usecase) GetSaleStatus() SaleStatus {
	saleStart, saleEnd := u.engine.SaleWindow()
	claimStart, reserved := u.engine.ClaimWindow()
	return SaleStatus{
		Phase:             u.engine.Phase(),
		Paused:            u.engine.Paused(),
		TotalTokensSold:   u.engine.TotalTokensSold(),
		PresaleCap:        u.engine.GetTotalPresaleCap(),
		CurrentStagePrice: u.engine.GetCurrentStagePrice(),
		TotalRevenue:      u.engine.GetTotalRevenueAtCurrentSold(),
		SaleStart:         saleStart,
		SaleEnd:           saleEnd,
		ClaimStart:        claimStart,
		ReservedTokens:    reserved,
	}
}
