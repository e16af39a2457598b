package httphandler

import (
	"github.com/asi-network/presale-engine/modules/presale/engine"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getStatusResult struct {
	Phase             engine.Phase `json:"phase"`
	Paused            bool         `json:"paused"`
	TotalTokensSold   uint64       `json:"totalTokensSold"`
	PresaleCap        uint64       `json:"presaleCap"`
	CurrentStagePrice *amount      `json:"currentStagePrice"`
	TotalRevenue      *amount      `json:"totalRevenue"`
	SaleStart         int64        `json:"saleStart"`
	SaleEnd           int64        `json:"saleEnd"`
	ClaimStart        int64        `json:"claimStart,omitempty"`
	ReservedTokens    uint64       `json:"reservedTokens,omitempty"`
}

type getStatusResponse = HttpResponse[getStatusResult]

func (h *HttpHandler) GetStatus(ctx *fiber.Ctx) error {
	status := h.usecase.GetSaleStatus()

	result := getStatusResult{
		Phase:             status.Phase,
		Paused:            status.Paused,
		TotalTokensSold:   status.TotalTokensSold,
		PresaleCap:        status.PresaleCap,
		CurrentStagePrice: newAmount(status.CurrentStagePrice, h.paymentTokenDecimals),
		TotalRevenue:      newAmount(status.TotalRevenue, h.paymentTokenDecimals),
		SaleStart:         status.SaleStart.Unix(),
		SaleEnd:           status.SaleEnd.Unix(),
		ReservedTokens:    status.ReservedTokens,
	}
	if !status.ClaimStart.IsZero() {
		result.ClaimStart = status.ClaimStart.Unix()
	}

	return errors.WithStack(ctx.JSON(getStatusResponse{
		Result: &result,
	}))
}
