package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getCurrentPriceResult struct {
	TotalTokensSold uint64  `json:"totalTokensSold"`
	PresaleCap      uint64  `json:"presaleCap"`
	StagePrice      *amount `json:"stagePrice"`
}

type getCurrentPriceResponse = HttpResponse[getCurrentPriceResult]

func (h *HttpHandler) GetCurrentPrice(ctx *fiber.Ctx) error {
	status := h.usecase.GetSaleStatus()

	return errors.WithStack(ctx.JSON(getCurrentPriceResponse{
		Result: &getCurrentPriceResult{
			TotalTokensSold: status.TotalTokensSold,
			PresaleCap:      status.PresaleCap,
			StagePrice:      newAmount(status.CurrentStagePrice, h.paymentTokenDecimals),
		},
	}))
}
