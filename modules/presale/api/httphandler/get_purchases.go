package httphandler

import (
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getPurchasesRequest struct {
	paginationRequest
}

type getPurchasesResult struct {
	List []purchaseResponse `json:"list"`
}

type getPurchasesResponse = HttpResponse[getPurchasesResult]

func (h *HttpHandler) GetPurchases(ctx *fiber.Ctx) error {
	var req getPurchasesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	purchases, err := h.usecase.GetPurchases(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetPurchases")
	}

	return errors.WithStack(ctx.JSON(getPurchasesResponse{
		Result: &getPurchasesResult{
			List: lo.Map(purchases, func(purchase *entity.Purchase, _ int) purchaseResponse {
				return h.newPurchaseResponse(purchase)
			}),
		},
	}))
}
