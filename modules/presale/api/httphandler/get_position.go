package httphandler

import (
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getPositionRequest struct {
	paginationRequest
	Wallet string `params:"wallet"`
}

func (req getPositionRequest) Validate() error {
	var errList []error
	if err := req.paginationRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if common.NewAddress(req.Wallet).IsZero() {
		errList = append(errList, errors.New("'wallet' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getPositionResult struct {
	Buyer       common.Address     `json:"buyer"`
	Outstanding uint64             `json:"outstanding"`
	Purchases   []purchaseResponse `json:"purchases"`
	Claims      []claimResponse    `json:"claims"`
}

type getPositionResponse = HttpResponse[getPositionResult]

func (h *HttpHandler) GetPosition(ctx *fiber.Ctx) error {
	var req getPositionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	position, err := h.usecase.GetPosition(ctx.UserContext(), common.NewAddress(req.Wallet), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetPosition")
	}

	return errors.WithStack(ctx.JSON(getPositionResponse{
		Result: &getPositionResult{
			Buyer:       position.Buyer,
			Outstanding: position.Outstanding,
			Purchases: lo.Map(position.Purchases, func(purchase *entity.Purchase, _ int) purchaseResponse {
				return h.newPurchaseResponse(purchase)
			}),
			Claims: lo.Map(position.Claims, func(claim *entity.ClaimRecord, _ int) claimResponse {
				return newClaimResponse(claim)
			}),
		},
	}))
}
