package httphandler

import (
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type claimRequest struct {
	Wallet string `json:"wallet"`
}

func (req claimRequest) Validate() error {
	var errList []error
	if common.NewAddress(req.Wallet).IsZero() {
		errList = append(errList, errors.New("'wallet' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type claimedResponse = HttpResponse[claimResponse]

func (h *HttpHandler) Claim(ctx *fiber.Ctx) error {
	var req claimRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	claim, err := h.usecase.Claim(ctx.UserContext(), common.NewAddress(req.Wallet))
	if err != nil {
		return mapDomainError(err)
	}

	result := newClaimResponse(claim)
	return errors.WithStack(ctx.JSON(claimedResponse{Result: &result}))
}
