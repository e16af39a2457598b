package httphandler

import (
	"time"

	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type adminRequest struct {
	Caller string `json:"caller"`
}

func (req adminRequest) Validate() error {
	var errList []error
	if common.NewAddress(req.Caller).IsZero() {
		errList = append(errList, errors.New("'caller' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type adminResult struct {
	Success bool `json:"success"`
}

type adminResponse = HttpResponse[adminResult]

func adminOk(ctx *fiber.Ctx) error {
	return errors.WithStack(ctx.JSON(adminResponse{
		Result: &adminResult{Success: true},
	}))
}

type configureSaleWindowRequest struct {
	adminRequest
	SaleStart int64 `json:"saleStart"`
	SaleEnd   int64 `json:"saleEnd"`
}

func (req configureSaleWindowRequest) Validate() error {
	var errList []error
	if err := req.adminRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if req.SaleStart <= 0 {
		errList = append(errList, errors.New("'saleStart' must be a positive unix timestamp"))
	}
	if req.SaleEnd <= 0 {
		errList = append(errList, errors.New("'saleEnd' must be a positive unix timestamp"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) ConfigureSaleWindow(ctx *fiber.Ctx) error {
	var req configureSaleWindowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	err := h.usecase.ConfigureSaleWindow(ctx.UserContext(), common.NewAddress(req.Caller), time.Unix(req.SaleStart, 0), time.Unix(req.SaleEnd, 0))
	if err != nil {
		return mapDomainError(err)
	}
	return adminOk(ctx)
}

type configureClaimRequest struct {
	adminRequest
	ClaimStart int64 `json:"claimStart"`
	// Reserve is in whole tokens.
	Reserve uint64 `json:"reserve"`
}

func (req configureClaimRequest) Validate() error {
	var errList []error
	if err := req.adminRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if req.ClaimStart <= 0 {
		errList = append(errList, errors.New("'claimStart' must be a positive unix timestamp"))
	}
	if req.Reserve == 0 {
		errList = append(errList, errors.New("'reserve' must be positive"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) ConfigureClaim(ctx *fiber.Ctx) error {
	var req configureClaimRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	err := h.usecase.ConfigureClaim(ctx.UserContext(), common.NewAddress(req.Caller), time.Unix(req.ClaimStart, 0), req.Reserve)
	if err != nil {
		return mapDomainError(err)
	}
	return adminOk(ctx)
}

type reconfigureClaimStartRequest struct {
	adminRequest
	ClaimStart int64 `json:"claimStart"`
}

func (req reconfigureClaimStartRequest) Validate() error {
	var errList []error
	if err := req.adminRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if req.ClaimStart <= 0 {
		errList = append(errList, errors.New("'claimStart' must be a positive unix timestamp"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) ReconfigureClaimStart(ctx *fiber.Ctx) error {
	var req reconfigureClaimStartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	err := h.usecase.ReconfigureClaimStart(ctx.UserContext(), common.NewAddress(req.Caller), time.Unix(req.ClaimStart, 0))
	if err != nil {
		return mapDomainError(err)
	}
	return adminOk(ctx)
}

func (h *HttpHandler) Pause(ctx *fiber.Ctx) error {
	var req adminRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Pause(ctx.UserContext(), common.NewAddress(req.Caller)); err != nil {
		return mapDomainError(err)
	}
	return adminOk(ctx)
}

func (h *HttpHandler) Unpause(ctx *fiber.Ctx) error {
	var req adminRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.usecase.Unpause(ctx.UserContext(), common.NewAddress(req.Caller)); err != nil {
		return mapDomainError(err)
	}
	return adminOk(ctx)
}
