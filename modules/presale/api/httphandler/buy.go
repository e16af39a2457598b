package httphandler

import (
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
)

type buyRequest struct {
	Wallet  string             `json:"wallet"`
	Amount  uint64             `json:"amount"`
	Payment common.PaymentKind `json:"payment"`
	// Attached is the native value sent along with a native purchase, in
	// smallest units, as a decimal string.
	Attached string `json:"attached"`
}

func (req buyRequest) Validate() error {
	var errList []error
	if common.NewAddress(req.Wallet).IsZero() {
		errList = append(errList, errors.New("'wallet' is required"))
	}
	if req.Amount == 0 {
		errList = append(errList, errors.New("'amount' must be positive"))
	}
	if !req.Payment.IsValid() {
		errList = append(errList, errors.Errorf("invalid payment kind: %s", req.Payment))
	}
	if req.Payment == common.PaymentNative {
		if req.Attached == "" {
			errList = append(errList, errors.New("'attached' is required for native purchases"))
		} else if _, err := uint256.FromDecimal(req.Attached); err != nil {
			errList = append(errList, errors.New("'attached' must be a decimal integer"))
		}
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type buyResponse = HttpResponse[purchaseResponse]

func (h *HttpHandler) Buy(ctx *fiber.Ctx) error {
	var req buyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	buyer := common.NewAddress(req.Wallet)
	switch req.Payment {
	case common.PaymentNative:
		attached, err := uint256.FromDecimal(req.Attached)
		if err != nil {
			return errors.WithStack(err)
		}
		purchase, err := h.usecase.BuyWithNative(ctx.UserContext(), buyer, req.Amount, attached)
		if err != nil {
			return mapDomainError(err)
		}
		result := h.newPurchaseResponse(purchase)
		return errors.WithStack(ctx.JSON(buyResponse{Result: &result}))
	case common.PaymentToken:
		purchase, err := h.usecase.BuyWithPaymentToken(ctx.UserContext(), buyer, req.Amount)
		if err != nil {
			return mapDomainError(err)
		}
		result := h.newPurchaseResponse(purchase)
		return errors.WithStack(ctx.JSON(buyResponse{Result: &result}))
	default:
		panic("invalid payment kind")
	}
}
