package httphandler

import (
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/common/errs"
	"github.com/asi-network/presale-engine/modules/presale/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getQuoteRequest struct {
	Amount  uint64             `query:"amount"`
	Payment common.PaymentKind `query:"payment"`
}

func (req getQuoteRequest) Validate() error {
	var errList []error
	if req.Amount == 0 {
		errList = append(errList, errors.New("'amount' must be positive"))
	}
	if req.Payment != "" && !req.Payment.IsValid() {
		errList = append(errList, errors.Errorf("invalid payment kind: %s", req.Payment))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (req *getQuoteRequest) ParseDefault() error {
	if req.Payment == "" {
		req.Payment = common.PaymentToken
	}
	return nil
}

type getQuoteResult struct {
	TokenAmount       uint64  `json:"tokenAmount"`
	PaymentTokenPrice *amount `json:"paymentTokenPrice"`
	NativePrice       *amount `json:"nativePrice,omitempty"`
}

type getQuoteResponse = HttpResponse[getQuoteResult]

func (h *HttpHandler) GetQuote(ctx *fiber.Ctx) error {
	var req getQuoteRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	var (
		quote usecase.Quote
		err   error
	)
	switch req.Payment {
	case common.PaymentNative:
		quote, err = h.usecase.QuoteNativePrice(ctx.UserContext(), req.Amount)
	case common.PaymentToken:
		quote, err = h.usecase.QuotePaymentTokenPrice(req.Amount)
	default:
		panic("invalid payment kind")
	}
	if err != nil {
		return mapDomainError(err)
	}

	return errors.WithStack(ctx.JSON(getQuoteResponse{
		Result: &getQuoteResult{
			TokenAmount:       quote.TokenAmount,
			PaymentTokenPrice: newAmount(quote.PaymentTokenPrice, h.paymentTokenDecimals),
			NativePrice:       newAmount(quote.NativePrice, h.nativeDecimals),
		},
	}))
}
