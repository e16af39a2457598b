package httphandler

import (
	"github.com/asi-network/presale-engine/common"
	"github.com/asi-network/presale-engine/modules/presale/usecase"
)

type HttpResponse[T any] = common.HttpResponse[T]

type HttpHandler struct {
	usecase *usecase.Usecase
	// decimal precisions used to render human-readable amounts
	paymentTokenDecimals uint8
	nativeDecimals       uint8
}

func New(usecase *usecase.Usecase, paymentTokenDecimals, nativeDecimals uint8) *HttpHandler {
	return &HttpHandler{
		usecase:              usecase,
		paymentTokenDecimals: paymentTokenDecimals,
		nativeDecimals:       nativeDecimals,
	}
}
