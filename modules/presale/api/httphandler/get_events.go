package httphandler

import (
	"github.com/asi-network/presale-engine/modules/presale/internal/entity"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	paginationRequest
}

type getEventsResult struct {
	List []saleEventResponse `json:"list"`
}

type getEventsResponse = HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) error {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	events, err := h.usecase.GetEvents(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetEvents")
	}

	return errors.WithStack(ctx.JSON(getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(events, func(event *entity.SaleEvent, _ int) saleEventResponse {
				return h.newSaleEventResponse(event)
			}),
		},
	}))
}
