package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/presale")

	r.Get("/status", h.GetStatus)
	r.Get("/price", h.GetCurrentPrice)
	r.Get("/quote", h.GetQuote)
	r.Get("/purchases", h.GetPurchases)
	r.Get("/events", h.GetEvents)
	r.Get("/position/:wallet", h.GetPosition)

	r.Post("/buy", h.Buy)
	r.Post("/claim", h.Claim)

	r.Post("/admin/sale-window", h.ConfigureSaleWindow)
	r.Post("/admin/claim-window", h.ConfigureClaim)
	r.Post("/admin/claim-window/start", h.ReconfigureClaimStart)
	r.Post("/admin/pause", h.Pause)
	r.Post("/admin/unpause", h.Unpause)
	return nil
}
