package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/tokensale/v1")

	r.Get("/info", h.GetInfo)
	r.Get("/events", h.GetEvents)
	r.Get("/calls/:address", h.GetCalls)

	// contract state only exists in a process that replays the journal
	if h.contracts == nil {
		return nil
	}
	r.Get("/crowdsale", h.GetCrowdsale)
	r.Post("/crowdsale/contributions/batch", h.GetContributionsBatch)
	r.Get("/crowdsale/contributions/:address", h.GetContribution)
	r.Get("/timelocks", h.GetTimelocks)
	r.Get("/timelocks/:address", h.GetTimelock)
	r.Get("/balances/:address", h.GetBalances)
	return nil
}
