package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/contracts"
	"github.com/gofiber/fiber/v2"
	ethcommon "github.com/luxfi/geth/common"
)

type contribution struct {
	Address     string `json:"address"`
	Whitelisted bool   `json:"whitelisted"`
	Contributed amount `json:"contributed"`

	// Remaining is how much more the address may contribute in the current stage. Nil outside the sale window.
	Remaining *amount `json:"remaining"`
}

type getContributionResponse = HttpResponse[contribution]

func newContribution(c *contracts.Contracts, addr ethcommon.Address) contribution {
	sale := c.Crowdsale
	contributed := sale.UserContribution(addr)
	result := contribution{
		Address:     addr.Hex(),
		Whitelisted: sale.IsWhitelisted(addr),
		Contributed: newEtherAmount(contributed),
	}
	if maxCap, err := sale.CurrentMaxCap(); err == nil {
		remaining := maxCap.Clone()
		if contributed.Gt(maxCap) {
			remaining.Clear()
		} else {
			remaining.Sub(remaining, contributed)
		}
		r := newEtherAmount(remaining)
		result.Remaining = &r
	}
	return result
}

func (h *HttpHandler) GetContribution(ctx *fiber.Ctx) (err error) {
	addr, err := parseAddress("address", ctx.Params("address"))
	if err != nil {
		return errors.WithStack(err)
	}

	result := newContribution(h.contracts.Contracts(), addr)
	return errors.WithStack(ctx.JSON(getContributionResponse{Result: &result}))
}
