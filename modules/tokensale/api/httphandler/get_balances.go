package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getBalancesResult struct {
	Address string `json:"address"`
	Token   amount `json:"token"`
	Coin    amount `json:"coin"`
}

type getBalancesResponse = HttpResponse[getBalancesResult]

func (h *HttpHandler) GetBalances(ctx *fiber.Ctx) (err error) {
	addr, err := parseAddress("address", ctx.Params("address"))
	if err != nil {
		return errors.WithStack(err)
	}

	c := h.contracts.Contracts()
	resp := getBalancesResponse{
		Result: &getBalancesResult{
			Address: addr.Hex(),
			Token:   newAmount(c.Token.BalanceOf(addr), uint16(c.Token.Decimals())),
			Coin:    newEtherAmount(c.Coin.BalanceOf(addr)),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
