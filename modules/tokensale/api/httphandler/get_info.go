package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getInfoResult struct {
	Height    int64     `json:"height"`
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
}

type getInfoResponse = HttpResponse[getInfoResult]

func (h *HttpHandler) GetInfo(ctx *fiber.Ctx) (err error) {
	block, err := h.tokenSaleDg.GetLatestBlock(ctx.UserContext())
	if err != nil {
		return errors.Wrap(err, "error during GetLatestBlock")
	}

	resp := getInfoResponse{
		Result: &getInfoResult{
			Height:    block.Height,
			Hash:      block.Hash.Hex(),
			Timestamp: block.Timestamp,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
