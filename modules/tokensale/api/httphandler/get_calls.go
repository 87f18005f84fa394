package httphandler

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getCallsRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

func (r getCallsRequest) Validate() error {
	return errs.WithPublicMessage(errors.Join(validatePagination(r.Limit, r.Offset)...), "validation error")
}

type callResult struct {
	BlockHeight  int64             `json:"blockHeight"`
	Index        int32             `json:"index"`
	Hash         string            `json:"hash"`
	From         string            `json:"from"`
	To           string            `json:"to"`
	Contract     string            `json:"contract"`
	Method       string            `json:"method"`
	Value        amount            `json:"value"`
	Args         json.RawMessage   `json:"args"`
	Status       entity.CallStatus `json:"status"`
	ErrorCode    string            `json:"errorCode,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

type getCallsResult struct {
	List []callResult `json:"list"`
}

type getCallsResponse = HttpResponse[getCallsResult]

func (h *HttpHandler) GetCalls(ctx *fiber.Ctx) (err error) {
	addr, err := parseAddress("address", ctx.Params("address"))
	if err != nil {
		return errors.WithStack(err)
	}
	var req getCallsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	calls, err := h.tokenSaleDg.GetCallsByFrom(ctx.UserContext(), datagateway.GetCallsByFromParams{
		From:   addr,
		Limit:  limitOrDefault(req.Limit),
		Offset: req.Offset,
	})
	if err != nil {
		return errors.Wrap(err, "error during GetCallsByFrom")
	}

	resp := getCallsResponse{
		Result: &getCallsResult{
			List: lo.Map(calls, func(c entity.Call, _ int) callResult {
				return callResult{
					BlockHeight:  c.BlockHeight,
					Index:        c.Index,
					Hash:         c.Hash.Hex(),
					From:         c.From.Hex(),
					To:           c.To.Hex(),
					Contract:     c.Contract,
					Method:       c.Method,
					Value:        newEtherAmount(c.Value),
					Args:         c.Args,
					Status:       c.Status,
					ErrorCode:    c.ErrorCode,
					ErrorMessage: c.ErrorMessage,
					Timestamp:    c.Timestamp,
				}
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
