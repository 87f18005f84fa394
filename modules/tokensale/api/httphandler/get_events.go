package httphandler

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gofiber/fiber/v2"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/samber/lo"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

func validatePagination(limit, offset int32) []error {
	var errList []error
	if limit < 0 {
		errList = append(errList, errors.New("'limit' must be non-negative"))
	}
	if limit > maxLimit {
		errList = append(errList, errors.Errorf("'limit' cannot exceed %d", maxLimit))
	}
	if offset < 0 {
		errList = append(errList, errors.New("'offset' must be non-negative"))
	}
	return errList
}

func limitOrDefault(limit int32) int32 {
	if limit == 0 {
		return defaultLimit
	}
	return limit
}

type getEventsRequest struct {
	Name   string `query:"name"`
	Source string `query:"source"`
	Limit  int32  `query:"limit"`
	Offset int32  `query:"offset"`
}

func (r getEventsRequest) Validate() error {
	errList := validatePagination(r.Limit, r.Offset)
	if r.Source != "" && !ethcommon.IsHexAddress(r.Source) {
		errList = append(errList, errors.New("'source' is not a valid address"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type eventResult struct {
	BlockHeight int64           `json:"blockHeight"`
	CallIndex   int32           `json:"callIndex"`
	Index       int32           `json:"index"`
	Source      string          `json:"source"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload"`
	Timestamp   time.Time       `json:"timestamp"`
}

type getEventsResult struct {
	List []eventResult `json:"list"`
}

type getEventsResponse = HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	params := datagateway.GetEventsParams{
		Name:   req.Name,
		Limit:  limitOrDefault(req.Limit),
		Offset: req.Offset,
	}
	if req.Source != "" {
		params.Source = lo.ToPtr(ethcommon.HexToAddress(req.Source))
	}
	events, err := h.tokenSaleDg.GetEvents(ctx.UserContext(), params)
	if err != nil {
		return errors.Wrap(err, "error during GetEvents")
	}

	resp := getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(events, func(e entity.Event, _ int) eventResult {
				return eventResult{
					BlockHeight: e.BlockHeight,
					CallIndex:   e.CallIndex,
					Index:       e.Index,
					Source:      e.Source.Hex(),
					Name:        e.Name,
					Payload:     e.Payload,
					Timestamp:   e.Timestamp,
				}
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
