package httphandler

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gofiber/fiber/v2"
	ethcommon "github.com/luxfi/geth/common"
	"golang.org/x/sync/errgroup"
)

type getContributionsBatchRequest struct {
	Addresses []string `json:"addresses"`
}

const getContributionsBatchMaxQueries = 100

func (r getContributionsBatchRequest) Validate() error {
	var errList []error
	if len(r.Addresses) == 0 {
		errList = append(errList, errors.New("at least one address is required"))
	}
	if len(r.Addresses) > getContributionsBatchMaxQueries {
		errList = append(errList, errors.Errorf("cannot exceed %d addresses", getContributionsBatchMaxQueries))
	}
	for i, address := range r.Addresses {
		if !ethcommon.IsHexAddress(address) {
			errList = append(errList, errors.Errorf("addresses[%d]: %q is not a valid address", i, address))
		}
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getContributionsBatchResult struct {
	List []contribution `json:"list"`
}

type getContributionsBatchResponse = HttpResponse[getContributionsBatchResult]

func (h *HttpHandler) GetContributionsBatch(ctx *fiber.Ctx) (err error) {
	var req getContributionsBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	c := h.contracts.Contracts()
	processQuery := func(ctx context.Context, address string) (contribution, error) {
		if err := ctx.Err(); err != nil {
			return contribution{}, errors.WithStack(err)
		}
		return newContribution(c, ethcommon.HexToAddress(address)), nil
	}

	results := make([]contribution, len(req.Addresses))
	eg, ectx := errgroup.WithContext(ctx.UserContext())
	for i, address := range req.Addresses {
		eg.Go(func() error {
			result, err := processQuery(ectx, address)
			if err != nil {
				return errors.Wrapf(err, "error during processQuery for address %d", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return errors.WithStack(err)
	}

	resp := getContributionsBatchResponse{
		Result: &getContributionsBatchResult{
			List: results,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
