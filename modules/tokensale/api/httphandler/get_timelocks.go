package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/modules/timelock"
	"github.com/gofiber/fiber/v2"
)

type timelockStatus struct {
	Address     string     `json:"address"`
	Owner       string     `json:"owner"`
	Beneficiary string     `json:"beneficiary"`
	Activated   bool       `json:"activated"`
	StartTime   *time.Time `json:"startTime"`
	Locked      amount     `json:"locked"`
	Released    amount     `json:"released"`
	Vested      amount     `json:"vested"`
	Releasable  amount     `json:"releasable"`
	NextUnlock  *time.Time `json:"nextUnlock"`
}

func newTimelockStatus(s timelock.Status) timelockStatus {
	result := timelockStatus{
		Address:     s.Address.Hex(),
		Owner:       s.Owner.Hex(),
		Beneficiary: s.Beneficiary.Hex(),
		Activated:   s.Activated,
		Locked:      newEtherAmount(s.Locked),
		Released:    newEtherAmount(s.Released),
		Vested:      newEtherAmount(s.Vested),
		Releasable:  newEtherAmount(s.Releasable),
		NextUnlock:  s.NextUnlock,
	}
	if s.Activated {
		startTime := s.StartTime
		result.StartTime = &startTime
	}
	return result
}

type getTimelocksResult struct {
	List []timelockStatus `json:"list"`
}

type getTimelocksResponse = HttpResponse[getTimelocksResult]

func (h *HttpHandler) GetTimelocks(ctx *fiber.Ctx) (err error) {
	c := h.contracts.Contracts()
	addrs := c.TimelockAddresses()
	list := make([]timelockStatus, 0, len(addrs))
	for _, addr := range addrs {
		status, err := c.Timelocks[addr].Status()
		if err != nil {
			return errors.Wrapf(err, "error during Status of %s", addr)
		}
		list = append(list, newTimelockStatus(status))
	}
	return errors.WithStack(ctx.JSON(getTimelocksResponse{Result: &getTimelocksResult{List: list}}))
}

type getTimelockResponse = HttpResponse[timelockStatus]

func (h *HttpHandler) GetTimelock(ctx *fiber.Ctx) (err error) {
	addr, err := parseAddress("address", ctx.Params("address"))
	if err != nil {
		return errors.WithStack(err)
	}
	lock, ok := h.contracts.Contracts().Timelocks[addr]
	if !ok {
		return errors.Wrapf(errs.NotFound, "timelock %s", addr)
	}
	status, err := lock.Status()
	if err != nil {
		return errors.Wrap(err, "error during Status")
	}
	result := newTimelockStatus(status)
	return errors.WithStack(ctx.JSON(getTimelockResponse{Result: &result}))
}
