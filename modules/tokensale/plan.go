package tokensale

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/modules/crowdsale"
	"github.com/gaze-network/tokensale/modules/timelock"
	"github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/contracts"
)

// SalePlan is the configured sale laid out before any call is replayed.
type SalePlan struct {
	Crowdsale crowdsale.Snapshot
	Stages    []crowdsale.StageWindow
	Tranches  []timelock.Tranche
	Timelocks []timelock.Status
}

func NewSalePlan(ctx context.Context, conf config.Config) (SalePlan, error) {
	c, err := contracts.New(ctx, conf)
	if err != nil {
		return SalePlan{}, errors.WithStack(err)
	}

	snapshot := c.Crowdsale.Snapshot()
	stages, err := crowdsale.Schedule(snapshot.OpeningTime, snapshot.ClosingTime, snapshot.InitialMaxCap)
	if err != nil {
		return SalePlan{}, errors.Wrap(err, "can't lay out stages")
	}

	plan := SalePlan{
		Crowdsale: snapshot,
		Stages:    stages,
		Tranches:  timelock.Tranches,
		Timelocks: make([]timelock.Status, 0, len(c.Timelocks)),
	}
	for _, addr := range c.TimelockAddresses() {
		status, err := c.Timelocks[addr].Status()
		if err != nil {
			return SalePlan{}, errors.Wrapf(err, "timelock %s", addr)
		}
		plan.Timelocks = append(plan.Timelocks, status)
	}
	return plan, nil
}
