package crowdsale

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

func (c *Crowdsale) SetRate(ctx context.Context, caller ethcommon.Address, rate *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	if !c.beforeOpening() {
		return errors.Wrap(errs.PhaseViolation, "rate is fixed once the sale opens")
	}
	if rate == nil || rate.IsZero() {
		return errors.Wrap(errs.InvalidArgument, "rate must be positive")
	}
	c.rate = new(uint256.Int).Set(rate)
	return nil
}

func (c *Crowdsale) SetInitialMaxCap(ctx context.Context, caller ethcommon.Address, maxCap *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	if !c.beforeOpening() {
		return errors.Wrap(errs.PhaseViolation, "initial max cap is fixed once the sale opens")
	}
	if maxCap == nil {
		return errors.Wrap(errs.InvalidArgument, "max cap is required")
	}
	c.initialMaxCap = new(uint256.Int).Set(maxCap)
	return nil
}

func (c *Crowdsale) AddAddressToWhitelist(ctx context.Context, caller, addr ethcommon.Address) error {
	return c.AddAddressesToWhitelist(ctx, caller, []ethcommon.Address{addr})
}

func (c *Crowdsale) AddAddressesToWhitelist(ctx context.Context, caller ethcommon.Address, addrs []ethcommon.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	c.whitelist.Add(ctx, addrs...)
	return nil
}

func (c *Crowdsale) RemoveAddressFromWhitelist(ctx context.Context, caller, addr ethcommon.Address) error {
	return c.RemoveAddressesFromWhitelist(ctx, caller, []ethcommon.Address{addr})
}

func (c *Crowdsale) RemoveAddressesFromWhitelist(ctx context.Context, caller ethcommon.Address, addrs []ethcommon.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	c.whitelist.Remove(ctx, addrs...)
	return nil
}

func (c *Crowdsale) Pause(ctx context.Context, caller ethcommon.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.pausable.Pause(ctx))
}

func (c *Crowdsale) Unpause(ctx context.Context, caller ethcommon.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(c.pausable.Unpause(ctx))
}

func (c *Crowdsale) TransferOwnership(ctx context.Context, caller, newOwner ethcommon.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.WithStack(c.ownable.TransferOwnership(ctx, caller, newOwner))
}

func (c *Crowdsale) RenounceOwnership(ctx context.Context, caller ethcommon.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return errors.WithStack(c.ownable.RenounceOwnership(ctx, caller))
}
