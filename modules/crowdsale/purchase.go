package crowdsale

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	purchasevalidator "github.com/gaze-network/tokensale/modules/crowdsale/internal/validator/purchase"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

// BuyTokens pays value from purchaser and sends value*rate tokens to beneficiary.
// A rejected purchase leaves every balance, allowance and contribution unchanged.
// Funds is only charged after its BalanceOf covers value, so a Funds.Transfer
// failure after token delivery breaks the Funds contract and is reported as
// InternalError with the tokens already moved. Contributions and raised stay unchanged.
func (c *Crowdsale) BuyTokens(ctx context.Context, purchaser, beneficiary ethcommon.Address, value, gasPrice *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	contribution := c.contributionOf(beneficiary)

	validator := purchasevalidator.New()
	validator.NotPaused(c.pausable.Paused())
	validator.WithinWindow(now, c.openingTime, c.closingTime)
	validator.Whitelisted(c.whitelist.Contains(beneficiary), beneficiary)
	validator.AboveMinimum(value, c.minContribution)
	validator.GasPriceAllowed(gasPrice, c.maxGasPrice)
	if validator.Valid {
		maxCap, err := c.currentMaxCap(now)
		if err != nil {
			return errors.WithStack(err)
		}
		validator.WithinCap(contribution, value, maxCap)
	}
	if !validator.Valid {
		logger.DebugContext(ctx, "rejected token purchase",
			slogx.Stringer("purchaser", purchaser),
			slogx.Stringer("beneficiary", beneficiary),
			slogx.Error(validator.Err),
		)
		return errors.WithStack(validator.Err)
	}

	amount, overflow := new(uint256.Int).MulOverflow(value, c.rate)
	if overflow {
		return errors.Wrap(errs.Overflow, "token amount")
	}
	raised, overflow := new(uint256.Int).AddOverflow(c.raised, value)
	if overflow {
		return errors.Wrap(errs.Overflow, "raised")
	}
	if balance := c.funds.BalanceOf(purchaser); value.Gt(balance) {
		return errors.Wrapf(errs.InsufficientBalance, "purchaser %s holds %s, needs %s", purchaser, balance, value)
	}

	if err := c.token.TransferFrom(ctx, c.address, c.tokenWallet, beneficiary, amount); err != nil {
		return errors.Wrap(err, "deliver tokens")
	}
	// balance checked above, calls are serialized
	if err := c.funds.Transfer(ctx, purchaser, c.wallet, value); err != nil {
		return errors.Wrapf(errs.InternalError, "forward funds after token delivery: %v", err)
	}

	c.contributions[beneficiary] = new(uint256.Int).Add(contribution, value)
	c.raised = raised
	c.emitter.Emit(ctx, TokenPurchase{
		Purchaser:   purchaser,
		Beneficiary: beneficiary,
		Value:       new(uint256.Int).Set(value),
		Amount:      amount,
	})
	return nil
}

// Receive handles a plain value transfer to the crowdsale as a purchase for the sender.
func (c *Crowdsale) Receive(ctx context.Context, sender ethcommon.Address, value, gasPrice *uint256.Int) error {
	return errors.WithStack(c.BuyTokens(ctx, sender, sender, value, gasPrice))
}
