package crowdsale

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type Config struct {
	// Address is the crowdsale's own account, used as the spender of the token wallet's allowance.
	Address         ethcommon.Address
	Owner           ethcommon.Address
	Rate            *uint256.Int
	Wallet          ethcommon.Address
	TokenWallet     ethcommon.Address
	OpeningTime     time.Time
	ClosingTime     time.Time
	InitialMaxCap   *uint256.Int
	MinContribution *uint256.Int
	MaxGasPrice     *uint256.Int
	Whitelist       []ethcommon.Address
}

func (c Config) Validate() error {
	switch {
	case c.Address == (ethcommon.Address{}):
		return errors.Wrap(errs.InvalidArgument, "crowdsale address is required")
	case c.Owner == (ethcommon.Address{}):
		return errors.Wrap(errs.InvalidArgument, "owner is required")
	case c.Wallet == (ethcommon.Address{}):
		return errors.Wrap(errs.InvalidArgument, "wallet is required")
	case c.TokenWallet == (ethcommon.Address{}):
		return errors.Wrap(errs.InvalidArgument, "token wallet is required")
	case c.Rate == nil || c.Rate.IsZero():
		return errors.Wrap(errs.InvalidArgument, "rate must be positive")
	case !c.OpeningTime.Before(c.ClosingTime):
		return errors.Wrap(errs.InvalidArgument, "opening time must be before closing time")
	case c.InitialMaxCap == nil:
		return errors.Wrap(errs.InvalidArgument, "initial max cap is required")
	case c.MaxGasPrice == nil:
		return errors.Wrap(errs.InvalidArgument, "max gas price is required")
	}
	return nil
}
