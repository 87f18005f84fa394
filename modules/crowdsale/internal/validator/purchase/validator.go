package purchasevalidator

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/modules/crowdsale/internal/validator"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type PurchaseValidator struct {
	validator.Validator
}

func New() *PurchaseValidator {
	v := validator.New()
	return &PurchaseValidator{
		Validator: *v,
	}
}

func (v *PurchaseValidator) NotPaused(paused bool) bool {
	if !v.Valid {
		return false
	}
	if paused {
		return v.Fail(errors.Wrap(errs.PausedState, "crowdsale is paused"))
	}
	return v.Valid
}

func (v *PurchaseValidator) WithinWindow(now, openingTime, closingTime time.Time) bool {
	if !v.Valid {
		return false
	}
	if now.Before(openingTime) || now.After(closingTime) {
		return v.Fail(errors.Wrapf(errs.PhaseViolation, "%s is outside the sale window [%s, %s]",
			now.Format(time.RFC3339), openingTime.Format(time.RFC3339), closingTime.Format(time.RFC3339)))
	}
	return v.Valid
}

func (v *PurchaseValidator) Whitelisted(whitelisted bool, beneficiary ethcommon.Address) bool {
	if !v.Valid {
		return false
	}
	if !whitelisted {
		return v.Fail(errors.Wrapf(errs.NotWhitelisted, "beneficiary %s", beneficiary))
	}
	return v.Valid
}

func (v *PurchaseValidator) AboveMinimum(value, minContribution *uint256.Int) bool {
	if !v.Valid {
		return false
	}
	if value.Lt(minContribution) {
		return v.Fail(errors.Wrapf(errs.BelowMinimum, "value %s is below %s", value, minContribution))
	}
	return v.Valid
}

func (v *PurchaseValidator) GasPriceAllowed(gasPrice, maxGasPrice *uint256.Int) bool {
	if !v.Valid {
		return false
	}
	if gasPrice.Gt(maxGasPrice) {
		return v.Fail(errors.Wrapf(errs.GasPriceExceeded, "gas price %s is above %s", gasPrice, maxGasPrice))
	}
	return v.Valid
}

// WithinCap checks contribution + value <= maxCap.
func (v *PurchaseValidator) WithinCap(contribution, value, maxCap *uint256.Int) bool {
	if !v.Valid {
		return false
	}
	total, overflow := new(uint256.Int).AddOverflow(contribution, value)
	if overflow || total.Gt(maxCap) {
		return v.Fail(errors.Wrapf(errs.CapExceeded, "contribution %s plus %s is above cap %s", contribution, value, maxCap))
	}
	return v.Valid
}
