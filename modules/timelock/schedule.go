package timelock

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
)

const day = 24 * time.Hour

// Tranche unlocks Thirds/3 of the total once Offset has elapsed since the start time.
type Tranche struct {
	Offset time.Duration
	Thirds uint64
}

var Tranches = []Tranche{
	{Offset: 90 * day, Thirds: 1},
	{Offset: 270 * day, Thirds: 2},
	{Offset: 360 * day, Thirds: 3},
}

// VestedAmount returns how much of total is unlocked at now.
func VestedAmount(total *uint256.Int, startTime, now time.Time) (*uint256.Int, error) {
	var thirds uint64
	for _, tranche := range Tranches {
		if now.Before(startTime.Add(tranche.Offset)) {
			break
		}
		thirds = tranche.Thirds
	}
	switch thirds {
	case 0:
		return new(uint256.Int), nil
	case 3:
		return new(uint256.Int).Set(total), nil
	}
	vested, overflow := new(uint256.Int).MulDivOverflow(total, uint256.NewInt(thirds), uint256.NewInt(3))
	if overflow {
		return nil, errors.Wrap(errs.Overflow, "vested amount")
	}
	return vested, nil
}

// NextUnlock returns the first tranche boundary after now, or false once fully vested.
func NextUnlock(startTime, now time.Time) (time.Time, bool) {
	for _, tranche := range Tranches {
		if at := startTime.Add(tranche.Offset); now.Before(at) {
			return at, true
		}
	}
	return time.Time{}, false
}
