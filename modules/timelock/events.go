package timelock

import (
	"time"

	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type Activate struct {
	StartTime time.Time `json:"startTime"`
}

func (Activate) EventName() string { return "Activate" }

type ResetBeneficiary struct {
	Beneficiary ethcommon.Address `json:"beneficiary"`
}

func (ResetBeneficiary) EventName() string { return "ResetBeneficiary" }

type NewRelease struct {
	Beneficiary ethcommon.Address `json:"beneficiary"`
	Amount      *uint256.Int      `json:"amount"`
}

func (NewRelease) EventName() string { return "NewRelease" }

// ZeroReleasableAmount is emitted by a release that had nothing to pay out.
type ZeroReleasableAmount struct{}

func (ZeroReleasableAmount) EventName() string { return "ZeroReleasableAmount" }
