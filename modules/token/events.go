package token

import (
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type Transfer struct {
	From  ethcommon.Address `json:"from"`
	To    ethcommon.Address `json:"to"`
	Value *uint256.Int      `json:"value"`
}

func (Transfer) EventName() string { return "Transfer" }

// Approval carries the allowance after the change.
type Approval struct {
	Owner   ethcommon.Address `json:"owner"`
	Spender ethcommon.Address `json:"spender"`
	Value   *uint256.Int      `json:"value"`
}

func (Approval) EventName() string { return "Approval" }

type TransferOpened struct{}

func (TransferOpened) EventName() string { return "TransferOpened" }
