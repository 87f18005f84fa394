package access

import ethcommon "github.com/luxfi/geth/common"

type OwnershipTransferred struct {
	PreviousOwner ethcommon.Address `json:"previousOwner"`
	NewOwner      ethcommon.Address `json:"newOwner"`
}

func (OwnershipTransferred) EventName() string { return "OwnershipTransferred" }

type OwnershipRenounced struct {
	PreviousOwner ethcommon.Address `json:"previousOwner"`
}

func (OwnershipRenounced) EventName() string { return "OwnershipRenounced" }

type Pause struct{}

func (Pause) EventName() string { return "Pause" }

type Unpause struct{}

func (Unpause) EventName() string { return "Unpause" }

type WhitelistAdded struct {
	Address ethcommon.Address `json:"address"`
}

func (WhitelistAdded) EventName() string { return "WhitelistAdded" }

type WhitelistRemoved struct {
	Address ethcommon.Address `json:"address"`
}

func (WhitelistRemoved) EventName() string { return "WhitelistRemoved" }
