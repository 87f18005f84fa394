// Package ledger defines the balance capabilities the sale engines consume.
package ledger

import (
	"context"

	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

// Ledger is a token balance book with allowances, a pause flag and a whitelist.
//
// Reads return copies. Mutations are atomic: a failed call changes nothing.
type Ledger interface {
	BalanceOf(addr ethcommon.Address) *uint256.Int
	Allowance(owner, spender ethcommon.Address) *uint256.Int

	// Transfer moves amount from the caller's own balance.
	Transfer(ctx context.Context, from, to ethcommon.Address, amount *uint256.Int) error

	// TransferFrom moves amount out of from's balance against the allowance granted to spender.
	TransferFrom(ctx context.Context, spender, from, to ethcommon.Address, amount *uint256.Int) error

	IsWhitelisted(addr ethcommon.Address) bool
	IsPaused() bool
}

// Funds is the native currency book that receives raised contributions.
//
// Transfer must succeed once BalanceOf(from) covers amount and to is not the zero address.
type Funds interface {
	BalanceOf(addr ethcommon.Address) *uint256.Int
	Transfer(ctx context.Context, from, to ethcommon.Address, amount *uint256.Int) error
}
