package token

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/core/ledger"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

var _ ledger.Funds = (*Coin)(nil)

// Coin is the native currency book. It has no owner, allowances or pause.
type Coin struct {
	mu       sync.RWMutex
	balances map[ethcommon.Address]*uint256.Int
	emitter  event.Emitter
}

// NewCoin credits the genesis balances without emitting events.
func NewCoin(genesis map[ethcommon.Address]*uint256.Int, emitter event.Emitter) *Coin {
	balances := make(map[ethcommon.Address]*uint256.Int, len(genesis))
	for addr, amount := range genesis {
		balances[addr] = new(uint256.Int).Set(amount)
	}
	return &Coin{balances: balances, emitter: emitter}
}

func (c *Coin) BalanceOf(addr ethcommon.Address) *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if b, ok := c.balances[addr]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

func (c *Coin) Transfer(ctx context.Context, from, to ethcommon.Address, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if to == (ethcommon.Address{}) {
		return errors.Wrap(errs.InvalidRecipient, "recipient is the zero address")
	}
	balance, ok := c.balances[from]
	if !ok {
		balance = new(uint256.Int)
	}
	if amount.Gt(balance) {
		return errors.Wrapf(errs.InsufficientBalance, "balance %s of %s is below %s", balance, from, amount)
	}
	if from == to {
		c.emitter.Emit(ctx, Transfer{From: from, To: to, Value: new(uint256.Int).Set(amount)})
		return nil
	}
	current, ok := c.balances[to]
	if !ok {
		current = new(uint256.Int)
	}
	credited, overflow := new(uint256.Int).AddOverflow(current, amount)
	if overflow {
		return errors.Wrap(errs.Overflow, "recipient balance")
	}

	c.balances[from] = new(uint256.Int).Sub(balance, amount)
	c.balances[to] = credited
	c.emitter.Emit(ctx, Transfer{From: from, To: to, Value: new(uint256.Int).Set(amount)})
	return nil
}
