// Package token implements the reference ledgers the sale engines run against:
// a pausable, whitelisted token with allowances, and a plain native coin book.
package token

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/access"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/core/ledger"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

var _ ledger.Ledger = (*Token)(nil)

type Config struct {
	// Address is the token's own account. Transfers to it are rejected.
	Address     ethcommon.Address
	Owner       ethcommon.Address
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *uint256.Int

	// Whitelist may transfer before OpenTransfer.
	Whitelist []ethcommon.Address
}

type Token struct {
	mu sync.RWMutex

	address     ethcommon.Address
	name        string
	symbol      string
	decimals    uint8
	totalSupply *uint256.Int

	balances       map[ethcommon.Address]*uint256.Int
	allowed        map[ethcommon.Address]map[ethcommon.Address]*uint256.Int
	transferOpened bool

	ownable   *access.Ownable
	pausable  *access.Pausable
	whitelist *access.Whitelist
	emitter   event.Emitter
}

// New mints the total supply to the owner.
func New(ctx context.Context, cfg Config, emitter event.Emitter) (*Token, error) {
	if cfg.Owner == (ethcommon.Address{}) {
		return nil, errors.Wrap(errs.InvalidArgument, "owner is required")
	}
	if cfg.Address == (ethcommon.Address{}) {
		return nil, errors.Wrap(errs.InvalidArgument, "token address is required")
	}
	supply := new(uint256.Int)
	if cfg.TotalSupply != nil {
		supply.Set(cfg.TotalSupply)
	}

	t := &Token{
		address:     cfg.Address,
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		decimals:    cfg.Decimals,
		totalSupply: supply,
		balances:    map[ethcommon.Address]*uint256.Int{cfg.Owner: new(uint256.Int).Set(supply)},
		allowed:     make(map[ethcommon.Address]map[ethcommon.Address]*uint256.Int),
		ownable:     access.NewOwnable(cfg.Owner, emitter),
		pausable:    access.NewPausable(emitter),
		whitelist:   access.NewWhitelist(emitter, cfg.Whitelist...),
		emitter:     emitter,
	}
	emitter.Emit(ctx, Transfer{From: ethcommon.Address{}, To: cfg.Owner, Value: new(uint256.Int).Set(supply)})
	return t, nil
}

func (t *Token) Address() ethcommon.Address { return t.address }
func (t *Token) Name() string               { return t.name }
func (t *Token) Symbol() string             { return t.symbol }
func (t *Token) Decimals() uint8            { return t.decimals }

func (t *Token) TotalSupply() *uint256.Int {
	return new(uint256.Int).Set(t.totalSupply)
}

func (t *Token) Owner() ethcommon.Address {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ownable.Owner()
}

func (t *Token) TransferOpened() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.transferOpened
}

func (t *Token) IsPaused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pausable.Paused()
}

func (t *Token) IsWhitelisted(addr ethcommon.Address) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.whitelist.Contains(addr)
}

func (t *Token) BalanceOf(addr ethcommon.Address) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(uint256.Int).Set(t.balanceOf(addr))
}

func (t *Token) Allowance(owner, spender ethcommon.Address) *uint256.Int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return new(uint256.Int).Set(t.allowance(owner, spender))
}

func (t *Token) Transfer(ctx context.Context, from, to ethcommon.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.canTransfer(from); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(t.move(ctx, from, to, amount))
}

func (t *Token) TransferFrom(ctx context.Context, spender, from, to ethcommon.Address, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.canTransfer(spender); err != nil {
		return errors.WithStack(err)
	}
	allowance := t.allowance(from, spender)
	if amount.Gt(allowance) {
		return errors.Wrapf(errs.InsufficientAllowance, "allowance %s of %s is below %s", allowance, spender, amount)
	}
	if err := t.move(ctx, from, to, amount); err != nil {
		return errors.WithStack(err)
	}
	t.setAllowance(from, spender, new(uint256.Int).Sub(allowance, amount))
	return nil
}

func (t *Token) Approve(ctx context.Context, owner, spender ethcommon.Address, value *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.pausable.WhenNotPaused(); err != nil {
		return errors.WithStack(err)
	}
	t.approve(ctx, owner, spender, new(uint256.Int).Set(value))
	return nil
}

func (t *Token) IncreaseApproval(ctx context.Context, owner, spender ethcommon.Address, added *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.pausable.WhenNotPaused(); err != nil {
		return errors.WithStack(err)
	}
	next, overflow := new(uint256.Int).AddOverflow(t.allowance(owner, spender), added)
	if overflow {
		return errors.Wrap(errs.Overflow, "allowance")
	}
	t.approve(ctx, owner, spender, next)
	return nil
}

// DecreaseApproval lowers the allowance, flooring at zero.
func (t *Token) DecreaseApproval(ctx context.Context, owner, spender ethcommon.Address, subtracted *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.pausable.WhenNotPaused(); err != nil {
		return errors.WithStack(err)
	}
	next := new(uint256.Int)
	if current := t.allowance(owner, spender); current.Gt(subtracted) {
		next.Sub(current, subtracted)
	}
	t.approve(ctx, owner, spender, next)
	return nil
}

func (t *Token) OpenTransfer(ctx context.Context, caller ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	t.transferOpened = true
	t.emitter.Emit(ctx, TransferOpened{})
	return nil
}

func (t *Token) Pause(ctx context.Context, caller ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(t.pausable.Pause(ctx))
}

func (t *Token) Unpause(ctx context.Context, caller ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(t.pausable.Unpause(ctx))
}

func (t *Token) AddAddressesToWhitelist(ctx context.Context, caller ethcommon.Address, addrs ...ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	t.whitelist.Add(ctx, addrs...)
	return nil
}

func (t *Token) RemoveAddressesFromWhitelist(ctx context.Context, caller ethcommon.Address, addrs ...ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	t.whitelist.Remove(ctx, addrs...)
	return nil
}

func (t *Token) TransferOwnership(ctx context.Context, caller, newOwner ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return errors.WithStack(t.ownable.TransferOwnership(ctx, caller, newOwner))
}

func (t *Token) RenounceOwnership(ctx context.Context, caller ethcommon.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return errors.WithStack(t.ownable.RenounceOwnership(ctx, caller))
}

// canTransfer gates moves initiated by sender. Caller must hold the lock.
func (t *Token) canTransfer(sender ethcommon.Address) error {
	if err := t.pausable.WhenNotPaused(); err != nil {
		return errors.WithStack(err)
	}
	if t.transferOpened || sender == t.ownable.Owner() || t.whitelist.Contains(sender) {
		return nil
	}
	return errors.Wrapf(errs.TransferNotOpened, "sender %s", sender)
}

func (t *Token) move(ctx context.Context, from, to ethcommon.Address, amount *uint256.Int) error {
	if to == (ethcommon.Address{}) || to == t.address {
		return errors.Wrapf(errs.InvalidRecipient, "recipient %s", to)
	}
	balance := t.balanceOf(from)
	if amount.Gt(balance) {
		return errors.Wrapf(errs.InsufficientBalance, "balance %s of %s is below %s", balance, from, amount)
	}
	if from == to {
		t.emitter.Emit(ctx, Transfer{From: from, To: to, Value: new(uint256.Int).Set(amount)})
		return nil
	}
	credited, overflow := new(uint256.Int).AddOverflow(t.balanceOf(to), amount)
	if overflow {
		return errors.Wrap(errs.Overflow, "recipient balance")
	}

	t.balances[from] = new(uint256.Int).Sub(balance, amount)
	t.balances[to] = credited
	t.emitter.Emit(ctx, Transfer{From: from, To: to, Value: new(uint256.Int).Set(amount)})
	return nil
}

func (t *Token) approve(ctx context.Context, owner, spender ethcommon.Address, value *uint256.Int) {
	t.setAllowance(owner, spender, value)
	t.emitter.Emit(ctx, Approval{Owner: owner, Spender: spender, Value: new(uint256.Int).Set(value)})
}

func (t *Token) balanceOf(addr ethcommon.Address) *uint256.Int {
	if b, ok := t.balances[addr]; ok {
		return b
	}
	return new(uint256.Int)
}

func (t *Token) allowance(owner, spender ethcommon.Address) *uint256.Int {
	if a, ok := t.allowed[owner][spender]; ok {
		return a
	}
	return new(uint256.Int)
}

func (t *Token) setAllowance(owner, spender ethcommon.Address, value *uint256.Int) {
	spenders, ok := t.allowed[owner]
	if !ok {
		spenders = make(map[ethcommon.Address]*uint256.Int)
		t.allowed[owner] = spenders
	}
	spenders[spender] = value
}
