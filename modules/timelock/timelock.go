// Package timelock holds a deposited token balance and releases it to a
// beneficiary in three equal tranches after activation.
package timelock

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/access"
	"github.com/gaze-network/tokensale/core/clock"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/core/ledger"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type Config struct {
	// Address is the timelock's own account on the token ledger.
	Address     ethcommon.Address
	Owner       ethcommon.Address
	Beneficiary ethcommon.Address
}

type Timelock struct {
	mu sync.RWMutex

	address     ethcommon.Address
	beneficiary ethcommon.Address
	activated   bool
	startTime   time.Time
	released    *uint256.Int

	clock   clock.Clock
	token   ledger.Ledger
	ownable *access.Ownable
	emitter event.Emitter
}

func New(cfg Config, clk clock.Clock, token ledger.Ledger, emitter event.Emitter) (*Timelock, error) {
	switch {
	case cfg.Address == (ethcommon.Address{}):
		return nil, errors.Wrap(errs.InvalidArgument, "timelock address is required")
	case cfg.Owner == (ethcommon.Address{}):
		return nil, errors.Wrap(errs.InvalidArgument, "owner is required")
	case cfg.Beneficiary == (ethcommon.Address{}):
		return nil, errors.Wrap(errs.InvalidArgument, "beneficiary is required")
	case clk == nil || token == nil:
		return nil, errors.New("clock and token are required")
	}
	return &Timelock{
		address:     cfg.Address,
		beneficiary: cfg.Beneficiary,
		released:    new(uint256.Int),
		clock:       clk,
		token:       token,
		ownable:     access.NewOwnable(cfg.Owner, emitter),
		emitter:     emitter,
	}, nil
}

func (l *Timelock) Address() ethcommon.Address { return l.address }

func (l *Timelock) Owner() ethcommon.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ownable.Owner()
}

func (l *Timelock) Beneficiary() ethcommon.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.beneficiary
}

func (l *Timelock) IsActivated() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.activated
}

// StartTime is the zero time until activation.
func (l *Timelock) StartTime() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.startTime
}

func (l *Timelock) ReleasedAmount() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.released)
}

func (l *Timelock) ActivateNow(ctx context.Context, caller ethcommon.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.WithStack(l.activate(ctx, caller, l.clock.Now()))
}

// ActivateWithTime starts the lockup at startTime, which may be in the past or the future.
func (l *Timelock) ActivateWithTime(ctx context.Context, caller ethcommon.Address, startTime time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.WithStack(l.activate(ctx, caller, startTime))
}

func (l *Timelock) activate(ctx context.Context, caller ethcommon.Address, startTime time.Time) error {
	if err := l.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	if l.activated {
		return errors.Wrapf(errs.AlreadyActivated, "started at %s", l.startTime.Format(time.RFC3339))
	}
	l.activated = true
	l.startTime = startTime
	l.emitter.Emit(ctx, Activate{StartTime: startTime})
	return nil
}

// ResetBeneficiary redirects all future releases, before or after activation.
func (l *Timelock) ResetBeneficiary(ctx context.Context, caller, beneficiary ethcommon.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ownable.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	if beneficiary == (ethcommon.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "beneficiary is the zero address")
	}
	l.beneficiary = beneficiary
	l.emitter.Emit(ctx, ResetBeneficiary{Beneficiary: beneficiary})
	return nil
}

// Release pays the vested but unreleased amount to the beneficiary. Anyone may call it.
// When nothing is releasable it emits ZeroReleasableAmount and succeeds.
func (l *Timelock) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.activated {
		return errors.WithStack(errs.NotActivated)
	}

	releasable, err := l.releasable(l.clock.Now())
	if err != nil {
		return errors.WithStack(err)
	}
	if releasable.IsZero() {
		logger.DebugContext(ctx, "nothing to release", slogx.Stringer("timelock", l.address))
		l.emitter.Emit(ctx, ZeroReleasableAmount{})
		return nil
	}

	if err := l.token.Transfer(ctx, l.address, l.beneficiary, releasable); err != nil {
		return errors.Wrap(err, "transfer release")
	}
	l.released = new(uint256.Int).Add(l.released, releasable)
	l.emitter.Emit(ctx, NewRelease{Beneficiary: l.beneficiary, Amount: releasable})
	return nil
}

// releasable requires the lock.
func (l *Timelock) releasable(now time.Time) (*uint256.Int, error) {
	total, overflow := new(uint256.Int).AddOverflow(l.released, l.token.BalanceOf(l.address))
	if overflow {
		return nil, errors.Wrap(errs.Overflow, "total deposited")
	}
	vested, err := VestedAmount(total, l.startTime, now)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !vested.Gt(l.released) {
		return new(uint256.Int), nil
	}
	return new(uint256.Int).Sub(vested, l.released), nil
}

func (l *Timelock) TransferOwnership(ctx context.Context, caller, newOwner ethcommon.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.WithStack(l.ownable.TransferOwnership(ctx, caller, newOwner))
}

func (l *Timelock) RenounceOwnership(ctx context.Context, caller ethcommon.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.WithStack(l.ownable.RenounceOwnership(ctx, caller))
}

// Status is a read-only view of the lockup at one instant.
type Status struct {
	Address     ethcommon.Address
	Owner       ethcommon.Address
	Beneficiary ethcommon.Address
	Activated   bool
	StartTime   time.Time
	Released    *uint256.Int
	Locked      *uint256.Int
	Vested      *uint256.Int
	Releasable  *uint256.Int
	NextUnlock  *time.Time
}

func (l *Timelock) Status() (Status, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.clock.Now()
	s := Status{
		Address:     l.address,
		Owner:       l.ownable.Owner(),
		Beneficiary: l.beneficiary,
		Activated:   l.activated,
		StartTime:   l.startTime,
		Released:    new(uint256.Int).Set(l.released),
		Locked:      l.token.BalanceOf(l.address),
		Vested:      new(uint256.Int),
		Releasable:  new(uint256.Int),
	}
	if !l.activated {
		return s, nil
	}
	releasable, err := l.releasable(now)
	if err != nil {
		return Status{}, errors.WithStack(err)
	}
	s.Releasable = releasable
	s.Vested = new(uint256.Int).Add(l.released, releasable)
	if at, ok := NextUnlock(l.startTime, now); ok {
		s.NextUnlock = &at
	}
	return s, nil
}
