// Package access holds the authorization building blocks shared by the sale contracts.
//
// None of the types here lock. The contract that owns them serializes every call.
package access

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/event"
	ethcommon "github.com/luxfi/geth/common"
)

// Ownable is a single owner address with an explicit authorization check.
type Ownable struct {
	owner   ethcommon.Address
	emitter event.Emitter
}

func NewOwnable(owner ethcommon.Address, emitter event.Emitter) *Ownable {
	return &Ownable{owner: owner, emitter: emitter}
}

func (o *Ownable) Owner() ethcommon.Address {
	return o.owner
}

// Authorize fails with errs.PermissionDenied unless caller is the owner.
// A renounced contract has no owner and authorizes nobody.
func (o *Ownable) Authorize(caller ethcommon.Address) error {
	if o.owner == (ethcommon.Address{}) || caller != o.owner {
		return errors.Wrapf(errs.PermissionDenied, "caller %s is not the owner", caller)
	}
	return nil
}

func (o *Ownable) TransferOwnership(ctx context.Context, caller, newOwner ethcommon.Address) error {
	if err := o.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	if newOwner == (ethcommon.Address{}) {
		return errors.Wrap(errs.InvalidArgument, "new owner is the zero address")
	}
	previous := o.owner
	o.owner = newOwner
	o.emitter.Emit(ctx, OwnershipTransferred{PreviousOwner: previous, NewOwner: newOwner})
	return nil
}

func (o *Ownable) RenounceOwnership(ctx context.Context, caller ethcommon.Address) error {
	if err := o.Authorize(caller); err != nil {
		return errors.WithStack(err)
	}
	previous := o.owner
	o.owner = ethcommon.Address{}
	o.emitter.Emit(ctx, OwnershipRenounced{PreviousOwner: previous})
	return nil
}
