package contracts

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/holiman/uint256"
)

// Payable methods. Every other method rejects a call carrying value.
var payable = map[Kind]map[string]bool{
	KindCrowdsale: {"": true, "buyTokens": true},
	KindAccount:   {"": true},
}

// Apply executes call against the contract at call.To. A failed call leaves every contract unchanged.
func (c *Contracts) Apply(ctx context.Context, call *types.Call) (Kind, error) {
	kind := c.KindOf(call.To)
	if !valueOf(call).IsZero() && !payable[kind][call.Method] {
		return kind, errors.Wrapf(errs.InvalidArgument, "%s method %q is not payable", kind, call.Method)
	}

	var err error
	switch kind {
	case KindCrowdsale:
		err = c.applyCrowdsale(ctx, call)
	case KindTimelock:
		err = c.applyTimelock(ctx, call)
	case KindToken:
		err = c.applyToken(ctx, call)
	case KindCoin:
		err = c.applyCoin(ctx, call)
	case KindAccount:
		if call.Method != "" {
			return kind, errors.Wrapf(errs.Unsupported, "%s is not a contract", call.To)
		}
		err = c.Coin.Transfer(ctx, call.From, call.To, valueOf(call))
	}
	return kind, errors.WithStack(err)
}

func (c *Contracts) applyCrowdsale(ctx context.Context, call *types.Call) error {
	sale := c.Crowdsale
	switch call.Method {
	case "":
		return sale.Receive(ctx, call.From, valueOf(call), gasPriceOf(call))
	case "buyTokens":
		args, err := decodeArgs[beneficiaryArgs](call.Args)
		if err != nil {
			return err
		}
		return sale.BuyTokens(ctx, call.From, args.Beneficiary, valueOf(call), gasPriceOf(call))
	case "setRate":
		args, err := decodeArgs[rateArgs](call.Args)
		if err != nil {
			return err
		}
		rate, err := args.Rate.require("rate")
		if err != nil {
			return err
		}
		return sale.SetRate(ctx, call.From, rate)
	case "setInitialMaxCap":
		args, err := decodeArgs[capArgs](call.Args)
		if err != nil {
			return err
		}
		maxCap, err := args.Cap.require("cap")
		if err != nil {
			return err
		}
		return sale.SetInitialMaxCap(ctx, call.From, maxCap)
	case "addAddressToWhitelist":
		args, err := decodeArgs[addressArgs](call.Args)
		if err != nil {
			return err
		}
		return sale.AddAddressToWhitelist(ctx, call.From, args.Address)
	case "addAddressesToWhitelist":
		args, err := decodeArgs[addressesArgs](call.Args)
		if err != nil {
			return err
		}
		return sale.AddAddressesToWhitelist(ctx, call.From, args.Addresses)
	case "removeAddressFromWhitelist":
		args, err := decodeArgs[addressArgs](call.Args)
		if err != nil {
			return err
		}
		return sale.RemoveAddressFromWhitelist(ctx, call.From, args.Address)
	case "removeAddressesFromWhitelist":
		args, err := decodeArgs[addressesArgs](call.Args)
		if err != nil {
			return err
		}
		return sale.RemoveAddressesFromWhitelist(ctx, call.From, args.Addresses)
	case "pause":
		return sale.Pause(ctx, call.From)
	case "unpause":
		return sale.Unpause(ctx, call.From)
	case "transferOwnership":
		args, err := decodeArgs[ownershipArgs](call.Args)
		if err != nil {
			return err
		}
		return sale.TransferOwnership(ctx, call.From, args.NewOwner)
	case "renounceOwnership":
		return sale.RenounceOwnership(ctx, call.From)
	}
	return unknownMethod(KindCrowdsale, call.Method)
}

func (c *Contracts) applyTimelock(ctx context.Context, call *types.Call) error {
	lock := c.Timelocks[call.To]
	switch call.Method {
	case "activateNow":
		return lock.ActivateNow(ctx, call.From)
	case "activateWithTime":
		args, err := decodeArgs[startTimeArgs](call.Args)
		if err != nil {
			return err
		}
		if args.StartTime == nil {
			return errors.Wrap(errs.InvalidArgument, "startTime is required")
		}
		return lock.ActivateWithTime(ctx, call.From, time.Unix(*args.StartTime, 0).UTC())
	case "resetBeneficiary":
		args, err := decodeArgs[beneficiaryArgs](call.Args)
		if err != nil {
			return err
		}
		return lock.ResetBeneficiary(ctx, call.From, args.Beneficiary)
	case "release":
		return lock.Release(ctx)
	case "transferOwnership":
		args, err := decodeArgs[ownershipArgs](call.Args)
		if err != nil {
			return err
		}
		return lock.TransferOwnership(ctx, call.From, args.NewOwner)
	case "renounceOwnership":
		return lock.RenounceOwnership(ctx, call.From)
	}
	return unknownMethod(KindTimelock, call.Method)
}

func (c *Contracts) applyToken(ctx context.Context, call *types.Call) error {
	tok := c.Token
	switch call.Method {
	case "transfer":
		args, err := decodeArgs[transferArgs](call.Args)
		if err != nil {
			return err
		}
		value, err := args.Value.require("value")
		if err != nil {
			return err
		}
		return tok.Transfer(ctx, call.From, args.To, value)
	case "transferFrom":
		args, err := decodeArgs[transferFromArgs](call.Args)
		if err != nil {
			return err
		}
		value, err := args.Value.require("value")
		if err != nil {
			return err
		}
		return tok.TransferFrom(ctx, call.From, args.From, args.To, value)
	case "approve", "increaseApproval", "decreaseApproval":
		args, err := decodeArgs[approvalArgs](call.Args)
		if err != nil {
			return err
		}
		value, err := args.Value.require("value")
		if err != nil {
			return err
		}
		switch call.Method {
		case "approve":
			return tok.Approve(ctx, call.From, args.Spender, value)
		case "increaseApproval":
			return tok.IncreaseApproval(ctx, call.From, args.Spender, value)
		default:
			return tok.DecreaseApproval(ctx, call.From, args.Spender, value)
		}
	case "openTransfer":
		return tok.OpenTransfer(ctx, call.From)
	case "pause":
		return tok.Pause(ctx, call.From)
	case "unpause":
		return tok.Unpause(ctx, call.From)
	case "addAddressToWhitelist", "removeAddressFromWhitelist":
		args, err := decodeArgs[addressArgs](call.Args)
		if err != nil {
			return err
		}
		if call.Method == "addAddressToWhitelist" {
			return tok.AddAddressesToWhitelist(ctx, call.From, args.Address)
		}
		return tok.RemoveAddressesFromWhitelist(ctx, call.From, args.Address)
	case "addAddressesToWhitelist", "removeAddressesFromWhitelist":
		args, err := decodeArgs[addressesArgs](call.Args)
		if err != nil {
			return err
		}
		if call.Method == "addAddressesToWhitelist" {
			return tok.AddAddressesToWhitelist(ctx, call.From, args.Addresses...)
		}
		return tok.RemoveAddressesFromWhitelist(ctx, call.From, args.Addresses...)
	case "transferOwnership":
		args, err := decodeArgs[ownershipArgs](call.Args)
		if err != nil {
			return err
		}
		return tok.TransferOwnership(ctx, call.From, args.NewOwner)
	case "renounceOwnership":
		return tok.RenounceOwnership(ctx, call.From)
	}
	return unknownMethod(KindToken, call.Method)
}

func (c *Contracts) applyCoin(ctx context.Context, call *types.Call) error {
	if call.Method != "transfer" {
		return unknownMethod(KindCoin, call.Method)
	}
	args, err := decodeArgs[transferArgs](call.Args)
	if err != nil {
		return err
	}
	value, err := args.Value.require("value")
	if err != nil {
		return err
	}
	return c.Coin.Transfer(ctx, call.From, args.To, value)
}

func unknownMethod(kind Kind, method string) error {
	return errors.Wrapf(errs.Unsupported, "unknown %s method %q", kind, method)
}

func valueOf(call *types.Call) *uint256.Int {
	if call.Value == nil {
		return new(uint256.Int)
	}
	return call.Value
}

func gasPriceOf(call *types.Call) *uint256.Int {
	if call.GasPrice == nil {
		return new(uint256.Int)
	}
	return call.GasPrice
}
