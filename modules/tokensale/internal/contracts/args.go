package contracts

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

// amount is a base-10 integer carried as a JSON string, e.g. "500000000000000000".
type amount struct {
	*uint256.Int
}

func (a *amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(errs.InvalidArgument, "amount must be a decimal string")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return errors.Wrapf(errs.InvalidArgument, "invalid amount %q", s)
	}
	a.Int = v
	return nil
}

func (a amount) require(name string) (*uint256.Int, error) {
	if a.Int == nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "%s is required", name)
	}
	return a.Int, nil
}

type (
	addressArgs struct {
		Address ethcommon.Address `json:"address"`
	}
	addressesArgs struct {
		Addresses []ethcommon.Address `json:"addresses"`
	}
	ownershipArgs struct {
		NewOwner ethcommon.Address `json:"newOwner"`
	}
	beneficiaryArgs struct {
		Beneficiary ethcommon.Address `json:"beneficiary"`
	}
	rateArgs struct {
		Rate amount `json:"rate"`
	}
	capArgs struct {
		Cap amount `json:"cap"`
	}
	startTimeArgs struct {
		StartTime *int64 `json:"startTime"`
	}
	transferArgs struct {
		To    ethcommon.Address `json:"to"`
		Value amount            `json:"value"`
	}
	transferFromArgs struct {
		From  ethcommon.Address `json:"from"`
		To    ethcommon.Address `json:"to"`
		Value amount            `json:"value"`
	}
	approvalArgs struct {
		Spender ethcommon.Address `json:"spender"`
		Value   amount            `json:"value"`
	}
)

// decodeArgs decodes call arguments strictly. Missing arguments decode as "{}".
func decodeArgs[T any](raw json.RawMessage) (T, error) {
	var args T
	if len(bytes.TrimSpace(raw)) == 0 {
		return args, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		return args, errors.Wrapf(errs.InvalidArgument, "invalid args: %v", err)
	}
	return args, nil
}
