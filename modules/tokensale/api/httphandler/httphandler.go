package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/contracts"
	"github.com/gaze-network/tokensale/pkg/decimals"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

// ContractsProvider returns the contracts at the last processed block.
type ContractsProvider interface {
	Contracts() *contracts.Contracts
}

type HttpHandler struct {
	contracts   ContractsProvider
	tokenSaleDg datagateway.TokenSaleReaderDataGateway
}

func New(contracts ContractsProvider, tokenSaleDg datagateway.TokenSaleReaderDataGateway) *HttpHandler {
	return &HttpHandler{
		contracts:   contracts,
		tokenSaleDg: tokenSaleDg,
	}
}

type HttpResponse[T any] = common.HttpResponse[T]

// amount is a base unit amount with its human readable form.
type amount struct {
	Value     string `json:"value"`
	Formatted string `json:"formatted"`
}

func newAmount(v *uint256.Int, unitDecimals uint16) amount {
	if v == nil {
		v = new(uint256.Int)
	}
	return amount{
		Value:     v.Dec(),
		Formatted: decimals.FormatUnits(v, unitDecimals),
	}
}

func newEtherAmount(v *uint256.Int) amount {
	return newAmount(v, decimals.Ether)
}

func parseAddress(field, s string) (ethcommon.Address, error) {
	addr, err := contracts.ParseAddress(s)
	if err != nil {
		return ethcommon.Address{}, errs.WithPublicMessage(errors.Wrapf(errs.InvalidArgument, "'%s' is not a valid address", field), "")
	}
	return addr, nil
}
