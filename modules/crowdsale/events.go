package crowdsale

import (
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

// TokenPurchase records a successful purchase. Amount is the token amount, Value the currency paid.
type TokenPurchase struct {
	Purchaser   ethcommon.Address `json:"purchaser"`
	Beneficiary ethcommon.Address `json:"beneficiary"`
	Value       *uint256.Int      `json:"value"`
	Amount      *uint256.Int      `json:"amount"`
}

func (TokenPurchase) EventName() string { return "TokenPurchase" }
