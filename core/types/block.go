package types

import (
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

// BlockHeader identifies a block of the call journal.
// ParentHash links to the previous block; the genesis block has a zero parent.
type BlockHeader struct {
	Height     int64
	Hash       ethcommon.Hash
	ParentHash ethcommon.Hash
	Timestamp  time.Time
}

// Call is one contract invocation in a block. The zero Method on a crowdsale
// is a plain value transfer.
type Call struct {
	Index    int
	Hash     ethcommon.Hash
	From     ethcommon.Address
	To       ethcommon.Address
	Method   string
	Value    *uint256.Int
	GasPrice *uint256.Int
	Args     json.RawMessage
}

type Block struct {
	Header BlockHeader
	Calls  []*Call
}

func (b *Block) BlockHeader() BlockHeader {
	return b.Header
}
