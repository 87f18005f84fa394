package entity

import (
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type Block struct {
	Height     int64
	Hash       ethcommon.Hash
	ParentHash ethcommon.Hash
	Timestamp  time.Time
}

type CallStatus string

const (
	CallStatusSuccess CallStatus = "success"
	CallStatusFailed  CallStatus = "failed"
)

// Call is a journaled call together with its outcome.
type Call struct {
	BlockHeight  int64
	Index        int32
	Hash         ethcommon.Hash
	From         ethcommon.Address
	To           ethcommon.Address
	Contract     string
	Method       string
	Value        *uint256.Int
	Args         json.RawMessage
	Status       CallStatus
	ErrorCode    string
	ErrorMessage string
	Timestamp    time.Time
}

// Event is an event emitted by a successful call. Source is the emitting contract address.
type Event struct {
	BlockHeight int64
	CallIndex   int32
	Index       int32
	Source      ethcommon.Address
	Name        string
	Payload     json.RawMessage
	Timestamp   time.Time
}
