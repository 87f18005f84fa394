package gen

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type TokensaleBlock struct {
	BlockHeight int64
	BlockHash   string
	ParentHash  string
	Timestamp   pgtype.Timestamp
}

type TokensaleCall struct {
	BlockHeight  int64
	CallIndex    int32
	TxHash       string
	FromAddress  string
	ToAddress    string
	Contract     string
	Method       string
	Value        pgtype.Numeric
	Args         []byte
	Status       string
	ErrorCode    string
	ErrorMessage string
	Timestamp    pgtype.Timestamp
}

type TokensaleEvent struct {
	ID          int64
	BlockHeight int64
	CallIndex   int32
	EventIndex  int32
	Source      string
	Name        string
	Payload     []byte
	Timestamp   pgtype.Timestamp
}
