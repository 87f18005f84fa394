// Queries from tokensale.sql.

package gen

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const batchCreateEvents = `-- name: BatchCreateEvents :exec
INSERT INTO tokensale_events (block_height, call_index, event_index, source, name, payload, timestamp)
VALUES (
	unnest($1::BIGINT[]),
	unnest($2::INT[]),
	unnest($3::INT[]),
	unnest($4::TEXT[]),
	unnest($5::TEXT[]),
	unnest($6::JSONB[]),
	unnest($7::TIMESTAMP[])
)
`

type BatchCreateEventsParams struct {
	BlockHeightArr []int64
	CallIndexArr   []int32
	EventIndexArr  []int32
	SourceArr      []string
	NameArr        []string
	PayloadArr     [][]byte
	TimestampArr   []pgtype.Timestamp
}

func (q *Queries) BatchCreateEvents(ctx context.Context, arg BatchCreateEventsParams) error {
	_, err := q.db.Exec(ctx, batchCreateEvents,
		arg.BlockHeightArr,
		arg.CallIndexArr,
		arg.EventIndexArr,
		arg.SourceArr,
		arg.NameArr,
		arg.PayloadArr,
		arg.TimestampArr,
	)
	return err
}

const createBlock = `-- name: CreateBlock :exec
INSERT INTO tokensale_blocks (block_height, block_hash, parent_hash, timestamp) VALUES ($1, $2, $3, $4)
`

type CreateBlockParams struct {
	BlockHeight int64
	BlockHash   string
	ParentHash  string
	Timestamp   pgtype.Timestamp
}

func (q *Queries) CreateBlock(ctx context.Context, arg CreateBlockParams) error {
	_, err := q.db.Exec(ctx, createBlock,
		arg.BlockHeight,
		arg.BlockHash,
		arg.ParentHash,
		arg.Timestamp,
	)
	return err
}

const createCall = `-- name: CreateCall :exec
INSERT INTO tokensale_calls (block_height, call_index, tx_hash, from_address, to_address, contract, method, value, args, status, error_code, error_message, timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

type CreateCallParams struct {
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

func (q *Queries) CreateCall(ctx context.Context, arg CreateCallParams) error {
	_, err := q.db.Exec(ctx, createCall,
		arg.BlockHeight,
		arg.CallIndex,
		arg.TxHash,
		arg.FromAddress,
		arg.ToAddress,
		arg.Contract,
		arg.Method,
		arg.Value,
		arg.Args,
		arg.Status,
		arg.ErrorCode,
		arg.ErrorMessage,
		arg.Timestamp,
	)
	return err
}

const deleteBlocksSinceHeight = `-- name: DeleteBlocksSinceHeight :exec
DELETE FROM tokensale_blocks WHERE block_height >= $1
`

func (q *Queries) DeleteBlocksSinceHeight(ctx context.Context, blockHeight int64) error {
	_, err := q.db.Exec(ctx, deleteBlocksSinceHeight, blockHeight)
	return err
}

const deleteCallsSinceHeight = `-- name: DeleteCallsSinceHeight :exec
DELETE FROM tokensale_calls WHERE block_height >= $1
`

func (q *Queries) DeleteCallsSinceHeight(ctx context.Context, blockHeight int64) error {
	_, err := q.db.Exec(ctx, deleteCallsSinceHeight, blockHeight)
	return err
}

const deleteEventsSinceHeight = `-- name: DeleteEventsSinceHeight :exec
DELETE FROM tokensale_events WHERE block_height >= $1
`

func (q *Queries) DeleteEventsSinceHeight(ctx context.Context, blockHeight int64) error {
	_, err := q.db.Exec(ctx, deleteEventsSinceHeight, blockHeight)
	return err
}

const getCallsByFrom = `-- name: GetCallsByFrom :many
SELECT block_height, call_index, tx_hash, from_address, to_address, contract, method, value, args, status, error_code, error_message, timestamp FROM tokensale_calls
WHERE from_address = $1
ORDER BY block_height DESC, call_index DESC
LIMIT $2 OFFSET $3
`

type GetCallsByFromParams struct {
	FromAddress string
	Limit       int32
	Offset      int32
}

func (q *Queries) GetCallsByFrom(ctx context.Context, arg GetCallsByFromParams) ([]TokensaleCall, error) {
	rows, err := q.db.Query(ctx, getCallsByFrom, arg.FromAddress, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TokensaleCall
	for rows.Next() {
		var i TokensaleCall
		if err := rows.Scan(
			&i.BlockHeight,
			&i.CallIndex,
			&i.TxHash,
			&i.FromAddress,
			&i.ToAddress,
			&i.Contract,
			&i.Method,
			&i.Value,
			&i.Args,
			&i.Status,
			&i.ErrorCode,
			&i.ErrorMessage,
			&i.Timestamp,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getEvents = `-- name: GetEvents :many
SELECT id, block_height, call_index, event_index, source, name, payload, timestamp FROM tokensale_events
WHERE ($1::TEXT = '' OR name = $1)
	AND ($2::TEXT = '' OR source = $2)
ORDER BY block_height, call_index, event_index
LIMIT $3 OFFSET $4
`

type GetEventsParams struct {
	Name   string
	Source string
	Limit  int32
	Offset int32
}

func (q *Queries) GetEvents(ctx context.Context, arg GetEventsParams) ([]TokensaleEvent, error) {
	rows, err := q.db.Query(ctx, getEvents,
		arg.Name,
		arg.Source,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TokensaleEvent
	for rows.Next() {
		var i TokensaleEvent
		if err := rows.Scan(
			&i.ID,
			&i.BlockHeight,
			&i.CallIndex,
			&i.EventIndex,
			&i.Source,
			&i.Name,
			&i.Payload,
			&i.Timestamp,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getLatestBlock = `-- name: GetLatestBlock :one
SELECT block_height, block_hash, parent_hash, timestamp FROM tokensale_blocks ORDER BY block_height DESC LIMIT 1
`

func (q *Queries) GetLatestBlock(ctx context.Context) (TokensaleBlock, error) {
	row := q.db.QueryRow(ctx, getLatestBlock)
	var i TokensaleBlock
	err := row.Scan(
		&i.BlockHeight,
		&i.BlockHash,
		&i.ParentHash,
		&i.Timestamp,
	)
	return i, err
}
