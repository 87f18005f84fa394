package postgres

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gaze-network/tokensale/modules/tokensale/repository/postgres/gen"
	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5/pgtype"
	ethcommon "github.com/luxfi/geth/common"
)

func timestampOf(t time.Time) pgtype.Timestamp {
	return pgtype.Timestamp{Time: t.UTC(), Valid: true}
}

func timeOf(src pgtype.Timestamp) time.Time {
	if !src.Valid {
		return time.Time{}
	}
	return src.Time.UTC()
}

func numericFromUint256(src *uint256.Int) (pgtype.Numeric, error) {
	if src == nil {
		return numericFromUint256(new(uint256.Int))
	}
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.Dec())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func uint256FromNumeric(src pgtype.Numeric) (*uint256.Int, error) {
	if !src.Valid {
		return new(uint256.Int), nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	result, err := uint256.FromDecimal(string(bytes))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid numeric %s", bytes)
	}
	return result, nil
}

// jsonOrEmpty keeps JSONB columns non-null.
func jsonOrEmpty(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("{}")
	}
	return raw
}

func mapBlockModelToType(src gen.TokensaleBlock) entity.Block {
	return entity.Block{
		Height:     src.BlockHeight,
		Hash:       ethcommon.HexToHash(src.BlockHash),
		ParentHash: ethcommon.HexToHash(src.ParentHash),
		Timestamp:  timeOf(src.Timestamp),
	}
}

func mapBlockTypeToParams(src entity.Block) gen.CreateBlockParams {
	return gen.CreateBlockParams{
		BlockHeight: src.Height,
		BlockHash:   src.Hash.Hex(),
		ParentHash:  src.ParentHash.Hex(),
		Timestamp:   timestampOf(src.Timestamp),
	}
}

func mapCallModelToType(src gen.TokensaleCall) (entity.Call, error) {
	value, err := uint256FromNumeric(src.Value)
	if err != nil {
		return entity.Call{}, errors.Wrap(err, "failed to parse value")
	}
	return entity.Call{
		BlockHeight:  src.BlockHeight,
		Index:        src.CallIndex,
		Hash:         ethcommon.HexToHash(src.TxHash),
		From:         ethcommon.HexToAddress(src.FromAddress),
		To:           ethcommon.HexToAddress(src.ToAddress),
		Contract:     src.Contract,
		Method:       src.Method,
		Value:        value,
		Args:         src.Args,
		Status:       entity.CallStatus(src.Status),
		ErrorCode:    src.ErrorCode,
		ErrorMessage: src.ErrorMessage,
		Timestamp:    timeOf(src.Timestamp),
	}, nil
}

func mapCallTypeToParams(src entity.Call) (gen.CreateCallParams, error) {
	value, err := numericFromUint256(src.Value)
	if err != nil {
		return gen.CreateCallParams{}, errors.Wrap(err, "failed to parse value")
	}
	return gen.CreateCallParams{
		BlockHeight:  src.BlockHeight,
		CallIndex:    src.Index,
		TxHash:       src.Hash.Hex(),
		FromAddress:  src.From.Hex(),
		ToAddress:    src.To.Hex(),
		Contract:     src.Contract,
		Method:       src.Method,
		Value:        value,
		Args:         jsonOrEmpty(src.Args),
		Status:       string(src.Status),
		ErrorCode:    src.ErrorCode,
		ErrorMessage: src.ErrorMessage,
		Timestamp:    timestampOf(src.Timestamp),
	}, nil
}

func mapEventModelToType(src gen.TokensaleEvent) (entity.Event, error) {
	if !ethcommon.IsHexAddress(src.Source) {
		return entity.Event{}, errors.Errorf("invalid event source %q", src.Source)
	}
	return entity.Event{
		BlockHeight: src.BlockHeight,
		CallIndex:   src.CallIndex,
		Index:       src.EventIndex,
		Source:      ethcommon.HexToAddress(src.Source),
		Name:        src.Name,
		Payload:     src.Payload,
		Timestamp:   timeOf(src.Timestamp),
	}, nil
}
