package datasources

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/internal/subscription"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

const maxJournalLineSize = 16 * 1024 * 1024

var _ Datasource[*types.Block] = (*JournalFile)(nil)

// JournalFile reads blocks from a JSON-lines file, one block per line, in height order.
// The file is re-read on every fetch so appended blocks are picked up.
type JournalFile struct {
	path string
}

func NewJournalFile(path string) *JournalFile {
	return &JournalFile{path: path}
}

func (JournalFile) Name() string {
	return "journal_file"
}

func (d *JournalFile) Fetch(ctx context.Context, from, to int64) ([]*types.Block, error) {
	blocks, err := collect[*types.Block](ctx, d, from, to)
	return blocks, errors.WithStack(err)
}

func (d *JournalFile) FetchAsync(ctx context.Context, from, to int64, ch chan<- []*types.Block) (*subscription.ClientSubscription[[]*types.Block], error) {
	ctx = logger.WithContext(ctx,
		slogx.String("package", "datasources"),
		slogx.String("datasource", d.Name()),
	)

	f, err := os.Open(d.path)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open journal file %q", d.path)
	}

	subscription := subscription.NewSubscription(ch)
	go func() {
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), maxJournalLineSize)

		batch := make([]*types.Block, 0, FetchBatchSize)
		line := 0
		for scanner.Scan() {
			line++
			if len(scanner.Bytes()) == 0 {
				continue
			}
			block, err := DecodeJournalBlock(scanner.Bytes())
			if err != nil {
				logger.ErrorContext(ctx, "Failed to decode journal line", slogx.Int("line", line), slogx.Error(err))
				if err := subscription.SendError(ctx, errors.Wrapf(err, "line %d", line)); err != nil {
					logger.WarnContext(ctx, "Failed to send datasource error to subscription client", slogx.Error(err))
				}
				return
			}
			if !inRange(block.Header.Height, from, to) {
				continue
			}
			batch = append(batch, block)
			if len(batch) < FetchBatchSize {
				continue
			}
			if err := subscription.Send(ctx, batch); err != nil {
				if !errors.Is(err, errs.Closed) {
					logger.WarnContext(ctx, "Failed to send blocks to subscription client", slogx.Error(err))
				}
				return
			}
			batch = make([]*types.Block, 0, FetchBatchSize)
		}
		if err := scanner.Err(); err != nil {
			if err := subscription.SendError(ctx, errors.Wrap(err, "can't read journal file")); err != nil {
				logger.WarnContext(ctx, "Failed to send datasource error to subscription client", slogx.Error(err))
			}
			return
		}
		if len(batch) > 0 {
			if err := subscription.Send(ctx, batch); err != nil {
				return
			}
		}
		if err := subscription.Finish(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to finish subscription", slogx.Error(err))
		}
	}()

	return subscription.Client(), nil
}

type journalBlock struct {
	Height     int64          `json:"height"`
	Hash       ethcommon.Hash `json:"hash"`
	ParentHash ethcommon.Hash `json:"parentHash"`
	Timestamp  int64          `json:"timestamp"`
	Calls      []journalCall  `json:"calls"`
}

type journalCall struct {
	Hash     ethcommon.Hash    `json:"hash"`
	From     ethcommon.Address `json:"from"`
	To       ethcommon.Address `json:"to"`
	Method   string            `json:"method"`
	Value    string            `json:"value,omitempty"`
	GasPrice string            `json:"gasPrice,omitempty"`
	Args     json.RawMessage   `json:"args,omitempty"`
}

// DecodeJournalBlock parses one journal line. Amounts are decimal strings and the
// timestamp is in unix seconds.
func DecodeJournalBlock(data []byte) (*types.Block, error) {
	var raw journalBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errs.InvalidArgument, err.Error())
	}
	block := &types.Block{
		Header: types.BlockHeader{
			Height:     raw.Height,
			Hash:       raw.Hash,
			ParentHash: raw.ParentHash,
			Timestamp:  time.Unix(raw.Timestamp, 0).UTC(),
		},
		Calls: make([]*types.Call, 0, len(raw.Calls)),
	}
	for i, c := range raw.Calls {
		value, err := parseAmount(c.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "call %d value", i)
		}
		gasPrice, err := parseAmount(c.GasPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "call %d gas price", i)
		}
		block.Calls = append(block.Calls, &types.Call{
			Index:    i,
			Hash:     c.Hash,
			From:     c.From,
			To:       c.To,
			Method:   c.Method,
			Value:    value,
			GasPrice: gasPrice,
			Args:     c.Args,
		})
	}
	return block, nil
}

// EncodeJournalBlock is the inverse of DecodeJournalBlock.
func EncodeJournalBlock(block *types.Block) ([]byte, error) {
	raw := journalBlock{
		Height:     block.Header.Height,
		Hash:       block.Header.Hash,
		ParentHash: block.Header.ParentHash,
		Timestamp:  block.Header.Timestamp.Unix(),
		Calls:      make([]journalCall, 0, len(block.Calls)),
	}
	for _, c := range block.Calls {
		call := journalCall{
			Hash:   c.Hash,
			From:   c.From,
			To:     c.To,
			Method: c.Method,
			Args:   c.Args,
		}
		if c.Value != nil {
			call.Value = c.Value.Dec()
		}
		if c.GasPrice != nil {
			call.GasPrice = c.GasPrice.Dec()
		}
		raw.Calls = append(raw.Calls, call)
	}
	data, err := json.Marshal(raw)
	return data, errors.WithStack(err)
}

func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid amount %q: %v", s, err)
	}
	return v, nil
}
