package tokensale

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/core/indexer"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/contracts"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gaze-network/tokensale/pkg/reportingclient"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/samber/lo"
)

var _ indexer.Processor[*types.Block] = (*Processor)(nil)

// Processor replays journaled calls against the sale contracts and persists every outcome.
type Processor struct {
	config          config.Config
	tokenSaleDg     datagateway.TokenSaleDataGateway
	reportingClient *reportingclient.ReportingClient
	contracts       atomic.Pointer[contracts.Contracts]
	cleanupFuncs    []func(context.Context) error
}

// NewProcessor creates a processor. reportingClient may be nil.
func NewProcessor(ctx context.Context, conf config.Config, tokenSaleDg datagateway.TokenSaleDataGateway, reportingClient *reportingclient.ReportingClient, cleanupFuncs []func(context.Context) error) (*Processor, error) {
	p := &Processor{
		config:          conf,
		tokenSaleDg:     tokenSaleDg,
		reportingClient: reportingClient,
		cleanupFuncs:    cleanupFuncs,
	}
	c, err := contracts.New(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create contracts")
	}
	p.contracts.Store(c)
	return p, nil
}

func (p *Processor) Name() string {
	return common.ModuleTokenSale.String()
}

// Contracts returns the contracts at the last processed block. The returned value is replaced, not mutated, on revert.
func (p *Processor) Contracts() *contracts.Contracts {
	return p.contracts.Load()
}

func (p *Processor) CurrentBlock(ctx context.Context) (types.BlockHeader, error) {
	block, err := p.tokenSaleDg.GetLatestBlock(ctx)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return types.BlockHeader{}, errors.WithStack(errs.NotFound)
		}
		return types.BlockHeader{}, errors.Wrap(err, "failed to get latest block")
	}
	return types.BlockHeader{
		Height:     block.Height,
		Hash:       block.Hash,
		ParentHash: block.ParentHash,
		Timestamp:  block.Timestamp,
	}, nil
}

// RevertData drops persisted data and rebuilds the contracts at their initial state.
// Contract state cannot be rewound, so only a full revert from height 0 is supported.
func (p *Processor) RevertData(ctx context.Context, from int64) error {
	if from > 0 {
		return errors.Wrapf(errs.Unsupported, "can't revert to height %d, only a full replay is supported", from)
	}

	c, err := contracts.New(ctx, p.config)
	if err != nil {
		return errors.Wrap(err, "failed to rebuild contracts")
	}

	tokenSaleDgTx, err := p.tokenSaleDg.BeginTokenSaleTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tokenSaleDgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	if err := tokenSaleDgTx.DeleteBlocksSinceHeight(ctx, 0); err != nil {
		return errors.Wrap(err, "failed to delete blocks")
	}
	if err := tokenSaleDgTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	p.contracts.Store(c)
	logger.InfoContext(ctx, "Reverted token sale data, contracts rebuilt")
	return nil
}

func (p *Processor) Process(ctx context.Context, inputs []*types.Block) error {
	c := p.contracts.Load()
	for _, block := range inputs {
		if err := p.processBlock(ctx, c, block); err != nil {
			return errors.Wrapf(err, "failed to process block %d", block.Header.Height)
		}
	}
	return nil
}

// processBlock applies every call of block. A storage failure leaves the contracts ahead of the
// database; the indexer stops and the next start replays from height 0.
func (p *Processor) processBlock(ctx context.Context, c *contracts.Contracts, block *types.Block) error {
	header := block.Header
	ctx = logger.WithContext(ctx, slogx.Int64("block", header.Height))
	c.Clock.Set(header.Timestamp)

	tokenSaleDgTx, err := p.tokenSaleDg.BeginTokenSaleTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := tokenSaleDgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction", slogx.Error(err))
		}
	}()

	if err := tokenSaleDgTx.CreateBlock(ctx, entity.Block{
		Height:     header.Height,
		Hash:       header.Hash,
		ParentHash: header.ParentHash,
		Timestamp:  header.Timestamp,
	}); err != nil {
		return errors.Wrap(err, "failed to create block")
	}

	var failed, emitted int
	for _, call := range block.Calls {
		record, events := p.applyCall(ctx, c, header, call)
		if record.Status == entity.CallStatusFailed {
			failed++
		}
		emitted += len(events)
		if err := tokenSaleDgTx.CreateCall(ctx, record); err != nil {
			return errors.Wrapf(err, "failed to create call %d", call.Index)
		}
		if err := tokenSaleDgTx.CreateEvents(ctx, events); err != nil {
			return errors.Wrapf(err, "failed to create events of call %d", call.Index)
		}
	}

	if err := tokenSaleDgTx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	logger.DebugContext(ctx, "Processed block",
		slogx.Int("calls", len(block.Calls)),
		slogx.Int("failed_calls", failed),
		slogx.Int("events", emitted),
	)

	if p.reportingClient != nil {
		// the block is already committed, a reporting failure must not stop the replay
		if err := p.reportingClient.SubmitBlockReport(ctx, reportingclient.SubmitBlockReportPayload{
			Type:          p.Name(),
			ClientVersion: Version,
			BlockHeight:   header.Height,
			BlockHash:     header.Hash,
			Calls:         len(block.Calls),
			FailedCalls:   failed,
			Events:        emitted,
			Raised:        c.Crowdsale.Raised().Dec(),
		}); err != nil {
			logger.WarnContext(ctx, "Failed to submit block report", slogx.Error(err))
		}
	}
	return nil
}

// applyCall never fails: a rejected call is recorded with its error code.
func (p *Processor) applyCall(ctx context.Context, c *contracts.Contracts, header types.BlockHeader, call *types.Call) (entity.Call, []entity.Event) {
	ctx = logger.WithContext(ctx,
		slogx.Int("call_index", call.Index),
		slogx.String("method", call.Method),
		slogx.Stringer("to", call.To),
	)

	kind, err := c.Apply(ctx, call)
	records := c.Journal.Drain()

	record := entity.Call{
		BlockHeight: header.Height,
		Index:       int32(call.Index),
		Hash:        call.Hash,
		From:        call.From,
		To:          call.To,
		Contract:    string(kind),
		Method:      call.Method,
		Value:       lo.Ternary(call.Value != nil, call.Value, new(uint256.Int)),
		Args:        call.Args,
		Status:      entity.CallStatusSuccess,
		Timestamp:   header.Timestamp,
	}
	if err != nil {
		record.Status = entity.CallStatusFailed
		record.ErrorCode = errs.Code(err)
		record.ErrorMessage = err.Error()
		logger.DebugContext(ctx, "Call failed", slogx.String("code", record.ErrorCode), slogx.Error(err))
		if len(records) > 0 {
			logger.WarnContext(ctx, "Dropped events of a failed call", slogx.Any("events", event.Names(records)))
		}
		return record, nil
	}

	events := make([]entity.Event, 0, len(records))
	for i, r := range records {
		payload, err := json.Marshal(r.Event)
		if err != nil {
			logger.WarnContext(ctx, "Failed to encode event payload", slogx.String("event", r.Event.EventName()), slogx.Error(err))
			payload = []byte("{}")
		}
		events = append(events, entity.Event{
			BlockHeight: header.Height,
			CallIndex:   int32(call.Index),
			Index:       int32(i),
			Source:      ethcommon.HexToAddress(r.Source),
			Name:        r.Event.EventName(),
			Payload:     payload,
			Timestamp:   header.Timestamp,
		})
	}
	return record, events
}

func (p *Processor) Shutdown(ctx context.Context) error {
	var errList []error
	for _, cleanup := range p.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}
