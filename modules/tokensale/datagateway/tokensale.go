package datagateway

import (
	"context"

	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	ethcommon "github.com/luxfi/geth/common"
)

type TokenSaleDataGateway interface {
	TokenSaleReaderDataGateway
	TokenSaleWriterDataGateway

	// BeginTokenSaleTx returns a new TokenSaleDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginTokenSaleTx(ctx context.Context) (TokenSaleDataGatewayWithTx, error)
}

type TokenSaleDataGatewayWithTx interface {
	TokenSaleDataGateway
	Tx
}

type TokenSaleReaderDataGateway interface {
	// GetLatestBlock returns the last processed block. Returns errs.NotFound if no block has been processed.
	GetLatestBlock(ctx context.Context) (entity.Block, error)
	GetEvents(ctx context.Context, arg GetEventsParams) ([]entity.Event, error)
	GetCallsByFrom(ctx context.Context, arg GetCallsByFromParams) ([]entity.Call, error)
}

type TokenSaleWriterDataGateway interface {
	CreateBlock(ctx context.Context, block entity.Block) error
	CreateCall(ctx context.Context, call entity.Call) error
	CreateEvents(ctx context.Context, events []entity.Event) error

	// DeleteBlocksSinceHeight deletes blocks, calls and events at or above height.
	DeleteBlocksSinceHeight(ctx context.Context, height int64) error
}

// GetEventsParams filters persisted events. Zero-valued filters match everything.
type GetEventsParams struct {
	Name   string
	Source *ethcommon.Address
	Limit  int32
	Offset int32
}

type GetCallsByFromParams struct {
	From   ethcommon.Address
	Limit  int32
	Offset int32
}
