package indexer

import (
	"context"

	"github.com/gaze-network/tokensale/core/types"
)

type Input interface {
	BlockHeader() types.BlockHeader
}

type Processor[T Input] interface {
	Name() string

	// Process processes the input data and indexes it.
	Process(ctx context.Context, inputs []T) error

	// CurrentBlock returns the latest indexed block header, or errs.NotFound before the first block.
	CurrentBlock(ctx context.Context) (types.BlockHeader, error)

	// RevertData revert synced data to the specified block height for re-indexing.
	RevertData(ctx context.Context, from int64) error

	// Shutdown releases the processor's resources.
	Shutdown(ctx context.Context) error
}

type IndexerWorker interface {
	Run(ctx context.Context) error
	ShutdownWithContext(ctx context.Context) error
}
