package datasources

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/internal/subscription"
)

// Datasource is an interface for indexer data sources.
// A to height of -1 means up to the latest available block.
type Datasource[T any] interface {
	Name() string
	Fetch(ctx context.Context, from, to int64) ([]T, error)
	FetchAsync(ctx context.Context, from, to int64, ch chan<- []T) (*subscription.ClientSubscription[[]T], error)
}

// FetchBatchSize is the number of blocks per batch sent by FetchAsync.
var FetchBatchSize = 100

// collect drains an async fetch into one slice.
func collect[T any](ctx context.Context, ds Datasource[T], from, to int64) ([]T, error) {
	ch := make(chan []T)
	subscription, err := ds.FetchAsync(ctx, from, to, ch)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer subscription.Unsubscribe()

	items := make([]T, 0)
	for {
		select {
		case batch := <-ch:
			items = append(items, batch...)
		case <-subscription.Done():
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "context done")
			}
			return items, nil
		case err := <-subscription.Err():
			if err != nil {
				return nil, errors.Wrap(err, "got error while fetch async")
			}
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "context done")
		}
	}
}

// inRange reports whether height is within [from, to], where to < 0 is unbounded.
func inRange(height, from, to int64) bool {
	return height >= from && (to < 0 || height <= to)
}
