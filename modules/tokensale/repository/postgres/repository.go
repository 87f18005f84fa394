package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/internal/postgres"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gaze-network/tokensale/modules/tokensale/repository/postgres/gen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/samber/lo"
)

var _ datagateway.TokenSaleDataGateway = (*Repository)(nil)

type Repository struct {
	db      postgres.DB
	queries *gen.Queries
	tx      pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{
		db:      db,
		queries: gen.New(db),
	}
}

func (r *Repository) GetLatestBlock(ctx context.Context) (entity.Block, error) {
	block, err := r.queries.GetLatestBlock(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Block{}, errors.WithStack(errs.NotFound)
		}
		return entity.Block{}, errors.Wrap(err, "error during query")
	}
	return mapBlockModelToType(block), nil
}

func (r *Repository) GetEvents(ctx context.Context, arg datagateway.GetEventsParams) ([]entity.Event, error) {
	var source string
	if arg.Source != nil {
		source = arg.Source.Hex()
	}
	models, err := r.queries.GetEvents(ctx, gen.GetEventsParams{
		Name:   arg.Name,
		Source: source,
		Limit:  arg.Limit,
		Offset: arg.Offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	events := make([]entity.Event, 0, len(models))
	for _, model := range models {
		event, err := mapEventModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse event model")
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *Repository) GetCallsByFrom(ctx context.Context, arg datagateway.GetCallsByFromParams) ([]entity.Call, error) {
	models, err := r.queries.GetCallsByFrom(ctx, gen.GetCallsByFromParams{
		FromAddress: arg.From.Hex(),
		Limit:       arg.Limit,
		Offset:      arg.Offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	calls := make([]entity.Call, 0, len(models))
	for _, model := range models {
		call, err := mapCallModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse call model")
		}
		calls = append(calls, call)
	}
	return calls, nil
}

func (r *Repository) CreateBlock(ctx context.Context, block entity.Block) error {
	if err := r.queries.CreateBlock(ctx, mapBlockTypeToParams(block)); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateCall(ctx context.Context, call entity.Call) error {
	params, err := mapCallTypeToParams(call)
	if err != nil {
		return errors.Wrap(err, "failed to map call to params")
	}
	if err := r.queries.CreateCall(ctx, params); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateEvents(ctx context.Context, events []entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	params := gen.BatchCreateEventsParams{
		BlockHeightArr: make([]int64, 0, len(events)),
		CallIndexArr:   make([]int32, 0, len(events)),
		EventIndexArr:  make([]int32, 0, len(events)),
		SourceArr:      make([]string, 0, len(events)),
		NameArr:        make([]string, 0, len(events)),
		PayloadArr:     make([][]byte, 0, len(events)),
		TimestampArr:   lo.Map(events, func(e entity.Event, _ int) pgtype.Timestamp { return timestampOf(e.Timestamp) }),
	}
	for _, event := range events {
		params.BlockHeightArr = append(params.BlockHeightArr, event.BlockHeight)
		params.CallIndexArr = append(params.CallIndexArr, event.CallIndex)
		params.EventIndexArr = append(params.EventIndexArr, event.Index)
		params.SourceArr = append(params.SourceArr, event.Source.Hex())
		params.NameArr = append(params.NameArr, event.Name)
		params.PayloadArr = append(params.PayloadArr, jsonOrEmpty(event.Payload))
	}
	if err := r.queries.BatchCreateEvents(ctx, params); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) DeleteBlocksSinceHeight(ctx context.Context, height int64) error {
	if err := r.queries.DeleteEventsSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete events")
	}
	if err := r.queries.DeleteCallsSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete calls")
	}
	if err := r.queries.DeleteBlocksSinceHeight(ctx, height); err != nil {
		return errors.Wrap(err, "failed to delete blocks")
	}
	return nil
}
