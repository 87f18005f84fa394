package tokensale

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/datasources"
	"github.com/gaze-network/tokensale/core/indexer"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/internal/config"
	"github.com/gaze-network/tokensale/internal/postgres"
	"github.com/gaze-network/tokensale/modules/tokensale/api/httphandler"
	tokensaleconfig "github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	tokensalepostgres "github.com/gaze-network/tokensale/modules/tokensale/repository/postgres"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gaze-network/tokensale/pkg/reportingclient"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

const Version = "v0.1.0"

func New(injector do.Injector) (indexer.IndexerWorker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	moduleConf := conf.Modules.TokenSale
	reportingClient := do.MustInvoke[*reportingclient.ReportingClient](injector)

	var cleanupFuncs []func(context.Context) error
	pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return nil, errors.Wrap(err, "Invalid Postgres configuration for indexer")
		}
		return nil, errors.Wrap(err, "can't create Postgres connection pool")
	}
	cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
		pg.Close()
		return nil
	})
	var tokenSaleDg datagateway.TokenSaleDataGateway = tokensalepostgres.NewRepository(pg)

	datasource, err := newDatasource(ctx, moduleConf.Datasource)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	processor, err := NewProcessor(ctx, moduleConf, tokenSaleDg, reportingClient, cleanupFuncs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Mount API
	var contracts httphandler.ContractsProvider
	if !conf.APIOnly {
		contracts = processor
	}
	for _, handler := range lo.Uniq(moduleConf.APIHandlers) {
		switch strings.ToLower(handler) {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			if err := httphandler.New(contracts, tokenSaleDg).Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount TokenSale API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler", slogx.Bool("contract_state", contracts != nil))
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	ix := indexer.New[*types.Block](processor, datasource)
	if moduleConf.Datasource.PollingInterval > 0 {
		ix.PollingInterval = moduleConf.Datasource.PollingInterval
	}
	return &worker{Indexer: ix, processor: processor, reportingClient: reportingClient}, nil
}

func newDatasource(ctx context.Context, conf tokensaleconfig.DatasourceConfig) (datasources.Datasource[*types.Block], error) {
	switch strings.ToLower(conf.Type) {
	case tokensaleconfig.DatasourceJournalFile, "":
		if conf.Path == "" {
			return nil, errors.Wrap(errs.InvalidArgument, "journal file path is required")
		}
		return datasources.NewJournalFile(conf.Path), nil
	case tokensaleconfig.DatasourceS3Parquet:
		ds, err := datasources.NewS3Parquet(ctx, conf.S3)
		if err != nil {
			return nil, errors.Wrap(err, "can't create S3 parquet datasource")
		}
		return ds, nil
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q datasource is not supported", conf.Type)
	}
}

// worker replays the whole journal on every start. Contract state is held in memory only,
// so persisted rows from a previous run are dropped before indexing resumes from genesis.
type worker struct {
	*indexer.Indexer[*types.Block]
	processor       *Processor
	reportingClient *reportingclient.ReportingClient
	started         atomic.Bool
}

func (w *worker) Run(ctx context.Context) error {
	w.started.Store(true)
	if err := w.processor.RevertData(ctx, 0); err != nil {
		return errors.Wrap(err, "can't reset persisted journal data")
	}
	if w.reportingClient != nil {
		if err := w.reportingClient.SubmitNodeReport(ctx, w.processor.Name(), Version); err != nil {
			logger.WarnContext(ctx, "Failed to submit node report", slogx.Error(err))
		}
	}
	return errors.WithStack(w.Indexer.Run(ctx))
}

// ShutdownWithContext releases the processor directly when the indexer never ran, e.g. in API-only mode.
func (w *worker) ShutdownWithContext(ctx context.Context) error {
	if !w.started.Load() {
		return errors.WithStack(w.processor.Shutdown(ctx))
	}
	return errors.WithStack(w.Indexer.ShutdownWithContext(ctx))
}
