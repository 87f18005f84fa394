package reportingclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/pkg/httpclient"
	"github.com/gaze-network/tokensale/pkg/logger"
	ethcommon "github.com/luxfi/geth/common"
)

type Config struct {
	Disabled bool   `mapstructure:"disabled"`
	BaseURL  string `mapstructure:"base_url"`
	Name     string `mapstructure:"name"`
	// APIURL is the public address of this node's read API, if any.
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ReportingClient struct {
	httpClient *httpclient.Client
	config     Config
}

const defaultTimeout = 10 * time.Second

func New(config Config) (*ReportingClient, error) {
	if config.BaseURL == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "reporting.base_url config is required if reporting is enabled")
	}
	if config.Name == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "reporting.name config is required if reporting is enabled")
	}
	httpClient, err := httpclient.New(config.BaseURL, httpclient.Config{
		Timeout: utils.Default(config.Timeout, defaultTimeout),
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &ReportingClient{
		httpClient: httpClient,
		config:     config,
	}, nil
}

// SubmitBlockReportPayload summarizes one committed journal block.
type SubmitBlockReportPayload struct {
	Type          string         `json:"type"`
	ClientVersion string         `json:"clientVersion"`
	BlockHeight   int64          `json:"blockHeight"`
	BlockHash     ethcommon.Hash `json:"blockHash"`
	Calls         int            `json:"calls"`
	FailedCalls   int            `json:"failedCalls"`
	Events        int            `json:"events"`
	// Raised is the sale's cumulative raised amount in wei after the block.
	Raised string `json:"raised"`
}

func (r *ReportingClient) SubmitBlockReport(ctx context.Context, payload SubmitBlockReportPayload) error {
	if err := r.post(ctx, "/v1/report/block", payload); err != nil {
		return errors.Wrap(err, "can't submit block report")
	}
	logger.DebugContext(ctx, "block report submitted", slog.Any("payload", payload))
	return nil
}

type SubmitNodeReportPayload struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	ClientVersion string `json:"clientVersion"`
	APIURL        string `json:"apiURL,omitempty"`
}

func (r *ReportingClient) SubmitNodeReport(ctx context.Context, module string, version string) error {
	payload := SubmitNodeReportPayload{
		Name:          r.config.Name,
		Type:          module,
		ClientVersion: version,
		APIURL:        r.config.APIURL,
	}
	if err := r.post(ctx, "/v1/report/node", payload); err != nil {
		return errors.Wrap(err, "can't submit node report")
	}
	logger.InfoContext(ctx, "node report submitted", slog.Any("payload", payload))
	return nil
}

func (r *ReportingClient) post(ctx context.Context, path string, payload any) error {
	resp, err := r.httpClient.PostJSON(ctx, path, payload)
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode >= 400 {
		return errors.Errorf("unexpected status %d, body: %q", resp.StatusCode, string(resp.Body))
	}
	return nil
}
