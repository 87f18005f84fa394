package datasources

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/internal/subscription"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/gaze-network/tokensale/pkg/parquetutils"
	ethcommon "github.com/luxfi/geth/common"
	cstream "github.com/planxnx/concurrent-stream"
	"github.com/samber/lo"
)

const (
	partFilePrefix = "part-"
	partFileSuffix = ".parquet"

	partDownloadConcurrency = 4
)

var _ Datasource[*types.Block] = (*S3Parquet)(nil)

type S3ParquetConfig struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`

	// Endpoint overrides the S3 endpoint, for self-hosted object stores.
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
	Anonymous    bool   `mapstructure:"anonymous"`
}

// S3Parquet reads the call journal from parquet part files in an S3 bucket.
//
// Part files are named part-<from>-<to>.parquet, where from and to are the
// inclusive block heights the file covers. Each row is one call; a row with an
// empty method and recipient only carries its block header.
type S3Parquet struct {
	s3Client *s3.Client
	bucket   string
	prefix   string
}

func NewS3Parquet(ctx context.Context, conf S3ParquetConfig) (*S3Parquet, error) {
	if conf.Bucket == "" {
		return nil, errors.Wrap(errs.InvalidArgument, "s3 bucket is required")
	}
	var opts []func(*config.LoadOptions) error
	if conf.Region != "" {
		opts = append(opts, config.WithRegion(conf.Region))
	}
	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "can't load aws user config")
	}

	s3client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
		if conf.Anonymous {
			o.Credentials = aws.AnonymousCredentials{}
		}
	})

	return &S3Parquet{
		s3Client: s3client,
		bucket:   conf.Bucket,
		prefix:   strings.TrimSuffix(conf.Prefix, "/"),
	}, nil
}

func (S3Parquet) Name() string {
	return "s3_parquet"
}

func (d *S3Parquet) Fetch(ctx context.Context, from, to int64) ([]*types.Block, error) {
	blocks, err := collect[*types.Block](ctx, d, from, to)
	return blocks, errors.WithStack(err)
}

func (d *S3Parquet) FetchAsync(ctx context.Context, from, to int64, ch chan<- []*types.Block) (*subscription.ClientSubscription[[]*types.Block], error) {
	ctx = logger.WithContext(ctx,
		slogx.String("package", "datasources"),
		slogx.String("datasource", d.Name()),
	)

	keys, err := d.listPartFiles(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list part files")
	}
	parts := lo.Filter(parsePartFiles(keys), func(p partFile, _ int) bool {
		return p.to >= from && (to < 0 || p.from <= to)
	})

	subscription := subscription.NewSubscription(ch)
	if len(parts) == 0 {
		if err := subscription.Finish(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to finish subscription")
		}
		return subscription.Client(), nil
	}

	// Create parallel stream, results come out in submission order
	out := make(chan partResult)
	stream := cstream.NewStream(ctx, partDownloadConcurrency, out)

	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	// Fan-out blocks to subscription channel. After a failure the remaining
	// results are drained so the stream can finish.
	go func() {
		failed := false
		for result := range out {
			if failed {
				continue
			}
			if result.err != nil {
				failed = true
				logger.ErrorContext(ctx, "Failed to read part file", slogx.String("key", result.key), slogx.Error(result.err))
				if err := subscription.SendError(ctx, errors.Wrapf(result.err, "part file %q", result.key)); err != nil {
					logger.WarnContext(ctx, "Failed to send datasource error to subscription client", slogx.Error(err))
				}
				continue
			}
			blocks := lo.Filter(result.blocks, func(b *types.Block, _ int) bool {
				return inRange(b.Header.Height, from, to)
			})
			for _, chunk := range lo.Chunk(blocks, FetchBatchSize) {
				if err := subscription.Send(ctx, chunk); err != nil {
					if !errors.Is(err, errs.Closed) {
						logger.WarnContext(ctx, "Failed to send blocks to subscription client",
							slogx.Int64("start", chunk[0].Header.Height),
							slogx.Int64("end", chunk[len(chunk)-1].Header.Height),
							slogx.Error(err),
						)
					}
					failed = true
					break
				}
			}
		}
		if failed {
			return
		}
		if err := subscription.Finish(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to finish subscription", slogx.Error(err))
		}
	}()

	// Download part files concurrently until all are read or the subscription is done
	go func() {
		defer stream.Close()
		done := subscription.Done()
		for _, part := range parts {
			part := part
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			default:
				stream.Go(func() partResult {
					data, err := d.downloadFile(ctx, part.key)
					if err != nil {
						return partResult{key: part.key, err: err}
					}
					rows, err := parquetutils.ReadAll[CallRow](parquetutils.NewBufferFile(data))
					if err != nil {
						return partResult{key: part.key, err: err}
					}
					blocks, err := BlocksFromRows(rows)
					return partResult{key: part.key, blocks: blocks, err: err}
				})
			}
		}
	}()

	return subscription.Client(), nil
}

type partResult struct {
	key    string
	blocks []*types.Block
	err    error
}

type partFile struct {
	key      string
	from, to int64
}

// parsePartFiles keeps well-formed part file keys, sorted by starting height.
func parsePartFiles(keys []string) []partFile {
	parts := make([]partFile, 0, len(keys))
	for _, key := range keys {
		name := path.Base(key)
		if !strings.HasPrefix(name, partFilePrefix) || !strings.HasSuffix(name, partFileSuffix) {
			continue
		}
		var p partFile
		if _, err := fmt.Sscanf(strings.TrimSuffix(name, partFileSuffix), partFilePrefix+"%d-%d", &p.from, &p.to); err != nil || p.from > p.to {
			continue
		}
		p.key = key
		parts = append(parts, p)
	}
	slices.SortFunc(parts, func(a, b partFile) int {
		return cmp.Compare(a.from, b.from)
	})
	return parts
}

// PartFileName returns the object name for a part covering [from, to].
func PartFileName(from, to int64) string {
	return fmt.Sprintf("%s%012d-%012d%s", partFilePrefix, from, to, partFileSuffix)
}

func (d *S3Parquet) listPartFiles(ctx context.Context) ([]string, error) {
	prefix := d.prefix
	if prefix != "" {
		prefix += "/"
	}
	paginator := s3.NewListObjectsV2Paginator(d.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(d.bucket),
		Prefix: aws.String(prefix),
	})

	keys := make([]string, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "can't list s3 bucket objects for bucket %q and prefix %q", d.bucket, prefix)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}

func (d *S3Parquet) downloadFile(ctx context.Context, key string) ([]byte, error) {
	downloader := manager.NewDownloader(d.s3Client, func(d *manager.Downloader) {
		d.Concurrency = 8
		d.PartSize = 10 * 1024 * 1024
	})

	buffer := manager.NewWriteAtBuffer([]byte{})
	numBytes, err := downloader.Download(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download file for bucket %q and key %q", d.bucket, key)
	}

	if numBytes < 1 {
		return nil, errors.Wrap(errs.NotFound, "got empty file")
	}

	return buffer.Bytes(), nil
}

// CallRow is one row of a journal part file.
type CallRow struct {
	BlockHeight    int64  `parquet:"name=block_height, type=INT64"`
	BlockHash      string `parquet:"name=block_hash, type=BYTE_ARRAY, convertedtype=UTF8"`
	ParentHash     string `parquet:"name=parent_hash, type=BYTE_ARRAY, convertedtype=UTF8"`
	BlockTimestamp int64  `parquet:"name=block_timestamp, type=INT64"`
	CallIndex      int64  `parquet:"name=call_index, type=INT64"`
	CallHash       string `parquet:"name=call_hash, type=BYTE_ARRAY, convertedtype=UTF8"`
	From           string `parquet:"name=from, type=BYTE_ARRAY, convertedtype=UTF8"`
	To             string `parquet:"name=to, type=BYTE_ARRAY, convertedtype=UTF8"`
	Method         string `parquet:"name=method, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value          string `parquet:"name=value, type=BYTE_ARRAY, convertedtype=UTF8"`
	GasPrice       string `parquet:"name=gas_price, type=BYTE_ARRAY, convertedtype=UTF8"`
	Args           string `parquet:"name=args, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func (r CallRow) headerOnly() bool {
	return r.Method == "" && r.To == ""
}

// BlocksFromRows groups rows into blocks ordered by height, calls ordered by index.
func BlocksFromRows(rows []CallRow) ([]*types.Block, error) {
	slices.SortStableFunc(rows, func(a, b CallRow) int {
		if a.BlockHeight != b.BlockHeight {
			return cmp.Compare(a.BlockHeight, b.BlockHeight)
		}
		return cmp.Compare(a.CallIndex, b.CallIndex)
	})

	blocks := make([]*types.Block, 0)
	var current *types.Block
	for _, row := range rows {
		if current == nil || current.Header.Height != row.BlockHeight {
			if !isHexHash(row.BlockHash) {
				return nil, errors.Wrapf(errs.InvalidArgument, "block %d has invalid hash %q", row.BlockHeight, row.BlockHash)
			}
			current = &types.Block{
				Header: types.BlockHeader{
					Height:     row.BlockHeight,
					Hash:       ethcommon.HexToHash(row.BlockHash),
					ParentHash: ethcommon.HexToHash(row.ParentHash),
					Timestamp:  time.Unix(row.BlockTimestamp, 0).UTC(),
				},
				Calls: make([]*types.Call, 0),
			}
			blocks = append(blocks, current)
		}
		if row.headerOnly() {
			continue
		}
		if !ethcommon.IsHexAddress(row.From) || !ethcommon.IsHexAddress(row.To) {
			return nil, errors.Wrapf(errs.InvalidArgument, "block %d call %d has invalid address", row.BlockHeight, row.CallIndex)
		}
		value, err := parseAmount(row.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d call %d value", row.BlockHeight, row.CallIndex)
		}
		gasPrice, err := parseAmount(row.GasPrice)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d call %d gas price", row.BlockHeight, row.CallIndex)
		}
		var args json.RawMessage
		if row.Args != "" {
			if !json.Valid([]byte(row.Args)) {
				return nil, errors.Wrapf(errs.InvalidArgument, "block %d call %d has invalid args", row.BlockHeight, row.CallIndex)
			}
			args = json.RawMessage(row.Args)
		}
		current.Calls = append(current.Calls, &types.Call{
			Index:    len(current.Calls),
			Hash:     ethcommon.HexToHash(row.CallHash),
			From:     ethcommon.HexToAddress(row.From),
			To:       ethcommon.HexToAddress(row.To),
			Method:   row.Method,
			Value:    value,
			GasPrice: gasPrice,
			Args:     args,
		})
	}
	return blocks, nil
}

// RowsFromBlocks flattens blocks into part file rows. A block without calls becomes one header-only row.
func RowsFromBlocks(blocks []*types.Block) []CallRow {
	rows := make([]CallRow, 0, len(blocks))
	for _, block := range blocks {
		header := CallRow{
			BlockHeight:    block.Header.Height,
			BlockHash:      block.Header.Hash.Hex(),
			ParentHash:     block.Header.ParentHash.Hex(),
			BlockTimestamp: block.Header.Timestamp.Unix(),
		}
		if len(block.Calls) == 0 {
			rows = append(rows, header)
			continue
		}
		for i, call := range block.Calls {
			row := header
			row.CallIndex = int64(i)
			row.CallHash = call.Hash.Hex()
			row.From = call.From.Hex()
			row.To = call.To.Hex()
			row.Method = call.Method
			if call.Value != nil {
				row.Value = call.Value.Dec()
			}
			if call.GasPrice != nil {
				row.GasPrice = call.GasPrice.Dec()
			}
			row.Args = string(call.Args)
			rows = append(rows, row)
		}
	}
	return rows
}

// EncodePart encodes a contiguous run of blocks into a part file and returns its name.
func EncodePart(blocks []*types.Block) (string, []byte, error) {
	if len(blocks) == 0 {
		return "", nil, errors.Wrap(errs.InvalidArgument, "no blocks to encode")
	}
	data, err := parquetutils.WriteAll(RowsFromBlocks(blocks))
	if err != nil {
		return "", nil, errors.WithStack(err)
	}
	return PartFileName(blocks[0].Header.Height, blocks[len(blocks)-1].Header.Height), data, nil
}

// UploadPart writes an encoded part file under the datasource prefix and returns its key.
func (d *S3Parquet) UploadPart(ctx context.Context, name string, data []byte) (string, error) {
	key := name
	if d.prefix != "" {
		key = d.prefix + "/" + name
	}
	uploader := manager.NewUploader(d.s3Client, func(u *manager.Uploader) {
		u.PartSize = 10 * 1024 * 1024
	})
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}); err != nil {
		return "", errors.Wrapf(err, "failed to upload file for bucket %q and key %q", d.bucket, key)
	}
	return key, nil
}

func isHexHash(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 2*ethcommon.HashLength {
		return false
	}
	return lo.EveryBy([]byte(s), func(c byte) bool {
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	})
}
