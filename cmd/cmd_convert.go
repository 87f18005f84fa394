package cmd

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/datasources"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/internal/config"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type convertCmdOptions struct {
	Journal  string
	Out      string
	PartSize int
	Upload   bool
}

func NewConvertCommand() *cobra.Command {
	opts := &convertCmdOptions{}

	cmd := &cobra.Command{
		Use:     "convert",
		Short:   "Convert a JSON lines journal into parquet part files",
		Example: `tokensale convert --journal ./journal.jsonl --out ./parts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Journal, "journal", "", "Path to the JSON lines journal file")
	flags.StringVar(&opts.Out, "out", "", "Directory to write part files to")
	flags.IntVar(&opts.PartSize, "part-size", 1000, "Number of blocks per part file")
	flags.BoolVar(&opts.Upload, "upload", false, "Upload part files to the configured S3 datasource bucket")

	return cmd
}

func convertHandler(opts *convertCmdOptions, cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if opts.Journal == "" {
		return errors.Wrap(errs.InvalidArgument, "--journal is required")
	}
	if opts.Out == "" && !opts.Upload {
		return errors.Wrap(errs.InvalidArgument, "--out or --upload is required")
	}
	if opts.PartSize <= 0 {
		return errors.Wrap(errs.InvalidArgument, "--part-size must be positive")
	}

	blocks, err := datasources.NewJournalFile(opts.Journal).Fetch(ctx, 0, -1)
	if err != nil {
		return errors.Wrap(err, "can't read journal")
	}

	var bucket *datasources.S3Parquet
	if opts.Upload {
		conf := config.Load()
		bucket, err = datasources.NewS3Parquet(ctx, conf.Modules.TokenSale.Datasource.S3)
		if err != nil {
			return errors.Wrap(err, "can't create S3 client")
		}
	}
	if opts.Out != "" {
		if err := os.MkdirAll(opts.Out, 0o755); err != nil {
			return errors.Wrap(err, "can't create output directory")
		}
	}

	for _, part := range lo.Chunk(blocks, opts.PartSize) {
		name, data, err := datasources.EncodePart(part)
		if err != nil {
			return errors.Wrapf(err, "can't encode blocks %d-%d", firstHeight(part), lastHeight(part))
		}
		if opts.Out != "" {
			if err := os.WriteFile(filepath.Join(opts.Out, name), data, 0o644); err != nil {
				return errors.Wrapf(err, "can't write %s", name)
			}
		}
		if bucket != nil {
			if _, err := bucket.UploadPart(ctx, name, data); err != nil {
				return errors.WithStack(err)
			}
		}
		logger.InfoContext(ctx, "Converted journal part",
			slogx.String("part", name),
			slogx.Int("blocks", len(part)),
			slogx.Int("bytes", len(data)),
		)
	}
	return nil
}

func firstHeight(blocks []*types.Block) int64 { return blocks[0].Header.Height }

func lastHeight(blocks []*types.Block) int64 { return blocks[len(blocks)-1].Header.Height }
