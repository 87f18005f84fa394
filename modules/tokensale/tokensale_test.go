package tokensale

import (
	"context"
	"testing"

	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/datasources"
	tokensaleconfig "github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatasource(t *testing.T) {
	ctx := context.Background()

	t.Run("journal file", func(t *testing.T) {
		ds, err := newDatasource(ctx, tokensaleconfig.DatasourceConfig{Type: "JOURNAL_FILE", Path: "journal.jsonl"})
		require.NoError(t, err)
		assert.IsType(t, &datasources.JournalFile{}, ds)
		assert.Equal(t, "journal_file", ds.Name())
	})

	t.Run("default type", func(t *testing.T) {
		ds, err := newDatasource(ctx, tokensaleconfig.DatasourceConfig{Path: "journal.jsonl"})
		require.NoError(t, err)
		assert.Equal(t, "journal_file", ds.Name())
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := newDatasource(ctx, tokensaleconfig.DatasourceConfig{Type: tokensaleconfig.DatasourceJournalFile})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := newDatasource(ctx, tokensaleconfig.DatasourceConfig{Type: tokensaleconfig.DatasourceS3Parquet})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := newDatasource(ctx, tokensaleconfig.DatasourceConfig{Type: "kafka"})
		assert.ErrorIs(t, err, errs.Unsupported)
	})
}
