package tokensale

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/modules/crowdsale"
	"github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway/mocks"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gaze-network/tokensale/pkg/reportingclient"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testOwner     = ethcommon.HexToAddress("0x0000000000000000000000000000000000000001")
	testBuyer     = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a1")
	testToken     = ethcommon.HexToAddress("0x0000000000000000000000000000000000000070")
	testCrowdsale = ethcommon.HexToAddress("0x00000000000000000000000000000000000000c5")
	testOpening   = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
)

func testConfig() config.Config {
	return config.Config{
		Token: config.TokenConfig{Address: testToken.Hex(), Owner: testOwner.Hex()},
		Coin: config.CoinConfig{
			Address: "0x00000000000000000000000000000000000000c0",
			Genesis: map[string]string{testBuyer.Hex(): "10"},
		},
		Crowdsale: config.CrowdsaleConfig{
			Address:       testCrowdsale.Hex(),
			Owner:         testOwner.Hex(),
			Wallet:        "0x0000000000000000000000000000000000000002",
			TokenWallet:   testOwner.Hex(),
			Rate:          "100",
			OpeningTime:   testOpening.Format(time.RFC3339),
			ClosingTime:   testOpening.Add(48 * time.Hour).Format(time.RFC3339),
			InitialMaxCap: "0.5",
			MaxGasPrice:   "50",
			Whitelist:     []string{testBuyer.Hex()},
		},
	}
}

func testBlock(t *testing.T) *types.Block {
	t.Helper()
	args, err := json.Marshal(map[string]any{"spender": testCrowdsale, "value": "1000000000000000000000"})
	require.NoError(t, err)
	return &types.Block{
		Header: types.BlockHeader{
			Height:    0,
			Hash:      ethcommon.HexToHash("0x01"),
			Timestamp: testOpening.Add(time.Hour),
		},
		Calls: []*types.Call{
			{Index: 0, Hash: ethcommon.HexToHash("0xaa"), From: testOwner, To: testToken, Method: "approve", Args: args},
			{Index: 1, Hash: ethcommon.HexToHash("0xbb"), From: testBuyer, To: testCrowdsale, Method: "pause"},
			{Index: 2, Hash: ethcommon.HexToHash("0xcc"), From: testBuyer, To: testCrowdsale, Value: uint256.NewInt(1e17), GasPrice: uint256.NewInt(1e9)},
		},
	}
}

func TestProcess(t *testing.T) {
	ctx := context.Background()
	dg := mocks.NewTokenSaleDataGatewayWithTx(t)
	dgTx := mocks.NewTokenSaleDataGatewayWithTx(t)

	p, err := NewProcessor(ctx, testConfig(), dg, nil, nil)
	require.NoError(t, err)

	block := testBlock(t)
	dg.EXPECT().BeginTokenSaleTx(mock.Anything).Return(dgTx, nil)
	dgTx.EXPECT().CreateBlock(mock.Anything, entity.Block{
		Height:    0,
		Hash:      block.Header.Hash,
		Timestamp: block.Header.Timestamp,
	}).Return(nil)

	var calls []entity.Call
	var events []entity.Event
	dgTx.EXPECT().CreateCall(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, call entity.Call) error {
		calls = append(calls, call)
		return nil
	})
	dgTx.EXPECT().CreateEvents(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, e []entity.Event) error {
		events = append(events, e...)
		return nil
	})
	dgTx.EXPECT().Commit(mock.Anything).Return(nil)
	dgTx.EXPECT().Rollback(mock.Anything).Return(nil)

	require.NoError(t, p.Process(ctx, []*types.Block{block}))

	require.Len(t, calls, 3)
	assert.Equal(t, entity.CallStatusSuccess, calls[0].Status)
	assert.Equal(t, "token", calls[0].Contract)

	assert.Equal(t, entity.CallStatusFailed, calls[1].Status)
	assert.Equal(t, "permission_denied", calls[1].ErrorCode)
	assert.NotEmpty(t, calls[1].ErrorMessage)

	assert.Equal(t, entity.CallStatusSuccess, calls[2].Status, calls[2].ErrorMessage)
	assert.Equal(t, "crowdsale", calls[2].Contract)
	assert.Equal(t, "100000000000000000", calls[2].Value.Dec())

	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
		assert.Equal(t, block.Header.Timestamp, e.Timestamp)
	}
	assert.Equal(t, []string{"Approval", "Transfer", "Transfer", "TokenPurchase"}, names)
	assert.Equal(t, testToken, events[0].Source)
	assert.Equal(t, testCrowdsale, events[3].Source)
	assert.EqualValues(t, 2, events[3].CallIndex)
	assert.EqualValues(t, 2, events[3].Index)

	c := p.Contracts()
	assert.Equal(t, block.Header.Timestamp, c.Clock.Now())
	assert.Equal(t, "10000000000000000000", c.Token.BalanceOf(testBuyer).Dec())
}

func TestProcessReportsBlock(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ctx := context.Background()
			reports := make(chan []byte, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				reports <- body
				w.WriteHeader(status)
			}))
			defer srv.Close()

			reportingClient, err := reportingclient.New(reportingclient.Config{BaseURL: srv.URL, Name: "test"})
			require.NoError(t, err)

			dg := mocks.NewTokenSaleDataGatewayWithTx(t)
			dgTx := mocks.NewTokenSaleDataGatewayWithTx(t)
			p, err := NewProcessor(ctx, testConfig(), dg, reportingClient, nil)
			require.NoError(t, err)

			dg.EXPECT().BeginTokenSaleTx(mock.Anything).Return(dgTx, nil)
			dgTx.EXPECT().CreateBlock(mock.Anything, mock.Anything).Return(nil)
			dgTx.EXPECT().CreateCall(mock.Anything, mock.Anything).Return(nil)
			dgTx.EXPECT().CreateEvents(mock.Anything, mock.Anything).Return(nil)
			dgTx.EXPECT().Commit(mock.Anything).Return(nil)
			dgTx.EXPECT().Rollback(mock.Anything).Return(nil)

			block := testBlock(t)
			require.NoError(t, p.Process(ctx, []*types.Block{block}))

			var report reportingclient.SubmitBlockReportPayload
			require.NoError(t, json.Unmarshal(<-reports, &report))
			assert.Equal(t, reportingclient.SubmitBlockReportPayload{
				Type:          "tokensale",
				ClientVersion: Version,
				BlockHeight:   0,
				BlockHash:     block.Header.Hash,
				Calls:         3,
				FailedCalls:   1,
				Events:        4,
				Raised:        "100000000000000000",
			}, report)
		})
	}
}

func TestProcessStorageFailure(t *testing.T) {
	ctx := context.Background()
	dg := mocks.NewTokenSaleDataGatewayWithTx(t)
	dgTx := mocks.NewTokenSaleDataGatewayWithTx(t)

	p, err := NewProcessor(ctx, testConfig(), dg, nil, nil)
	require.NoError(t, err)

	dg.EXPECT().BeginTokenSaleTx(mock.Anything).Return(dgTx, nil)
	dgTx.EXPECT().CreateBlock(mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	dgTx.EXPECT().Rollback(mock.Anything).Return(nil)

	err = p.Process(ctx, []*types.Block{testBlock(t)})
	assert.ErrorContains(t, err, "connection reset")
}

func TestCurrentBlock(t *testing.T) {
	ctx := context.Background()
	dg := mocks.NewTokenSaleDataGatewayWithTx(t)
	p, err := NewProcessor(ctx, testConfig(), dg, nil, nil)
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		dg.EXPECT().GetLatestBlock(mock.Anything).Return(entity.Block{}, errors.WithStack(errs.NotFound)).Once()
		_, err := p.CurrentBlock(ctx)
		assert.ErrorIs(t, err, errs.NotFound)
	})

	t.Run("latest", func(t *testing.T) {
		block := entity.Block{Height: 9, Hash: ethcommon.HexToHash("0x09"), ParentHash: ethcommon.HexToHash("0x08")}
		dg.EXPECT().GetLatestBlock(mock.Anything).Return(block, nil).Once()
		header, err := p.CurrentBlock(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(9), header.Height)
		assert.Equal(t, block.Hash, header.Hash)
		assert.Equal(t, block.ParentHash, header.ParentHash)
	})
}

func TestRevertData(t *testing.T) {
	ctx := context.Background()
	dg := mocks.NewTokenSaleDataGatewayWithTx(t)
	dgTx := mocks.NewTokenSaleDataGatewayWithTx(t)
	p, err := NewProcessor(ctx, testConfig(), dg, nil, nil)
	require.NoError(t, err)

	t.Run("partial", func(t *testing.T) {
		assert.ErrorIs(t, p.RevertData(ctx, 5), errs.Unsupported)
	})

	t.Run("full", func(t *testing.T) {
		before := p.Contracts()
		before.Clock.Set(testOpening.Add(time.Hour))

		dg.EXPECT().BeginTokenSaleTx(mock.Anything).Return(dgTx, nil)
		dgTx.EXPECT().DeleteBlocksSinceHeight(mock.Anything, int64(0)).Return(nil)
		dgTx.EXPECT().Commit(mock.Anything).Return(nil)
		dgTx.EXPECT().Rollback(mock.Anything).Return(nil)

		require.NoError(t, p.RevertData(ctx, 0))
		after := p.Contracts()
		assert.NotSame(t, before, after)
		assert.True(t, after.Clock.Now().Before(testOpening))
	})
}

func TestShutdown(t *testing.T) {
	ctx := context.Background()
	var closed int
	cleanup := func(context.Context) error {
		closed++
		return nil
	}
	failing := func(context.Context) error {
		return errors.New("pool busy")
	}

	p, err := NewProcessor(ctx, testConfig(), mocks.NewTokenSaleDataGatewayWithTx(t), nil, []func(context.Context) error{cleanup, failing, cleanup})
	require.NoError(t, err)

	err = p.Shutdown(ctx)
	assert.ErrorContains(t, err, "pool busy")
	assert.Equal(t, 2, closed)
}

func TestNewSalePlan(t *testing.T) {
	plan, err := NewSalePlan(context.Background(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, crowdsale.PhasePreSale, plan.Crowdsale.Phase)
	require.NotEmpty(t, plan.Stages)
	assert.Equal(t, crowdsale.Stage1, plan.Stages[0].Stage)
	assert.True(t, plan.Stages[0].Start.Equal(plan.Crowdsale.OpeningTime))
	assert.Len(t, plan.Tranches, 3)
	assert.Empty(t, plan.Timelocks)
}
