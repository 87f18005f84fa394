package httphandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/types"
	"github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway"
	"github.com/gaze-network/tokensale/modules/tokensale/datagateway/mocks"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/contracts"
	"github.com/gaze-network/tokensale/modules/tokensale/internal/entity"
	"github.com/gaze-network/tokensale/pkg/errorhandler"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	owner     = ethcommon.HexToAddress("0x0000000000000000000000000000000000000001")
	buyer     = ethcommon.HexToAddress("0x00000000000000000000000000000000000000a1")
	tokenAddr = ethcommon.HexToAddress("0x0000000000000000000000000000000000000070")
	lockAddr  = ethcommon.HexToAddress("0x0000000000000000000000000000000000000071")
	saleAddr  = ethcommon.HexToAddress("0x00000000000000000000000000000000000000c5")
	opening   = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
)

type staticContracts struct {
	c *contracts.Contracts
}

func (s staticContracts) Contracts() *contracts.Contracts {
	return s.c
}

func newTestContracts(t *testing.T) *contracts.Contracts {
	t.Helper()
	c, err := contracts.New(context.Background(), config.Config{
		Token: config.TokenConfig{Address: tokenAddr.Hex(), Owner: owner.Hex()},
		Coin: config.CoinConfig{
			Address: "0x00000000000000000000000000000000000000c0",
			Genesis: map[string]string{buyer.Hex(): "10"},
		},
		Crowdsale: config.CrowdsaleConfig{
			Address:       saleAddr.Hex(),
			Owner:         owner.Hex(),
			Wallet:        "0x0000000000000000000000000000000000000002",
			TokenWallet:   owner.Hex(),
			Rate:          "100",
			OpeningTime:   opening.Format(time.RFC3339),
			ClosingTime:   opening.Add(48 * time.Hour).Format(time.RFC3339),
			InitialMaxCap: "0.5",
			MaxGasPrice:   "50",
			Whitelist:     []string{buyer.Hex()},
		},
		Timelocks: []config.TimelockConfig{
			{Address: lockAddr.Hex(), Owner: owner.Hex(), Beneficiary: "0x00000000000000000000000000000000000000b1"},
		},
	})
	require.NoError(t, err)
	return c
}

func apply(t *testing.T, c *contracts.Contracts, call *types.Call) {
	t.Helper()
	_, err := c.Apply(context.Background(), call)
	require.NoError(t, err)
	c.Journal.Drain()
}

func newTestApp(t *testing.T, c *contracts.Contracts) (*fiber.App, *mocks.TokenSaleDataGatewayWithTx) {
	t.Helper()
	dg := mocks.NewTokenSaleDataGatewayWithTx(t)
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(staticContracts{c: c}, dg).Mount(app))
	return app, dg
}

func request[T any](t *testing.T, app *fiber.App, method, path string, body any) (int, HttpResponse[T]) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out HttpResponse[T]
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func TestGetInfo(t *testing.T) {
	app, dg := newTestApp(t, newTestContracts(t))

	block := entity.Block{Height: 12, Hash: ethcommon.HexToHash("0x0c"), Timestamp: opening}
	dg.EXPECT().GetLatestBlock(mock.Anything).Return(block, nil).Once()
	status, resp := request[getInfoResult](t, app, http.MethodGet, "/tokensale/v1/info", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(12), resp.Result.Height)
	assert.Equal(t, block.Hash.Hex(), resp.Result.Hash)

	dg.EXPECT().GetLatestBlock(mock.Anything).Return(entity.Block{}, errors.WithStack(errs.NotFound)).Once()
	status, _ = request[getInfoResult](t, app, http.MethodGet, "/tokensale/v1/info", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetCrowdsale(t *testing.T) {
	c := newTestContracts(t)
	app, _ := newTestApp(t, c)

	t.Run("pre sale", func(t *testing.T) {
		status, resp := request[getCrowdsaleResult](t, app, http.MethodGet, "/tokensale/v1/crowdsale", nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, "PRE_SALE", resp.Result.Phase)
		assert.Zero(t, resp.Result.Stage)
		assert.Nil(t, resp.Result.CurrentMaxCap)
		assert.Equal(t, "100", resp.Result.Rate)
		assert.Equal(t, "0.5", resp.Result.InitialMaxCap.Formatted)
		assert.Equal(t, "50", resp.Result.MaxGasPrice.Formatted)
		assert.Len(t, resp.Result.Stages, 4)
	})

	t.Run("stage 2", func(t *testing.T) {
		c.Clock.Set(opening.Add(30 * time.Hour))
		status, resp := request[getCrowdsaleResult](t, app, http.MethodGet, "/tokensale/v1/crowdsale", nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, "STAGE_2", resp.Result.Phase)
		assert.EqualValues(t, 2, resp.Result.Stage)
		require.NotNil(t, resp.Result.CurrentMaxCap)
		assert.Equal(t, "1000000000000000000", resp.Result.CurrentMaxCap.Value)
	})
}

func TestGetContributions(t *testing.T) {
	c := newTestContracts(t)
	app, _ := newTestApp(t, c)

	args, err := json.Marshal(map[string]any{"spender": saleAddr, "value": "1000000000000000000000"})
	require.NoError(t, err)
	apply(t, c, &types.Call{From: owner, To: tokenAddr, Method: "approve", Args: args})
	c.Clock.Set(opening.Add(time.Hour))
	apply(t, c, &types.Call{From: buyer, To: saleAddr, Value: uint256.NewInt(1e17), GasPrice: uint256.NewInt(1e9)})

	t.Run("single", func(t *testing.T) {
		status, resp := request[contribution](t, app, http.MethodGet, "/tokensale/v1/crowdsale/contributions/"+buyer.Hex(), nil)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, resp.Result.Whitelisted)
		assert.Equal(t, "0.1", resp.Result.Contributed.Formatted)
		require.NotNil(t, resp.Result.Remaining)
		assert.Equal(t, "0.4", resp.Result.Remaining.Formatted)
	})

	t.Run("invalid address", func(t *testing.T) {
		status, _ := request[contribution](t, app, http.MethodGet, "/tokensale/v1/crowdsale/contributions/0x1234", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("batch", func(t *testing.T) {
		body := getContributionsBatchRequest{Addresses: []string{buyer.Hex(), owner.Hex()}}
		status, resp := request[getContributionsBatchResult](t, app, http.MethodPost, "/tokensale/v1/crowdsale/contributions/batch", body)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Result.List, 2)
		assert.Equal(t, buyer.Hex(), resp.Result.List[0].Address)
		assert.Equal(t, "100000000000000000", resp.Result.List[0].Contributed.Value)
		assert.False(t, resp.Result.List[1].Whitelisted)
		assert.Equal(t, "0", resp.Result.List[1].Contributed.Value)
	})

	t.Run("batch validation", func(t *testing.T) {
		testCases := []struct {
			name      string
			addresses []string
		}{
			{name: "empty", addresses: nil},
			{name: "too many", addresses: lo.Times(101, func(int) string { return buyer.Hex() })},
			{name: "invalid", addresses: []string{buyer.Hex(), "not an address"}},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				body := getContributionsBatchRequest{Addresses: tc.addresses}
				status, _ := request[getContributionsBatchResult](t, app, http.MethodPost, "/tokensale/v1/crowdsale/contributions/batch", body)
				assert.Equal(t, http.StatusBadRequest, status)
			})
		}
	})
}

func TestGetTimelocks(t *testing.T) {
	c := newTestContracts(t)
	app, _ := newTestApp(t, c)

	args, err := json.Marshal(map[string]any{"to": lockAddr, "value": "300000000000000000000"})
	require.NoError(t, err)
	apply(t, c, &types.Call{From: owner, To: tokenAddr, Method: "transfer", Args: args})
	c.Clock.Set(opening)
	apply(t, c, &types.Call{From: owner, To: lockAddr, Method: "activateNow"})
	c.Clock.Set(opening.Add(100 * 24 * time.Hour))

	t.Run("list", func(t *testing.T) {
		status, resp := request[getTimelocksResult](t, app, http.MethodGet, "/tokensale/v1/timelocks", nil)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, resp.Result.List, 1)
		lock := resp.Result.List[0]
		assert.True(t, lock.Activated)
		require.NotNil(t, lock.StartTime)
		assert.True(t, opening.Equal(*lock.StartTime))
		assert.Equal(t, "300", lock.Locked.Formatted)
		assert.Equal(t, "100", lock.Releasable.Formatted)
		require.NotNil(t, lock.NextUnlock)
		assert.True(t, opening.Add(270*24*time.Hour).Equal(*lock.NextUnlock))
	})

	t.Run("single", func(t *testing.T) {
		status, resp := request[timelockStatus](t, app, http.MethodGet, "/tokensale/v1/timelocks/"+strings.ToLower(lockAddr.Hex()), nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, lockAddr.Hex(), resp.Result.Address)
	})

	t.Run("unknown", func(t *testing.T) {
		status, _ := request[timelockStatus](t, app, http.MethodGet, "/tokensale/v1/timelocks/"+buyer.Hex(), nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestGetBalances(t *testing.T) {
	app, _ := newTestApp(t, newTestContracts(t))

	status, resp := request[getBalancesResult](t, app, http.MethodGet, "/tokensale/v1/balances/"+owner.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10000000000", resp.Result.Token.Formatted)
	assert.Equal(t, "0", resp.Result.Coin.Value)

	status, resp = request[getBalancesResult](t, app, http.MethodGet, "/tokensale/v1/balances/"+buyer.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10", resp.Result.Coin.Formatted)
}

func TestGetEvents(t *testing.T) {
	app, dg := newTestApp(t, newTestContracts(t))

	event := entity.Event{
		BlockHeight: 3,
		CallIndex:   1,
		Source:      saleAddr,
		Name:        "TokenPurchase",
		Payload:     json.RawMessage(`{"value":"1"}`),
		Timestamp:   opening,
	}
	dg.EXPECT().GetEvents(mock.Anything, datagateway.GetEventsParams{
		Name:   "TokenPurchase",
		Source: &saleAddr,
		Limit:  100,
	}).Return([]entity.Event{event}, nil).Once()

	status, resp := request[getEventsResult](t, app, http.MethodGet, "/tokensale/v1/events?name=TokenPurchase&source="+saleAddr.Hex(), nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Result.List, 1)
	assert.Equal(t, saleAddr.Hex(), resp.Result.List[0].Source)
	assert.JSONEq(t, `{"value":"1"}`, string(resp.Result.List[0].Payload))

	for _, query := range []string{"limit=-1", "limit=5000", "offset=-2", "source=0x12"} {
		t.Run(query, func(t *testing.T) {
			status, _ := request[getEventsResult](t, app, http.MethodGet, "/tokensale/v1/events?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestGetCalls(t *testing.T) {
	app, dg := newTestApp(t, newTestContracts(t))

	call := entity.Call{
		BlockHeight:  4,
		From:         buyer,
		To:           saleAddr,
		Contract:     "crowdsale",
		Method:       "buyTokens",
		Value:        uint256.NewInt(5e17),
		Status:       entity.CallStatusFailed,
		ErrorCode:    "not_whitelisted",
		ErrorMessage: "not whitelisted",
		Timestamp:    opening,
	}
	dg.EXPECT().GetCallsByFrom(mock.Anything, datagateway.GetCallsByFromParams{
		From:   buyer,
		Limit:  10,
		Offset: 20,
	}).Return([]entity.Call{call}, nil).Once()

	status, resp := request[getCallsResult](t, app, http.MethodGet, "/tokensale/v1/calls/"+buyer.Hex()+"?limit=10&offset=20", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Result.List, 1)
	assert.Equal(t, entity.CallStatusFailed, resp.Result.List[0].Status)
	assert.Equal(t, "not_whitelisted", resp.Result.List[0].ErrorCode)
	assert.Equal(t, "0.5", resp.Result.List[0].Value.Formatted)
}

func TestMountWithoutContracts(t *testing.T) {
	dg := mocks.NewTokenSaleDataGatewayWithTx(t)
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	require.NoError(t, New(nil, dg).Mount(app))

	status, _ := request[getCrowdsaleResult](t, app, http.MethodGet, "/tokensale/v1/crowdsale", nil)
	assert.Equal(t, http.StatusNotFound, status)

	dg.EXPECT().GetLatestBlock(mock.Anything).Return(entity.Block{Height: 1}, nil).Once()
	status, resp := request[getInfoResult](t, app, http.MethodGet, "/tokensale/v1/info", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), resp.Result.Height)
}
