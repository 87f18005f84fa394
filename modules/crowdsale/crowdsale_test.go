package crowdsale

import (
	"context"
	"testing"
	"time"

	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/clock"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/modules/token"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	crowdsaleAddress = ethcommon.HexToAddress("0x00000000000000000000000000000000000c0ffe")
	tokenAddress     = ethcommon.HexToAddress("0x000000000000000000000000000000000000c0de")
	tokenWallet      = ethcommon.HexToAddress("0x0000000000000000000000000000000000000100")
	wallet           = ethcommon.HexToAddress("0x0000000000000000000000000000000000000109")
	buyer1           = ethcommon.HexToAddress("0x0000000000000000000000000000000000000101")
	buyer2           = ethcommon.HexToAddress("0x0000000000000000000000000000000000000102")
	stranger         = ethcommon.HexToAddress("0x0000000000000000000000000000000000000103")

	genesis = time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)
)

const day = 24 * time.Hour

func ether(s string) *uint256.Int {
	return uint256.MustFromBig(decimal.RequireFromString(s).Shift(18).BigInt())
}

func gwei(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.NewInt(1_000_000_000))
}

type fixture struct {
	clock     *clock.Manual
	journal   *event.Journal
	token     *token.Token
	coin      *token.Coin
	crowdsale *Crowdsale
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		clock:   clock.NewManual(genesis),
		journal: event.NewJournal(),
	}

	tok, err := token.New(ctx, token.Config{
		Address:     tokenAddress,
		Owner:       tokenWallet,
		Name:        "CelerToken",
		Symbol:      "CELR",
		Decimals:    18,
		TotalSupply: uint256.MustFromDecimal("10000000000000000000000000000"),
		Whitelist:   []ethcommon.Address{crowdsaleAddress},
	}, f.journal.Source("token"))
	require.NoError(t, err)
	f.token = tok
	f.coin = token.NewCoin(map[ethcommon.Address]*uint256.Int{
		buyer1: ether("100"),
		buyer2: ether("100"),
	}, f.journal.Source("coin"))

	f.crowdsale, err = New(Config{
		Address:         crowdsaleAddress,
		Owner:           tokenWallet,
		Rate:            uint256.NewInt(100),
		Wallet:          wallet,
		TokenWallet:     tokenWallet,
		OpeningTime:     genesis.Add(day),
		ClosingTime:     genesis.Add(3 * day),
		InitialMaxCap:   ether("0.5"),
		MinContribution: ether("0.001"),
		MaxGasPrice:     gwei(50),
	}, f.clock, f.token, f.coin, f.journal.Source("crowdsale"))
	require.NoError(t, err)

	require.NoError(t, f.token.Approve(ctx, tokenWallet, crowdsaleAddress, ether("200000000")))
	require.NoError(t, f.crowdsale.AddAddressesToWhitelist(ctx, tokenWallet, []ethcommon.Address{buyer1, buyer2}))
	f.journal.Drain()
	return f
}

func (f *fixture) open() {
	f.clock.Set(genesis.Add(day))
}

func TestNewValidatesConfig(t *testing.T) {
	base := Config{
		Address:       crowdsaleAddress,
		Owner:         tokenWallet,
		Rate:          uint256.NewInt(1),
		Wallet:        wallet,
		TokenWallet:   tokenWallet,
		OpeningTime:   genesis,
		ClosingTime:   genesis.Add(day),
		InitialMaxCap: uint256.NewInt(1),
		MaxGasPrice:   uint256.NewInt(1),
	}
	coin := token.NewCoin(nil, event.Discard)
	tok, err := token.New(context.Background(), token.Config{Address: tokenAddress, Owner: tokenWallet}, event.Discard)
	require.NoError(t, err)

	_, err = New(base, clock.NewManual(genesis), tok, coin, event.Discard)
	assert.NoError(t, err, "zero min contribution is allowed")

	zeroRate := base
	zeroRate.Rate = new(uint256.Int)
	_, err = New(zeroRate, clock.NewManual(genesis), tok, coin, event.Discard)
	assert.ErrorIs(t, err, errs.InvalidArgument)

	inverted := base
	inverted.ClosingTime = inverted.OpeningTime
	_, err = New(inverted, clock.NewManual(genesis), tok, coin, event.Discard)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestBuyTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.open()

	require.NoError(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.5"), gwei(50)))

	assert.Equal(t, ether("50"), f.token.BalanceOf(buyer1))
	assert.Equal(t, ether("0.5"), f.crowdsale.UserContribution(buyer1))
	assert.Equal(t, ether("0.5"), f.coin.BalanceOf(wallet))
	assert.Equal(t, ether("0.5"), f.crowdsale.Raised())
	assert.Equal(t, ether("199999950"), f.token.Allowance(tokenWallet, crowdsaleAddress))

	records := f.journal.Drain()
	assert.Equal(t, []string{"Transfer", "Transfer", "TokenPurchase"}, event.Names(records))
	assert.Equal(t, "crowdsale", records[2].Source)
	assert.Equal(t, TokenPurchase{
		Purchaser:   buyer1,
		Beneficiary: buyer1,
		Value:       ether("0.5"),
		Amount:      ether("50"),
	}, records[2].Event)

	err := f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.001"), gwei(1))
	assert.ErrorIs(t, err, errs.CapExceeded)
}

type brokenFunds struct {
	*token.Coin
}

func (brokenFunds) Transfer(context.Context, ethcommon.Address, ethcommon.Address, *uint256.Int) error {
	return errs.Closed
}

func TestBuyTokensFundsFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.open()

	sale, err := New(Config{
		Address:         crowdsaleAddress,
		Owner:           tokenWallet,
		Rate:            uint256.NewInt(100),
		Wallet:          wallet,
		TokenWallet:     tokenWallet,
		OpeningTime:     genesis.Add(day),
		ClosingTime:     genesis.Add(3 * day),
		InitialMaxCap:   ether("0.5"),
		MinContribution: ether("0.001"),
		MaxGasPrice:     gwei(50),
		Whitelist:       []ethcommon.Address{buyer1},
	}, f.clock, f.token, brokenFunds{f.coin}, f.journal.Source("crowdsale"))
	require.NoError(t, err)
	f.journal.Drain()

	err = sale.BuyTokens(ctx, buyer1, buyer1, ether("0.1"), gwei(10))
	assert.ErrorIs(t, err, errs.InternalError)
	assert.True(t, sale.UserContribution(buyer1).IsZero())
	assert.True(t, sale.Raised().IsZero())
	assert.Equal(t, ether("100"), f.coin.BalanceOf(buyer1))
	assert.NotContains(t, event.Names(f.journal.Drain()), "TokenPurchase")
}

func TestReceive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.open()

	require.NoError(t, f.crowdsale.Receive(ctx, buyer2, ether("0.1"), gwei(10)))
	assert.Equal(t, ether("10"), f.token.BalanceOf(buyer2))
	assert.Equal(t, ether("0.1"), f.crowdsale.UserContribution(buyer2))
}

func TestBuyTokensForAnotherBeneficiary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.open()

	assert.ErrorIs(t, f.crowdsale.BuyTokens(ctx, stranger, buyer2, ether("0.1"), gwei(1)), errs.InsufficientBalance)

	require.NoError(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer2, ether("0.1"), gwei(1)))
	assert.Equal(t, ether("10"), f.token.BalanceOf(buyer2))
	assert.True(t, f.crowdsale.UserContribution(buyer1).IsZero())
	assert.Equal(t, ether("0.1"), f.crowdsale.UserContribution(buyer2))
}

func TestBuyTokensPreconditionOrder(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		setup    func(t *testing.T, f *fixture)
		buyer    ethcommon.Address
		value    *uint256.Int
		gasPrice *uint256.Int
		expected error
	}{
		{
			name: "paused wins over everything",
			setup: func(t *testing.T, f *fixture) {
				require.NoError(t, f.crowdsale.Pause(ctx, tokenWallet))
				f.clock.Set(genesis)
			},
			buyer: stranger, value: ether("0.0009"), gasPrice: gwei(51),
			expected: errs.PausedState,
		},
		{
			name:  "before opening",
			setup: func(t *testing.T, f *fixture) {},
			buyer: stranger, value: ether("0.0009"), gasPrice: gwei(51),
			expected: errs.PhaseViolation,
		},
		{
			name:  "after closing",
			setup: func(t *testing.T, f *fixture) { f.clock.Set(genesis.Add(3*day + time.Second)) },
			buyer: buyer1, value: ether("0.1"), gasPrice: gwei(1),
			expected: errs.PhaseViolation,
		},
		{
			name:  "not whitelisted",
			setup: func(t *testing.T, f *fixture) { f.open() },
			buyer: stranger, value: ether("0.0009"), gasPrice: gwei(51),
			expected: errs.NotWhitelisted,
		},
		{
			name:  "below minimum",
			setup: func(t *testing.T, f *fixture) { f.open() },
			buyer: buyer1, value: ether("0.0009"), gasPrice: gwei(51),
			expected: errs.BelowMinimum,
		},
		{
			name:  "gas price",
			setup: func(t *testing.T, f *fixture) { f.open() },
			buyer: buyer1, value: ether("1"), gasPrice: gwei(51),
			expected: errs.GasPriceExceeded,
		},
		{
			name:  "cap",
			setup: func(t *testing.T, f *fixture) { f.open() },
			buyer: buyer1, value: ether("1"), gasPrice: gwei(50),
			expected: errs.CapExceeded,
		},
		{
			name: "withdrawn allowance",
			setup: func(t *testing.T, f *fixture) {
				f.open()
				require.NoError(t, f.token.Approve(ctx, tokenWallet, crowdsaleAddress, new(uint256.Int)))
				f.journal.Drain()
			},
			buyer: buyer1, value: ether("0.1"), gasPrice: gwei(50),
			expected: errs.InsufficientAllowance,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			tc.setup(t, f)
			f.journal.Drain()
			buyerCoin := f.coin.BalanceOf(tc.buyer)
			allowance := f.token.Allowance(tokenWallet, crowdsaleAddress)

			err := f.crowdsale.BuyTokens(ctx, tc.buyer, tc.buyer, tc.value, tc.gasPrice)
			assert.ErrorIs(t, err, tc.expected)

			assert.Empty(t, f.journal.Records())
			assert.True(t, f.crowdsale.UserContribution(tc.buyer).IsZero())
			assert.True(t, f.crowdsale.Raised().IsZero())
			assert.True(t, f.token.BalanceOf(tc.buyer).IsZero())
			assert.Equal(t, buyerCoin, f.coin.BalanceOf(tc.buyer))
			assert.Equal(t, allowance, f.token.Allowance(tokenWallet, crowdsaleAddress))
		})
	}
}

func TestStagedCaps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.open()

	require.NoError(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.4"), gwei(1)))

	f.clock.Set(genesis.Add(day + Stage2Offset))
	stage, err := f.crowdsale.CurrentStageIndex()
	require.NoError(t, err)
	assert.Equal(t, Stage2, stage)
	maxCap, err := f.crowdsale.CurrentMaxCap()
	require.NoError(t, err)
	assert.Equal(t, ether("1"), maxCap)

	assert.ErrorIs(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.7"), gwei(1)), errs.CapExceeded)
	require.NoError(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.6"), gwei(1)))
	require.NoError(t, f.crowdsale.BuyTokens(ctx, buyer2, buyer2, ether("1"), gwei(1)))

	f.clock.Set(genesis.Add(day + Stage4Offset))
	maxCap, err = f.crowdsale.CurrentMaxCap()
	require.NoError(t, err)
	assert.Equal(t, ether("4"), maxCap)
	require.NoError(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("3"), gwei(1)))
	assert.ErrorIs(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.001"), gwei(1)), errs.CapExceeded)
	assert.Equal(t, ether("4"), f.crowdsale.UserContribution(buyer1))
	assert.Equal(t, ether("5"), f.crowdsale.Raised())

	f.clock.Set(f.crowdsale.ClosingTime())
	assert.True(t, f.crowdsale.IsOpen())
	assert.Equal(t, PhaseStage4, f.crowdsale.Phase())
	f.clock.Advance(time.Second)
	assert.True(t, f.crowdsale.HasClosed())
	assert.Equal(t, PhasePostSale, f.crowdsale.Phase())
	_, err = f.crowdsale.CurrentMaxCap()
	assert.ErrorIs(t, err, errs.PhaseViolation)
}

func TestAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("reset parameters before opening", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.crowdsale.SetRate(ctx, stranger, uint256.NewInt(1)), errs.PermissionDenied)
		assert.ErrorIs(t, f.crowdsale.SetRate(ctx, tokenWallet, new(uint256.Int)), errs.InvalidArgument)
		require.NoError(t, f.crowdsale.SetRate(ctx, tokenWallet, uint256.NewInt(50)))
		require.NoError(t, f.crowdsale.SetInitialMaxCap(ctx, tokenWallet, ether("0.1")))
		assert.Equal(t, uint256.NewInt(50), f.crowdsale.Rate())
		assert.Equal(t, ether("0.1"), f.crowdsale.InitialMaxCap())
		assert.Equal(t, PhasePreSale, f.crowdsale.Phase())
	})

	t.Run("reset parameters during sale", func(t *testing.T) {
		f := newFixture(t)
		f.open()
		assert.ErrorIs(t, f.crowdsale.SetRate(ctx, tokenWallet, uint256.NewInt(50)), errs.PhaseViolation)
		assert.ErrorIs(t, f.crowdsale.SetInitialMaxCap(ctx, tokenWallet, ether("1")), errs.PhaseViolation)
		assert.Equal(t, uint256.NewInt(100), f.crowdsale.Rate())
	})

	t.Run("whitelist during sale", func(t *testing.T) {
		f := newFixture(t)
		f.open()
		require.NoError(t, f.crowdsale.AddAddressToWhitelist(ctx, tokenWallet, stranger))
		require.NoError(t, f.crowdsale.AddAddressToWhitelist(ctx, tokenWallet, stranger))
		require.NoError(t, f.crowdsale.RemoveAddressesFromWhitelist(ctx, tokenWallet, []ethcommon.Address{buyer1, buyer2}))
		assert.Equal(t, []string{"WhitelistAdded", "WhitelistAdded", "WhitelistRemoved", "WhitelistRemoved"}, event.Names(f.journal.Drain()))
		assert.Equal(t, []ethcommon.Address{stranger}, f.crowdsale.Whitelist())
		assert.ErrorIs(t, f.crowdsale.BuyTokens(ctx, buyer1, buyer1, ether("0.1"), gwei(1)), errs.NotWhitelisted)
		assert.ErrorIs(t, f.crowdsale.RemoveAddressFromWhitelist(ctx, stranger, stranger), errs.PermissionDenied)
	})

	t.Run("pause", func(t *testing.T) {
		f := newFixture(t)
		f.open()
		assert.ErrorIs(t, f.crowdsale.Pause(ctx, stranger), errs.PermissionDenied)
		require.NoError(t, f.crowdsale.Pause(ctx, tokenWallet))
		assert.True(t, f.crowdsale.Paused())
		assert.ErrorIs(t, f.crowdsale.Receive(ctx, buyer1, ether("0.1"), gwei(1)), errs.PausedState)
		require.NoError(t, f.crowdsale.AddAddressToWhitelist(ctx, tokenWallet, stranger), "configuration stays available")
		require.NoError(t, f.crowdsale.Unpause(ctx, tokenWallet))
		assert.ErrorIs(t, f.crowdsale.Unpause(ctx, tokenWallet), errs.NotPaused)
		require.NoError(t, f.crowdsale.Receive(ctx, buyer1, ether("0.1"), gwei(1)))
	})

	t.Run("ownership", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.crowdsale.TransferOwnership(ctx, tokenWallet, stranger))
		assert.Equal(t, stranger, f.crowdsale.Owner())
		assert.ErrorIs(t, f.crowdsale.Pause(ctx, tokenWallet), errs.PermissionDenied)
		require.NoError(t, f.crowdsale.RenounceOwnership(ctx, stranger))
		assert.ErrorIs(t, f.crowdsale.Pause(ctx, stranger), errs.PermissionDenied)
	})
}

func TestRemainingTokensAndSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	assert.Equal(t, ether("200000000"), f.crowdsale.RemainingTokens())

	require.NoError(t, f.token.Approve(ctx, tokenWallet, crowdsaleAddress, ether("20000000000")))
	assert.Equal(t, f.token.BalanceOf(tokenWallet), f.crowdsale.RemainingTokens())

	s := f.crowdsale.Snapshot()
	assert.Equal(t, PhasePreSale, s.Phase)
	assert.Zero(t, s.Stage)
	assert.Nil(t, s.CurrentMaxCap)
	assert.Equal(t, 2, s.WhitelistSize)

	f.open()
	s = f.crowdsale.Snapshot()
	assert.Equal(t, Stage1, s.Stage)
	assert.Equal(t, ether("0.5"), s.CurrentMaxCap)
}
