// Package contracts builds the token sale contracts from configuration and
// applies journaled calls to them.
package contracts

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/common/errs"
	"github.com/gaze-network/tokensale/core/clock"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/modules/crowdsale"
	"github.com/gaze-network/tokensale/modules/timelock"
	"github.com/gaze-network/tokensale/modules/token"
	"github.com/gaze-network/tokensale/modules/tokensale/config"
	"github.com/gaze-network/tokensale/pkg/decimals"
	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
	"github.com/samber/lo"
)

const (
	DefaultTokenName   = "Sale Token"
	DefaultTokenSymbol = "SALE"

	// DefaultTotalSupply is 1e10 whole tokens.
	DefaultTotalSupply = "10000000000"

	gweiDecimals = 9
)

type Kind string

const (
	KindToken     Kind = "token"
	KindCoin      Kind = "coin"
	KindCrowdsale Kind = "crowdsale"
	KindTimelock  Kind = "timelock"

	// KindAccount is any address that is not a contract. It only accepts plain value transfers.
	KindAccount Kind = "account"
)

// Contracts is one instance of every contract of the sale, sharing a clock and an event journal.
type Contracts struct {
	Clock     *clock.Manual
	Journal   *event.Journal
	Token     *token.Token
	Coin      *token.Coin
	Crowdsale *crowdsale.Crowdsale
	Timelocks map[ethcommon.Address]*timelock.Timelock

	coinAddress ethcommon.Address
}

// New builds the contracts at their initial state. Events emitted during construction are discarded.
func New(ctx context.Context, conf config.Config) (*Contracts, error) {
	p, err := parseConfig(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	journal := event.NewJournal()
	clk := clock.NewManual(p.crowdsale.OpeningTime.Add(-time.Second))

	tokenWhitelist := append([]ethcommon.Address{p.crowdsale.Address}, lo.Map(p.timelocks, func(t timelock.Config, _ int) ethcommon.Address {
		return t.Address
	})...)
	p.token.Whitelist = lo.Uniq(append(p.token.Whitelist, tokenWhitelist...))
	tok, err := token.New(ctx, p.token, journal.Source(p.token.Address.Hex()))
	if err != nil {
		return nil, errors.Wrap(err, "can't create token")
	}

	coin := token.NewCoin(p.genesis, journal.Source(p.coinAddress.Hex()))

	sale, err := crowdsale.New(p.crowdsale, clk, tok, coin, journal.Source(p.crowdsale.Address.Hex()))
	if err != nil {
		return nil, errors.Wrap(err, "can't create crowdsale")
	}

	timelocks := make(map[ethcommon.Address]*timelock.Timelock, len(p.timelocks))
	for _, tc := range p.timelocks {
		if _, ok := timelocks[tc.Address]; ok {
			return nil, errors.Wrapf(errs.InvalidArgument, "duplicate timelock %s", tc.Address)
		}
		lock, err := timelock.New(tc, clk, tok, journal.Source(tc.Address.Hex()))
		if err != nil {
			return nil, errors.Wrapf(err, "can't create timelock %s", tc.Address)
		}
		timelocks[tc.Address] = lock
	}

	c := &Contracts{
		Clock:       clk,
		Journal:     journal,
		Token:       tok,
		Coin:        coin,
		Crowdsale:   sale,
		Timelocks:   timelocks,
		coinAddress: p.coinAddress,
	}
	if err := c.checkDistinctAddresses(); err != nil {
		return nil, errors.WithStack(err)
	}

	genesis := journal.Drain()
	logger.DebugContext(ctx, "Contracts created",
		slogx.Int("genesis_events", len(genesis)),
		slogx.Int("timelocks", len(timelocks)),
	)
	return c, nil
}

// KindOf resolves which contract lives at addr.
func (c *Contracts) KindOf(addr ethcommon.Address) Kind {
	switch addr {
	case c.Token.Address():
		return KindToken
	case c.Crowdsale.Address():
		return KindCrowdsale
	}
	if c.hasCoinContract() && addr == c.coinAddress {
		return KindCoin
	}
	if _, ok := c.Timelocks[addr]; ok {
		return KindTimelock
	}
	return KindAccount
}

// CoinAddress is the zero address when no coin contract is configured.
func (c *Contracts) CoinAddress() ethcommon.Address {
	return c.coinAddress
}

func (c *Contracts) hasCoinContract() bool {
	return c.coinAddress != (ethcommon.Address{})
}

// TimelockAddresses returns the timelock addresses in ascending order.
func (c *Contracts) TimelockAddresses() []ethcommon.Address {
	addrs := lo.Keys(c.Timelocks)
	slices.SortFunc(addrs, func(a, b ethcommon.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	return addrs
}

func (c *Contracts) checkDistinctAddresses() error {
	addrs := append([]ethcommon.Address{c.Token.Address(), c.Crowdsale.Address()}, lo.Keys(c.Timelocks)...)
	if c.hasCoinContract() {
		addrs = append(addrs, c.coinAddress)
	}
	if dup := lo.FindDuplicates(addrs); len(dup) > 0 {
		return errors.Wrapf(errs.InvalidArgument, "contract address %s is used twice", dup[0])
	}
	return nil
}

type params struct {
	token       token.Config
	coinAddress ethcommon.Address
	genesis     map[ethcommon.Address]*uint256.Int
	crowdsale   crowdsale.Config
	timelocks   []timelock.Config
}

func parseConfig(conf config.Config) (params, error) {
	var (
		p    params
		errl []error
	)
	addr := func(field, s string) ethcommon.Address {
		a, err := ParseAddress(s)
		if err != nil {
			errl = append(errl, errors.Wrap(err, field))
		}
		return a
	}
	addrs := func(field string, list []string) []ethcommon.Address {
		return lo.Map(list, func(s string, i int) ethcommon.Address {
			return addr(field, s)
		})
	}
	units := func(field, s, fallback string, unitDecimals uint16) *uint256.Int {
		if strings.TrimSpace(s) == "" {
			s = fallback
		}
		v, err := decimals.ParseUnits(s, unitDecimals)
		if err != nil {
			errl = append(errl, errors.Wrap(err, field))
		}
		return v
	}
	timestamp := func(field, s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			errl = append(errl, errors.Wrapf(errs.InvalidArgument, "%s: invalid RFC 3339 time %q", field, s))
		}
		return t.UTC()
	}

	p.token = token.Config{
		Address:     addr("token.address", conf.Token.Address),
		Owner:       addr("token.owner", conf.Token.Owner),
		Name:        lo.Ternary(conf.Token.Name != "", conf.Token.Name, DefaultTokenName),
		Symbol:      lo.Ternary(conf.Token.Symbol != "", conf.Token.Symbol, DefaultTokenSymbol),
		Decimals:    decimals.Ether,
		TotalSupply: units("token.total_supply", conf.Token.TotalSupply, DefaultTotalSupply, decimals.Ether),
		Whitelist:   addrs("token.whitelist", conf.Token.Whitelist),
	}

	// without a coin contract only plain value transfers move coin
	if strings.TrimSpace(conf.Coin.Address) != "" {
		p.coinAddress = addr("coin.address", conf.Coin.Address)
	}
	p.genesis = make(map[ethcommon.Address]*uint256.Int, len(conf.Coin.Genesis))
	for account, balance := range conf.Coin.Genesis {
		p.genesis[addr("coin.genesis", account)] = units("coin.genesis."+account, balance, "", decimals.Ether)
	}

	p.crowdsale = crowdsale.Config{
		Address:         addr("crowdsale.address", conf.Crowdsale.Address),
		Owner:           addr("crowdsale.owner", conf.Crowdsale.Owner),
		Wallet:          addr("crowdsale.wallet", conf.Crowdsale.Wallet),
		TokenWallet:     addr("crowdsale.token_wallet", conf.Crowdsale.TokenWallet),
		Rate:            units("crowdsale.rate", conf.Crowdsale.Rate, "", 0),
		OpeningTime:     timestamp("crowdsale.opening_time", conf.Crowdsale.OpeningTime),
		ClosingTime:     timestamp("crowdsale.closing_time", conf.Crowdsale.ClosingTime),
		InitialMaxCap:   units("crowdsale.initial_max_cap", conf.Crowdsale.InitialMaxCap, "", decimals.Ether),
		MinContribution: units("crowdsale.min_contribution", conf.Crowdsale.MinContribution, "0", decimals.Ether),
		MaxGasPrice:     units("crowdsale.max_gas_price", conf.Crowdsale.MaxGasPrice, "", gweiDecimals),
		Whitelist:       addrs("crowdsale.whitelist", conf.Crowdsale.Whitelist),
	}

	p.timelocks = lo.Map(conf.Timelocks, func(t config.TimelockConfig, i int) timelock.Config {
		return timelock.Config{
			Address:     addr("timelocks.address", t.Address),
			Owner:       addr("timelocks.owner", t.Owner),
			Beneficiary: addr("timelocks.beneficiary", t.Beneficiary),
		}
	})

	if len(errl) > 0 {
		return params{}, errors.Wrap(errors.Join(errl...), "invalid tokensale config")
	}
	return p, nil
}

// ParseAddress parses a 0x-prefixed or bare hex address.
func ParseAddress(s string) (ethcommon.Address, error) {
	s = strings.TrimSpace(s)
	if !ethcommon.IsHexAddress(s) {
		return ethcommon.Address{}, errors.Wrapf(errs.InvalidArgument, "invalid address %q", s)
	}
	return ethcommon.HexToAddress(s), nil
}
