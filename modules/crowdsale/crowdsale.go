// Package crowdsale implements a staged, whitelisted token sale.
//
// Purchases are open between the opening and closing times. The per-beneficiary
// cap starts at the initial max cap and doubles at each stage boundary.
package crowdsale

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/tokensale/core/access"
	"github.com/gaze-network/tokensale/core/clock"
	"github.com/gaze-network/tokensale/core/event"
	"github.com/gaze-network/tokensale/core/ledger"
	"github.com/holiman/uint256"
	ethcommon "github.com/luxfi/geth/common"
)

type Crowdsale struct {
	mu sync.RWMutex

	address     ethcommon.Address
	wallet      ethcommon.Address
	tokenWallet ethcommon.Address
	openingTime time.Time
	closingTime time.Time

	rate            *uint256.Int
	initialMaxCap   *uint256.Int
	minContribution *uint256.Int
	maxGasPrice     *uint256.Int

	contributions map[ethcommon.Address]*uint256.Int
	raised        *uint256.Int

	clock     clock.Clock
	token     ledger.Ledger
	funds     ledger.Funds
	ownable   *access.Ownable
	pausable  *access.Pausable
	whitelist *access.Whitelist
	emitter   event.Emitter
}

func New(cfg Config, clk clock.Clock, token ledger.Ledger, funds ledger.Funds, emitter event.Emitter) (*Crowdsale, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if clk == nil || token == nil || funds == nil {
		return nil, errors.New("clock, token and funds are required")
	}
	minContribution := new(uint256.Int)
	if cfg.MinContribution != nil {
		minContribution.Set(cfg.MinContribution)
	}

	return &Crowdsale{
		address:         cfg.Address,
		wallet:          cfg.Wallet,
		tokenWallet:     cfg.TokenWallet,
		openingTime:     cfg.OpeningTime,
		closingTime:     cfg.ClosingTime,
		rate:            new(uint256.Int).Set(cfg.Rate),
		initialMaxCap:   new(uint256.Int).Set(cfg.InitialMaxCap),
		minContribution: minContribution,
		maxGasPrice:     new(uint256.Int).Set(cfg.MaxGasPrice),
		contributions:   make(map[ethcommon.Address]*uint256.Int),
		raised:          new(uint256.Int),
		clock:           clk,
		token:           token,
		funds:           funds,
		ownable:         access.NewOwnable(cfg.Owner, emitter),
		pausable:        access.NewPausable(emitter),
		whitelist:       access.NewWhitelist(emitter, cfg.Whitelist...),
		emitter:         emitter,
	}, nil
}

func (c *Crowdsale) Address() ethcommon.Address     { return c.address }
func (c *Crowdsale) Wallet() ethcommon.Address      { return c.wallet }
func (c *Crowdsale) TokenWallet() ethcommon.Address { return c.tokenWallet }
func (c *Crowdsale) OpeningTime() time.Time         { return c.openingTime }
func (c *Crowdsale) ClosingTime() time.Time         { return c.closingTime }

func (c *Crowdsale) MinContribution() *uint256.Int {
	return new(uint256.Int).Set(c.minContribution)
}

func (c *Crowdsale) MaxGasPrice() *uint256.Int {
	return new(uint256.Int).Set(c.maxGasPrice)
}

func (c *Crowdsale) Rate() *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(uint256.Int).Set(c.rate)
}

func (c *Crowdsale) InitialMaxCap() *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(uint256.Int).Set(c.initialMaxCap)
}

func (c *Crowdsale) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pausable.Paused()
}

func (c *Crowdsale) Owner() ethcommon.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ownable.Owner()
}

func (c *Crowdsale) IsWhitelisted(addr ethcommon.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.whitelist.Contains(addr)
}

func (c *Crowdsale) Whitelist() []ethcommon.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.whitelist.Members()
}

// UserContribution returns the cumulative currency raised from addr.
func (c *Crowdsale) UserContribution(addr ethcommon.Address) *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(uint256.Int).Set(c.contributionOf(addr))
}

func (c *Crowdsale) Raised() *uint256.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(uint256.Int).Set(c.raised)
}

// RemainingTokens is how many tokens the sale can still pay out.
func (c *Crowdsale) RemainingTokens() *uint256.Int {
	balance := c.token.BalanceOf(c.tokenWallet)
	allowance := c.token.Allowance(c.tokenWallet, c.address)
	if allowance.Lt(balance) {
		return allowance
	}
	return balance
}

func (c *Crowdsale) CurrentStageIndex() (Stage, error) {
	stage, err := StageAt(c.clock.Now(), c.openingTime, c.closingTime)
	return stage, errors.WithStack(err)
}

func (c *Crowdsale) CurrentMaxCap() (*uint256.Int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentMaxCap(c.clock.Now())
}

func (c *Crowdsale) HasClosed() bool {
	return c.clock.Now().After(c.closingTime)
}

func (c *Crowdsale) IsOpen() bool {
	now := c.clock.Now()
	return !now.Before(c.openingTime) && !now.After(c.closingTime)
}

func (c *Crowdsale) Phase() Phase {
	return PhaseAt(c.clock.Now(), c.openingTime, c.closingTime)
}

// Snapshot is a consistent view of the sale at one instant.
type Snapshot struct {
	Address         ethcommon.Address
	Owner           ethcommon.Address
	Wallet          ethcommon.Address
	TokenWallet     ethcommon.Address
	OpeningTime     time.Time
	ClosingTime     time.Time
	Now             time.Time
	Phase           Phase
	Stage           Stage // zero outside the sale window
	Rate            *uint256.Int
	InitialMaxCap   *uint256.Int
	CurrentMaxCap   *uint256.Int // nil outside the sale window
	MinContribution *uint256.Int
	MaxGasPrice     *uint256.Int
	Raised          *uint256.Int
	RemainingTokens *uint256.Int
	Paused          bool
	WhitelistSize   int
}

func (c *Crowdsale) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	s := Snapshot{
		Address:         c.address,
		Owner:           c.ownable.Owner(),
		Wallet:          c.wallet,
		TokenWallet:     c.tokenWallet,
		OpeningTime:     c.openingTime,
		ClosingTime:     c.closingTime,
		Now:             now,
		Phase:           PhaseAt(now, c.openingTime, c.closingTime),
		Rate:            new(uint256.Int).Set(c.rate),
		InitialMaxCap:   new(uint256.Int).Set(c.initialMaxCap),
		MinContribution: new(uint256.Int).Set(c.minContribution),
		MaxGasPrice:     new(uint256.Int).Set(c.maxGasPrice),
		Raised:          new(uint256.Int).Set(c.raised),
		RemainingTokens: c.RemainingTokens(),
		Paused:          c.pausable.Paused(),
		WhitelistSize:   c.whitelist.Len(),
	}
	if stage, err := StageAt(now, c.openingTime, c.closingTime); err == nil {
		s.Stage = stage
		s.CurrentMaxCap, _ = MaxCap(c.initialMaxCap, stage)
	}
	return s
}

// currentMaxCap requires the read or write lock.
func (c *Crowdsale) currentMaxCap(now time.Time) (*uint256.Int, error) {
	stage, err := StageAt(now, c.openingTime, c.closingTime)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	maxCap, err := MaxCap(c.initialMaxCap, stage)
	return maxCap, errors.WithStack(err)
}

func (c *Crowdsale) contributionOf(addr ethcommon.Address) *uint256.Int {
	if v, ok := c.contributions[addr]; ok {
		return v
	}
	return new(uint256.Int)
}

func (c *Crowdsale) beforeOpening() bool {
	return c.clock.Now().Before(c.openingTime)
}
