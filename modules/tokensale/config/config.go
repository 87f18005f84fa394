package config

import (
	"time"

	"github.com/gaze-network/tokensale/core/datasources"
	"github.com/gaze-network/tokensale/internal/postgres"
)

const (
	DatasourceJournalFile = "journal_file"
	DatasourceS3Parquet   = "s3_parquet"
)

type Config struct {
	// APIHandlers lists the API surfaces to mount. Only "http" is supported.
	APIHandlers []string         `mapstructure:"api_handlers"`
	Postgres    postgres.Config  `mapstructure:"postgres"`
	Datasource  DatasourceConfig `mapstructure:"datasource"`
	Token       TokenConfig      `mapstructure:"token"`
	Coin        CoinConfig       `mapstructure:"coin"`
	Crowdsale   CrowdsaleConfig  `mapstructure:"crowdsale"`
	Timelocks   []TimelockConfig `mapstructure:"timelocks"`
}

type DatasourceConfig struct {
	// Type is "journal_file" or "s3_parquet".
	Type            string                      `mapstructure:"type"`
	Path            string                      `mapstructure:"path"`
	S3              datasources.S3ParquetConfig `mapstructure:"s3"`
	PollingInterval time.Duration               `mapstructure:"polling_interval"`
}

// Amounts below are human readable decimals of an 18 decimals unit, e.g. "0.5".
type TokenConfig struct {
	Address     string `mapstructure:"address"`
	Owner       string `mapstructure:"owner"`
	Name        string `mapstructure:"name"`
	Symbol      string `mapstructure:"symbol"`
	TotalSupply string `mapstructure:"total_supply"`

	// Whitelist may transfer before the token is opened. The crowdsale and
	// timelock addresses are always added.
	Whitelist []string `mapstructure:"whitelist"`
}

type CoinConfig struct {
	// Address receives coin transfer calls. Plain value transfers to accounts do not need it.
	Address string `mapstructure:"address"`

	// Genesis maps account addresses to their starting balance.
	Genesis map[string]string `mapstructure:"genesis"`
}

type CrowdsaleConfig struct {
	Address     string `mapstructure:"address"`
	Owner       string `mapstructure:"owner"`
	Wallet      string `mapstructure:"wallet"`
	TokenWallet string `mapstructure:"token_wallet"`

	// Rate is the number of token units per coin unit.
	Rate string `mapstructure:"rate"`

	// OpeningTime and ClosingTime are RFC 3339 timestamps.
	OpeningTime string `mapstructure:"opening_time"`
	ClosingTime string `mapstructure:"closing_time"`

	InitialMaxCap   string `mapstructure:"initial_max_cap"`
	MinContribution string `mapstructure:"min_contribution"`

	// MaxGasPrice is in gwei.
	MaxGasPrice string   `mapstructure:"max_gas_price"`
	Whitelist   []string `mapstructure:"whitelist"`
}

type TimelockConfig struct {
	Address     string `mapstructure:"address"`
	Owner       string `mapstructure:"owner"`
	Beneficiary string `mapstructure:"beneficiary"`
}
