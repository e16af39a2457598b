package config

import (
	"github.com/asi-network/presale-engine/internal/postgres"
	"github.com/asi-network/presale-engine/modules/presale/oracle"
)

// Stage is one pricing tranche. Threshold is the cumulative cap in whole
// tokens; Price is the per-token price in payment token smallest units, as a
// decimal string.
type Stage struct {
	Threshold uint64 `mapstructure:"threshold"`
	Price     string `mapstructure:"price"`
}

// Token describes an in-memory ledger to build at startup. InitialSupply and
// Cap are in whole tokens; a zero cap means uncapped.
type Token struct {
	Name          string `mapstructure:"name"`
	Symbol        string `mapstructure:"symbol"`
	Decimals      uint8  `mapstructure:"decimals"`
	InitialSupply uint64 `mapstructure:"initial_supply"`
	Cap           uint64 `mapstructure:"cap"`
}

type Oracle struct {
	// Source selects the price feed implementation: `http` | `static`.
	Source string `mapstructure:"source"`
	// StaticAnswer is the fixed native/payment price for the static feed, in
	// feed smallest units.
	StaticAnswer uint64                `mapstructure:"static_answer"`
	Decimals     uint8                 `mapstructure:"decimals"`
	HTTP         oracle.HTTPFeedConfig `mapstructure:"http"`
}

type Config struct {
	// Database to store the sale audit trail: `postgres` | `memory`.
	Database    string          `mapstructure:"database"`
	Postgres    postgres.Config `mapstructure:"postgres"`
	APIHandlers []string        `mapstructure:"api_handlers"`

	Owner string `mapstructure:"owner"`
	// Account holds the sale-token reserve and receives stablecoin allowances.
	Account string `mapstructure:"account"`

	// SaleStart and SaleEnd are unix timestamps.
	SaleStart int64   `mapstructure:"sale_start"`
	SaleEnd   int64   `mapstructure:"sale_end"`
	Stages    []Stage `mapstructure:"stages"`

	SaleToken    Token `mapstructure:"sale_token"`
	PaymentToken Token `mapstructure:"payment_token"`
	// NativeDecimals is the native currency precision. Defaults to 18.
	NativeDecimals uint8  `mapstructure:"native_decimals"`
	Oracle         Oracle `mapstructure:"oracle"`
}
