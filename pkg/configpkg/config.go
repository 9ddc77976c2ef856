// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
// Monetary knobs are decimal strings parsed once at startup.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environement  string `mapstructure:"GO_ENV"`

	LedgerBaseURL string        `mapstructure:"LEDGER_BASE_URL"`
	LedgerTimeout time.Duration `mapstructure:"LEDGER_TIMEOUT"`

	WithdrawalFeeRate string `mapstructure:"WITHDRAWAL_FEE_RATE"`
	WithdrawalFlatFee string `mapstructure:"WITHDRAWAL_FLAT_FEE"`
	FundingFeeRate    string `mapstructure:"FUNDING_FEE_RATE"`
	FundingFlatFee    string `mapstructure:"FUNDING_FLAT_FEE"`
	CurrencyPlaces    int32  `mapstructure:"CURRENCY_PLACES"`
	MinAmount         string `mapstructure:"MIN_AMOUNT"`
	MaxAmount         string `mapstructure:"MAX_AMOUNT"`

	ConfirmMaxRetries     int           `mapstructure:"CONFIRM_MAX_RETRIES"`
	ConfirmRetryBaseDelay time.Duration `mapstructure:"CONFIRM_RETRY_BASE_DELAY"`
	ConfirmAttemptTimeout time.Duration `mapstructure:"CONFIRM_ATTEMPT_TIMEOUT"`

	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
	CacheCapacity int           `mapstructure:"CACHE_CAPACITY"`
	CacheRetain   int           `mapstructure:"CACHE_RETAIN"`

	BatchConcurrencyLimit int    `mapstructure:"BATCH_CONCURRENCY_LIMIT"`
	MaxItemsPerBatch      int    `mapstructure:"MAX_ITEMS_PER_BATCH"`
	MaxItemAmount         string `mapstructure:"MAX_ITEM_AMOUNT"`
	MaxBatchTotal         string `mapstructure:"MAX_BATCH_TOTAL"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = viper.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
