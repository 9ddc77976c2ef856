package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/go-petr/promo-ledger/pkg/cachepkg"
	"github.com/go-petr/promo-ledger/pkg/configpkg"
	"github.com/go-petr/promo-ledger/pkg/feepkg"

	"github.com/go-petr/promo-ledger/internal/domain"
	"github.com/go-petr/promo-ledger/internal/ledgerclient"
	"github.com/go-petr/promo-ledger/internal/middleware"
	"github.com/go-petr/promo-ledger/internal/paymentdelivery"
	"github.com/go-petr/promo-ledger/internal/paymentservice"
	"github.com/go-petr/promo-ledger/internal/refunddelivery"
	"github.com/go-petr/promo-ledger/internal/refundservice"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	server, err := createServer(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	amounts, err := parseAmounts(config)
	if err != nil {
		return nil, err
	}

	ledger := ledgerclient.New(config.LedgerBaseURL, config.LedgerTimeout)

	balances := cachepkg.New[decimal.Decimal](config.CacheTTL, config.CacheCapacity, config.CacheRetain)
	promoters := cachepkg.New[domain.Promoter](config.CacheTTL, config.CacheCapacity, config.CacheRetain)

	withdrawal := feepkg.New(amounts.withdrawalRate, amounts.withdrawalFlat, config.CurrencyPlaces)
	funding := feepkg.New(amounts.fundingRate, amounts.fundingFlat, config.CurrencyPlaces)

	paymentService := paymentservice.New(ledger, balances, paymentservice.Config{
		MaxRetries:     config.ConfirmMaxRetries,
		RetryBaseDelay: config.ConfirmRetryBaseDelay,
		AttemptTimeout: config.ConfirmAttemptTimeout,
	})

	refundService := refundservice.New(ledger, refundservice.Limits{
		ConcurrencyLimit: config.BatchConcurrencyLimit,
		MaxItemsPerBatch: config.MaxItemsPerBatch,
		MaxItemAmount:    amounts.maxItemAmount,
		MaxBatchTotal:    amounts.maxBatchTotal,
	}, promoters)

	paymentHandler := paymentdelivery.NewHandler(paymentService, withdrawal, funding, amounts.minAmount, amounts.maxAmount)
	refundHandler := refunddelivery.NewHandler(refundService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/payments/confirmations", paymentHandler.Confirm)
	server.GET("/fees/withdrawal", paymentHandler.WithdrawalQuote)
	server.GET("/fees/funding", paymentHandler.FundingQuote)
	server.GET("/fees/max-withdrawable", paymentHandler.MaxWithdrawable)

	adminRoutes := server.Group("/").Use(middleware.AdminAuth())

	adminRoutes.POST("/refunds/batches", refundHandler.CreateBatch)
	adminRoutes.POST("/refunds/imports", refundHandler.ImportBatch)
	adminRoutes.GET("/promoters/:id", refundHandler.GetPromoter)

	return server, nil
}

type amounts struct {
	withdrawalRate decimal.Decimal
	withdrawalFlat decimal.Decimal
	fundingRate    decimal.Decimal
	fundingFlat    decimal.Decimal
	minAmount      decimal.Decimal
	maxAmount      decimal.Decimal
	maxItemAmount  decimal.Decimal
	maxBatchTotal  decimal.Decimal
}

func parseAmounts(config configpkg.Config) (amounts, error) {
	var (
		a   amounts
		err error
	)

	for _, field := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"WITHDRAWAL_FEE_RATE", config.WithdrawalFeeRate, &a.withdrawalRate},
		{"WITHDRAWAL_FLAT_FEE", config.WithdrawalFlatFee, &a.withdrawalFlat},
		{"FUNDING_FEE_RATE", config.FundingFeeRate, &a.fundingRate},
		{"FUNDING_FLAT_FEE", config.FundingFlatFee, &a.fundingFlat},
		{"MIN_AMOUNT", config.MinAmount, &a.minAmount},
		{"MAX_AMOUNT", config.MaxAmount, &a.maxAmount},
		{"MAX_ITEM_AMOUNT", config.MaxItemAmount, &a.maxItemAmount},
		{"MAX_BATCH_TOTAL", config.MaxBatchTotal, &a.maxBatchTotal},
	} {
		*field.dst, err = decimal.NewFromString(field.value)
		if err != nil {
			return a, fmt.Errorf("parsing %s: %w", field.name, err)
		}
	}

	return a, nil
}
