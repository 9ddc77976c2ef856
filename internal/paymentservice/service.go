// Package paymentservice manages business logic layer of payment confirmations.
package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/promo-ledger/internal/domain"
	"github.com/go-petr/promo-ledger/pkg/cachepkg"
)

// Ledger provides the remote ledger operation needed by the payment service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package paymentservice
type Ledger interface {
	VerifyAndRecord(ctx context.Context, userID string, amount decimal.Decimal, providerResult json.RawMessage) (domain.RecordResult, error)
}

// BalanceCache invalidates cached balance lookups once a payment is recorded.
type BalanceCache interface {
	Invalidate(prefix string) int
}

// Config holds the retry policy for confirmation attempts.
type Config struct {
	MaxRetries     int
	RetryBaseDelay time.Duration
	AttemptTimeout time.Duration
}

// Service facilitates payment confirmation service layer logic.
type Service struct {
	ledger   Ledger
	balances BalanceCache
	config   Config
}

// New returns a payment confirmation service.
func New(ledger Ledger, balances BalanceCache, config Config) *Service {
	return &Service{
		ledger:   ledger,
		balances: balances,
		config:   config,
	}
}

// ConfirmAndRecord submits an externally confirmed payment to the ledger.
//
// The ledger call is retried on transient failures with exponential backoff;
// the ledger itself is idempotent on the provider reference, so a replayed
// request returns the original outcome with AlreadyExists set. A 4xx answer
// stops retrying immediately: the request itself is wrong.
func (s *Service) ConfirmAndRecord(ctx context.Context, conf domain.PaymentConfirmation) (domain.RecordResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.RecordResult

	if strings.TrimSpace(conf.Reference) == "" {
		return result, domain.ErrEmptyReference
	}

	if conf.Amount.LessThanOrEqual(decimal.Zero) {
		return result, domain.ErrInvalidConfirmationAmount
	}

	var lastErr error

	attempts := 1 + s.config.MaxRetries

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := s.config.RetryBaseDelay << (attempt - 2)

			l.Info().
				Str("reference", conf.Reference).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying payment confirmation")

			select {
			case <-ctx.Done():
				return result, fmt.Errorf("%w: %v", domain.ErrConfirmationPending, ctx.Err())
			case <-time.After(delay):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.config.AttemptTimeout)
		res, err := s.ledger.VerifyAndRecord(attemptCtx, conf.UserID, conf.Amount, conf.ProviderResult)
		cancel()

		if err == nil {
			if res.AlreadyExists {
				l.Info().
					Str("reference", conf.Reference).
					Str("user_id", conf.UserID).
					Msg("payment already recorded, idempotent replay")
			} else {
				l.Info().
					Str("reference", conf.Reference).
					Str("user_id", conf.UserID).
					Msg("payment recorded")
			}

			// The recorded payment changed the user's balance; any cached
			// balance view is stale now.
			s.balances.Invalidate(cachepkg.Key("wallet", conf.UserID))

			return res, nil
		}

		var remote *domain.RemoteError
		if errors.As(err, &remote) && !remote.Transient() {
			l.Warn().Err(err).Str("reference", conf.Reference).Send()
			return result, fmt.Errorf("%w: %s", domain.ErrConfirmationRejected, remote.Message)
		}

		l.Warn().Err(err).Str("reference", conf.Reference).Int("attempt", attempt).Send()
		lastErr = err
	}

	// Every attempt failed on a transient error. The provider has already
	// captured the money, so this is a reconciliation case, not a retry case.
	return result, fmt.Errorf("%w after %d attempts: %v", domain.ErrConfirmationPending, attempts, lastErr)
}
