// Package refundservice manages business logic layer of bulk promoter refunds.
package refundservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/go-petr/promo-ledger/internal/domain"
	"github.com/go-petr/promo-ledger/pkg/cachepkg"
)

// Ledger provides the remote ledger operations needed by the refund service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package refundservice
type Ledger interface {
	ValidateRefund(ctx context.Context, promoterUserID string, amount decimal.Decimal) (domain.RefundCheck, error)
	RefundPromoter(ctx context.Context, arg domain.RefundParams) (domain.RefundReceipt, error)
	GetPromoter(ctx context.Context, userID string) (domain.Promoter, error)
}

// Limits holds the batch-level guards and the concurrency bound.
type Limits struct {
	ConcurrencyLimit int
	MaxItemsPerBatch int
	MaxItemAmount    decimal.Decimal
	MaxBatchTotal    decimal.Decimal
}

// ProgressFunc receives the number of settled commits after every settlement.
type ProgressFunc func(completed, total int)

// Service facilitates bulk refund service layer logic.
type Service struct {
	ledger    Ledger
	limits    Limits
	promoters *cachepkg.Cache[domain.Promoter]
}

// New returns a refund service. The promoter cache instance is owned by the
// service and lives as long as it does.
func New(ledger Ledger, limits Limits, promoters *cachepkg.Cache[domain.Promoter]) *Service {
	return &Service{
		ledger:    ledger,
		limits:    limits,
		promoters: promoters,
	}
}

// Execute dispatches a bulk action to the pipeline.
func (s *Service) Execute(ctx context.Context, action domain.BulkAction, adminID string, onProgress ProgressFunc) (domain.BatchResult, error) {
	switch a := action.(type) {
	case domain.RefundBatchAction:
		return s.Process(ctx, a.Batch, adminID, onProgress)
	case domain.SingleRefundAction:
		batch := domain.Batch{
			Items: []domain.BatchItem{{
				Key:    a.PromoterUserID,
				Amount: a.Amount,
				Reason: a.Reason,
				Status: domain.StatusPending,
			}},
		}

		return s.Process(ctx, batch, adminID, onProgress)
	default:
		return domain.BatchResult{}, domain.ErrUnknownBulkAction
	}
}

// Process runs the two-phase pipeline over the batch: validate every item,
// then commit the validated ones. Item failures are independent and never
// abort the batch; only the batch-level guards return an error, and they are
// checked before any remote call.
func (s *Service) Process(ctx context.Context, batch domain.Batch, adminID string, onProgress ProgressFunc) (domain.BatchResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.BatchResult

	if len(batch.Items) == 0 {
		return result, domain.ErrEmptyBatch
	}

	if len(batch.Items) > s.limits.MaxItemsPerBatch {
		return result, fmt.Errorf("%w: %d items, maximum %d",
			domain.ErrTooManyItems, len(batch.Items), s.limits.MaxItemsPerBatch)
	}

	if total := batch.Total(); total.GreaterThan(s.limits.MaxBatchTotal) {
		return result, fmt.Errorf("%w: total %s, maximum %s",
			domain.ErrBatchTotalExceeded, total, s.limits.MaxBatchTotal)
	}

	items := make([]domain.BatchItem, len(batch.Items))
	copy(items, batch.Items)

	for i := range items {
		switch {
		case items[i].Amount.LessThanOrEqual(decimal.Zero):
			items[i].Status = domain.StatusFailed
			items[i].Error = "amount must be positive"
		case items[i].Amount.GreaterThan(s.limits.MaxItemAmount):
			items[i].Status = domain.StatusFailed
			items[i].Error = fmt.Sprintf("amount exceeds per-item maximum %s", s.limits.MaxItemAmount)
		default:
			items[i].Status = domain.StatusPending
		}
	}

	validated, invalid := s.validateAll(ctx, items)
	l.Info().
		Str("batch_id", batch.ID).
		Int("validated", validated).
		Int("failed", invalid).
		Msg("batch validation settled")

	committed := s.commitAll(ctx, items, adminID, onProgress)
	l.Info().
		Str("batch_id", batch.ID).
		Int("committed", committed).
		Msg("batch commit settled")

	result.TotalProcessed = len(items)

	// Report by original input order, not completion order.
	for i := range items {
		if items[i].Status == domain.StatusCommitted {
			result.Successful = append(result.Successful, items[i])
		} else {
			result.Failed = append(result.Failed, items[i])
		}
	}

	return result, nil
}

// validateAll runs phase one with bounded concurrency. Every goroutine owns
// exactly one item, so items need no locking.
func (s *Service) validateAll(ctx context.Context, items []domain.BatchItem) (validated, failed int) {
	g := new(errgroup.Group)
	g.SetLimit(s.limits.ConcurrencyLimit)

	for i := range items {
		if items[i].Status != domain.StatusPending {
			continue
		}

		if ctx.Err() != nil {
			items[i].Status = domain.StatusFailed
			items[i].Error = "cancelled before validation"

			continue
		}

		item := &items[i]

		g.Go(func() error {
			item.Status = domain.StatusValidating

			check, err := s.ledger.ValidateRefund(ctx, item.Key, item.Amount)
			if err != nil {
				item.Status = domain.StatusFailed
				item.Error = err.Error()

				return nil
			}

			if !check.Valid {
				item.Status = domain.StatusFailed
				item.Error = check.Error

				return nil
			}

			item.Status = domain.StatusValidated

			return nil
		})
	}

	_ = g.Wait() // per-item errors are captured on the items themselves

	for i := range items {
		switch items[i].Status {
		case domain.StatusValidated:
			validated++
		case domain.StatusFailed:
			failed++
		}
	}

	return validated, failed
}

// commitAll runs phase two over the validated items. Commit calls are issued
// on a detached context so that a caller going away never abandons an
// in-flight refund in an ambiguous state; cancellation only stops items that
// have not started yet. The per-call bound comes from the ledger transport.
func (s *Service) commitAll(ctx context.Context, items []domain.BatchItem, adminID string, onProgress ProgressFunc) int {
	l := zerolog.Ctx(ctx)

	total := 0

	for i := range items {
		if items[i].Status == domain.StatusValidated {
			total++
		}
	}

	if total == 0 {
		return 0
	}

	detached := l.WithContext(context.Background())

	var mu sync.Mutex
	completed := 0

	settle := func() {
		mu.Lock()
		defer mu.Unlock()

		completed++
		if onProgress != nil {
			onProgress(completed, total)
		}
	}

	g := new(errgroup.Group)
	g.SetLimit(s.limits.ConcurrencyLimit)

	for i := range items {
		if items[i].Status != domain.StatusValidated {
			continue
		}

		if ctx.Err() != nil {
			items[i].Status = domain.StatusFailed
			items[i].Error = "cancelled before commit"
			settle()

			continue
		}

		item := &items[i]

		g.Go(func() error {
			receipt, err := s.ledger.RefundPromoter(detached, domain.RefundParams{
				PromoterUserID: item.Key,
				Amount:         item.Amount,
				Reason:         item.Reason,
				AdminID:        adminID,
			})
			if err != nil {
				item.Status = domain.StatusFailed
				item.Error = err.Error()
			} else {
				item.Status = domain.StatusCommitted
				item.TransactionID = receipt.TransactionID
			}

			settle()

			return nil
		})
	}

	_ = g.Wait()

	committed := 0

	for i := range items {
		if items[i].Status != domain.StatusCommitted {
			continue
		}

		committed++

		// The committed refund changed the promoter's balance; drop any
		// cached lookup for it.
		s.promoters.Invalidate(cachepkg.Key("promoter", items[i].Key))
	}

	return committed
}

// LookupPromoter returns the promoter record, served from the result cache
// while the entry is fresh.
func (s *Service) LookupPromoter(ctx context.Context, userID string) (domain.Promoter, error) {
	key := cachepkg.Key("promoter", userID)

	if promoter, ok := s.promoters.Get(key); ok {
		return promoter, nil
	}

	promoter, err := s.ledger.GetPromoter(ctx, userID)
	if err != nil {
		return domain.Promoter{}, err
	}

	s.promoters.Put(key, promoter)

	return promoter, nil
}
