// Package domain provides defenitions of all entities.
package domain

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyReference indicates that the provider reference is missing.
	ErrEmptyReference = errors.New("payment reference is required")
	// ErrInvalidConfirmationAmount indicates a zero or negative confirmation amount.
	ErrInvalidConfirmationAmount = errors.New("confirmation amount must be positive")
	// ErrConfirmationRejected indicates that the ledger rejected the confirmation request itself.
	// The payment data must be corrected before trying again.
	ErrConfirmationRejected = errors.New("payment confirmation rejected")
	// ErrConfirmationPending indicates that the provider captured the payment but the
	// ledger did not acknowledge the record within the retry window. Support has to
	// reconcile it manually.
	ErrConfirmationPending = errors.New("payment captured by provider but not yet recorded in ledger")
	// ErrAmountOutOfRange indicates an amount outside the configured bounds.
	ErrAmountOutOfRange = errors.New("amount is outside the allowed range")
)

// PaymentConfirmation holds an externally confirmed payment event.
// It is immutable after creation; the reference is issued by the provider
// and is unique per payment.
type PaymentConfirmation struct {
	Reference      string          `json:"reference"`
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	ProviderResult json.RawMessage `json:"provider_result,omitempty"`
}

// RecordResult is the ledger's answer to a verify-and-record call.
// AlreadyExists reports an idempotent replay: the payment was recorded by an
// earlier attempt and the ledger returned the original outcome.
type RecordResult struct {
	Success       bool            `json:"success"`
	AlreadyExists bool            `json:"already_exists"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	Message       string          `json:"message,omitempty"`
}

// FeeQuote breaks down the charge for a given principal amount.
type FeeQuote struct {
	Principal decimal.Decimal `json:"principal"`
	Fee       decimal.Decimal `json:"fee"`
	Total     decimal.Decimal `json:"total"`
}
