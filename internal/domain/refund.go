package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyBatch indicates that the batch has no items.
	ErrEmptyBatch = errors.New("no items provided")
	// ErrTooManyItems indicates that the batch exceeds the maximum item count.
	ErrTooManyItems = errors.New("batch exceeds maximum item count")
	// ErrBatchTotalExceeded indicates that the batch total exceeds the allowed maximum.
	ErrBatchTotalExceeded = errors.New("batch exceeds maximum total amount")
	// ErrUnknownBulkAction indicates an unrecognized bulk action kind.
	ErrUnknownBulkAction = errors.New("unknown bulk action")
)

// ItemStatus tracks a batch item through the validate and commit phases.
type ItemStatus string

// All batch item statuses.
const (
	StatusPending    ItemStatus = "pending"
	StatusValidating ItemStatus = "validating"
	StatusValidated  ItemStatus = "validated"
	StatusCommitted  ItemStatus = "committed"
	StatusFailed     ItemStatus = "failed"
)

// BatchItem is one refund to one promoter, tracked independently through
// validation and commit. Only one phase mutates an item at a time.
type BatchItem struct {
	Key           string          `json:"key"`
	Amount        decimal.Decimal `json:"amount"`
	Reason        string          `json:"reason"`
	Status        ItemStatus      `json:"status"`
	Error         string          `json:"error,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
}

// Batch is an ordered sequence of refund items processed as one bulk operation.
type Batch struct {
	ID    string      `json:"id"`
	Items []BatchItem `json:"items"`
}

// Total sums the amounts of all items in the batch.
func (b Batch) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range b.Items {
		total = total.Add(b.Items[i].Amount)
	}

	return total
}

// BatchResult is the final per-item accounting of a processed batch.
// Items appear in their original input order regardless of completion order.
type BatchResult struct {
	TotalProcessed int         `json:"total_processed"`
	Successful     []BatchItem `json:"successful"`
	Failed         []BatchItem `json:"failed"`
}

// RefundParams is the input data for a single promoter refund commit.
type RefundParams struct {
	PromoterUserID string
	Amount         decimal.Decimal
	Reason         string
	AdminID        string
	Metadata       map[string]string
}

// RefundCheck is the ledger's answer to a refund validation call.
type RefundCheck struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// RefundReceipt is the ledger's acknowledgement of a committed refund.
type RefundReceipt struct {
	TransactionID string `json:"transaction_id"`
}

// RefundRow is one structured input row before normalization into a Batch.
type RefundRow struct {
	PromoterUserID string `json:"promoter_user_id"`
	Amount         string `json:"amount"`
	Reason         string `json:"reason"`
}

// Promoter holds the read-mostly promoter data looked up while composing batches.
type Promoter struct {
	UserID  string          `json:"user_id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BulkAction is a closed set of bulk operation kinds, each carrying its own
// typed payload.
type BulkAction interface {
	isBulkAction()
}

// RefundBatchAction executes a whole refund batch.
type RefundBatchAction struct {
	Batch Batch
}

// SingleRefundAction executes one manually entered refund through the same
// validate-then-commit pipeline.
type SingleRefundAction struct {
	PromoterUserID string
	Amount         decimal.Decimal
	Reason         string
}

func (RefundBatchAction) isBulkAction()  {}
func (SingleRefundAction) isBulkAction() {}
