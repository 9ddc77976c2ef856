// Package ledgerclient calls the remote ledger service that actually
// verifies, records and executes money movements. The service is treated
// as a black box; this client only classifies outcomes.
package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/promo-ledger/internal/domain"
)

// Client is an HTTP client for the ledger service. The per-call timeout
// lives on the underlying http.Client so every remote call is bounded
// even when the caller's context has no deadline.
type Client struct {
	base string
	http *http.Client
}

// New returns a ledger client for the given base URL and per-call timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
	}
}

type verifyAndRecordRequest struct {
	UserID         string          `json:"userId"`
	Amount         decimal.Decimal `json:"amount"`
	ProviderResult json.RawMessage `json:"providerResult"`
}

type verifyAndRecordResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	AlreadyExists bool            `json:"alreadyExists"`
}

// VerifyAndRecord asks the ledger to verify a provider payment result and
// record it against the user's balance. The ledger is idempotent on the
// provider reference embedded in providerResult.
func (c *Client) VerifyAndRecord(ctx context.Context, userID string, amount decimal.Decimal, providerResult json.RawMessage) (domain.RecordResult, error) {
	var res verifyAndRecordResponse

	req := verifyAndRecordRequest{
		UserID:         userID,
		Amount:         amount,
		ProviderResult: providerResult,
	}

	if err := c.post(ctx, "/wallet/verify-and-record", req, &res); err != nil {
		return domain.RecordResult{}, err
	}

	return domain.RecordResult{
		Success:       res.Success,
		AlreadyExists: res.AlreadyExists,
		NewBalance:    res.NewBalance,
		Message:       res.Message,
	}, nil
}

type validateRefundRequest struct {
	PromoterUserID string          `json:"promoterUserId"`
	Amount         decimal.Decimal `json:"amount"`
}

type validateRefundResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error"`
}

// ValidateRefund asks the ledger whether a refund of the given amount can
// be committed for the promoter.
func (c *Client) ValidateRefund(ctx context.Context, promoterUserID string, amount decimal.Decimal) (domain.RefundCheck, error) {
	var res validateRefundResponse

	req := validateRefundRequest{
		PromoterUserID: promoterUserID,
		Amount:         amount,
	}

	if err := c.post(ctx, "/financial/refund/validate", req, &res); err != nil {
		return domain.RefundCheck{}, err
	}

	return domain.RefundCheck{Valid: res.Valid, Error: res.Error}, nil
}

type refundPromoterRequest struct {
	PromoterUserID string            `json:"promoterUserId"`
	Amount         decimal.Decimal   `json:"amount"`
	Reason         string            `json:"reason"`
	AdminID        string            `json:"adminId"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type refundPromoterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		TransactionID string `json:"transactionId"`
	} `json:"data"`
}

// RefundPromoter commits one refund. A 2xx response with success=false is
// terminal: the ledger looked at the request and refused it.
func (c *Client) RefundPromoter(ctx context.Context, arg domain.RefundParams) (domain.RefundReceipt, error) {
	var res refundPromoterResponse

	req := refundPromoterRequest{
		PromoterUserID: arg.PromoterUserID,
		Amount:         arg.Amount,
		Reason:         arg.Reason,
		AdminID:        arg.AdminID,
		Metadata:       arg.Metadata,
	}

	if err := c.post(ctx, "/financial/refund/promoter", req, &res); err != nil {
		return domain.RefundReceipt{}, err
	}

	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "refund not applied"
		}

		return domain.RefundReceipt{}, &domain.RemoteError{
			Op:         "/financial/refund/promoter",
			StatusCode: http.StatusOK,
			Message:    msg,
		}
	}

	return domain.RefundReceipt{TransactionID: res.Data.TransactionID}, nil
}

type promoterResponse struct {
	Data domain.Promoter `json:"data"`
}

// GetPromoter fetches the promoter record used while composing batches.
func (c *Client) GetPromoter(ctx context.Context, userID string) (domain.Promoter, error) {
	var res promoterResponse

	path := "/users/promoters/" + url.PathEscape(userID)
	if err := c.get(ctx, path, &res); err != nil {
		return domain.Promoter{}, err
	}

	return res.Data, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Op: path, Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return &domain.RemoteError{
			Op:         path,
			StatusCode: res.StatusCode,
			Message:    errorMessage(res),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &domain.RemoteError{Op: path, Message: fmt.Sprintf("decode response: %v", err)}
	}

	return nil
}

// errorMessage pulls a human readable message out of an error response body.
func errorMessage(res *http.Response) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}

		if body.Error != "" {
			return body.Error
		}
	}

	return res.Status
}
