// Package paymentdelivery manages delivery layer of payment confirmations and fee quotes.
package paymentdelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/promo-ledger/internal/domain"
	"github.com/go-petr/promo-ledger/pkg/errorspkg"
	"github.com/go-petr/promo-ledger/pkg/feepkg"
	"github.com/go-petr/promo-ledger/pkg/web"
)

// Service provides service layer interface needed by payment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package paymentdelivery
type Service interface {
	ConfirmAndRecord(ctx context.Context, conf domain.PaymentConfirmation) (domain.RecordResult, error)
}

// Handler facilitates payment delivery layer logic.
type Handler struct {
	service    Service
	withdrawal feepkg.Schedule
	funding    feepkg.Schedule
	minAmount  decimal.Decimal
	maxAmount  decimal.Decimal
}

// NewHandler returns payment handler.
func NewHandler(ps Service, withdrawal, funding feepkg.Schedule, minAmount, maxAmount decimal.Decimal) Handler {
	return Handler{
		service:    ps,
		withdrawal: withdrawal,
		funding:    funding,
		minAmount:  minAmount,
		maxAmount:  maxAmount,
	}
}

type confirmRequest struct {
	Reference      string          `json:"reference" binding:"required"`
	UserID         string          `json:"user_id" binding:"required"`
	Amount         string          `json:"amount" binding:"required"`
	ProviderResult json.RawMessage `json:"provider_result"`
}

type confirmData struct {
	Result domain.RecordResult `json:"result"`
}

// Confirm handles http request to confirm and record an external payment.
func (h *Handler) Confirm(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req confirmRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidConfirmationAmount))

		return
	}

	result, err := h.service.ConfirmAndRecord(ctx, domain.PaymentConfirmation{
		Reference:      req.Reference,
		UserID:         req.UserID,
		Amount:         amount,
		ProviderResult: req.ProviderResult,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyReference),
			errors.Is(err, domain.ErrInvalidConfirmationAmount):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case errors.Is(err, domain.ErrConfirmationRejected):
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		case errors.Is(err, domain.ErrConfirmationPending):
			gctx.JSON(http.StatusBadGateway, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: confirmData{Result: result}})
}

type quoteRequest struct {
	Amount string `form:"amount" binding:"required"`
}

type quoteData struct {
	Quote domain.FeeQuote `json:"quote"`
}

// WithdrawalQuote handles http request to quote the withdrawal charge for an amount.
func (h *Handler) WithdrawalQuote(gctx *gin.Context) {
	h.quote(gctx, h.withdrawal)
}

// FundingQuote handles http request to quote the funding charge for an amount.
func (h *Handler) FundingQuote(gctx *gin.Context) {
	h.quote(gctx, h.funding)
}

func (h *Handler) quote(gctx *gin.Context, schedule feepkg.Schedule) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req quoteRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if amount.LessThan(h.minAmount) || amount.GreaterThan(h.maxAmount) {
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrAmountOutOfRange))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: quoteData{Quote: schedule.Quote(amount)}})
}

type maxWithdrawableRequest struct {
	Balance string `form:"balance" binding:"required"`
}

type maxWithdrawableData struct {
	MaxAmount decimal.Decimal `json:"max_amount"`
}

// MaxWithdrawable handles http request to derive the maximum withdrawable
// amount from an available balance.
func (h *Handler) MaxWithdrawable(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req maxWithdrawableRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{
		Data: maxWithdrawableData{MaxAmount: h.withdrawal.MaxWithdrawable(balance)},
	})
}
