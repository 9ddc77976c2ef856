// Package refunddelivery manages delivery layer of bulk promoter refunds.
package refunddelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/promo-ledger/internal/domain"
	"github.com/go-petr/promo-ledger/internal/ingestion"
	"github.com/go-petr/promo-ledger/internal/middleware"
	"github.com/go-petr/promo-ledger/internal/refundservice"
	"github.com/go-petr/promo-ledger/pkg/errorspkg"
	"github.com/go-petr/promo-ledger/pkg/web"
)

// Service provides service layer interface needed by refund delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package refunddelivery
type Service interface {
	Execute(ctx context.Context, action domain.BulkAction, adminID string, onProgress refundservice.ProgressFunc) (domain.BatchResult, error)
	LookupPromoter(ctx context.Context, userID string) (domain.Promoter, error)
}

// Handler facilitates refund delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns refund handler.
func NewHandler(rs Service) Handler {
	return Handler{service: rs}
}

type createBatchRequest struct {
	Items []domain.RefundRow `json:"items" binding:"required,min=1"`
}

type batchData struct {
	BatchID         string             `json:"batch_id"`
	TotalProcessed  int                `json:"total_processed"`
	SuccessfulCount int                `json:"successful_count"`
	FailedCount     int                `json:"failed_count"`
	Successful      []domain.BatchItem `json:"successful"`
	Failed          []domain.BatchItem `json:"failed"`
}

// CreateBatch handles http request to run a structured refund batch.
func (h *Handler) CreateBatch(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createBatchRequest
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

	batch, err := ingestion.FromRows(req.Items)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	h.run(gctx, batch)
}

// ImportBatch handles http request to run a refund batch imported as CSV.
func (h *Handler) ImportBatch(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	data, err := gctx.GetRawData()
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	batch, err := ingestion.ParseCSV(data)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	h.run(gctx, batch)
}

func (h *Handler) run(gctx *gin.Context, batch domain.Batch) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	adminID := gctx.MustGet(middleware.AdminIDKey).(string)

	onProgress := func(completed, total int) {
		l.Debug().
			Str("batch_id", batch.ID).
			Int("completed", completed).
			Int("total", total).
			Msg("refund batch progress")
	}

	result, err := h.service.Execute(ctx, domain.RefundBatchAction{Batch: batch}, adminID, onProgress)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyBatch),
			errors.Is(err, domain.ErrTooManyItems),
			errors.Is(err, domain.ErrBatchTotalExceeded):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: batchData{
		BatchID:         batch.ID,
		TotalProcessed:  result.TotalProcessed,
		SuccessfulCount: len(result.Successful),
		FailedCount:     len(result.Failed),
		Successful:      result.Successful,
		Failed:          result.Failed,
	}})
}

type getPromoterRequest struct {
	ID string `uri:"id" binding:"required"`
}

type promoterData struct {
	Promoter domain.Promoter `json:"promoter"`
}

// GetPromoter handles http request to look up a promoter while composing a batch.
func (h *Handler) GetPromoter(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getPromoterRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	promoter, err := h.service.LookupPromoter(ctx, req.ID)
	if err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: promoterData{Promoter: promoter}})
}
