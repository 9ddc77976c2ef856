package refunddelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/promo-ledger/internal/domain"
	"github.com/go-petr/promo-ledger/internal/middleware"
	"github.com/go-petr/promo-ledger/internal/refundservice"
	"github.com/go-petr/promo-ledger/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(service Service) *gin.Engine {
	handler := NewHandler(service)

	server := gin.New()

	adminRoutes := server.Group("/").Use(middleware.AdminAuth())
	adminRoutes.POST("/refunds/batches", handler.CreateBatch)
	adminRoutes.POST("/refunds/imports", handler.ImportBatch)
	adminRoutes.GET("/promoters/:id", handler.GetPromoter)

	return server
}

func committedItem(key string, amount int64) domain.BatchItem {
	return domain.BatchItem{
		Key:           key,
		Amount:        decimal.NewFromInt(amount),
		Reason:        "overcharge",
		Status:        domain.StatusCommitted,
		TransactionID: "tx-" + key,
	}
}

func TestCreateBatch(t *testing.T) {
	adminID := randompkg.AdminID()

	result := domain.BatchResult{
		TotalProcessed: 2,
		Successful: []domain.BatchItem{
			committedItem("promoter-1", 100),
			committedItem("promoter-2", 200),
		},
	}

	testCases := []struct {
		name           string
		body           string
		setupAuth      func(r *http.Request)
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkResponse  func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: `{"items":[
				{"promoter_user_id":"promoter-1","amount":"100","reason":"overcharge"},
				{"promoter_user_id":"promoter-2","amount":"200","reason":"overcharge"}
			]}`,
			setupAuth: func(r *http.Request) {
				r.Header.Set(middleware.AdminIDHeader, adminID)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any(), gomock.Eq(adminID), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, action domain.BulkAction, _ string, _ refundservice.ProgressFunc) (domain.BatchResult, error) {
						batchAction, ok := action.(domain.RefundBatchAction)
						require.True(t, ok)
						require.Len(t, batchAction.Batch.Items, 2)
						require.Equal(t, "promoter-1", batchAction.Batch.Items[0].Key)

						return result, nil
					})
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				var res struct {
					Data struct {
						TotalProcessed  int                `json:"total_processed"`
						SuccessfulCount int                `json:"successful_count"`
						FailedCount     int                `json:"failed_count"`
						Successful      []domain.BatchItem `json:"successful"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Equal(t, 2, res.Data.TotalProcessed)
				require.Equal(t, 2, res.Data.SuccessfulCount)
				require.Equal(t, 0, res.Data.FailedCount)

				if diff := cmp.Diff(result.Successful, res.Data.Successful); diff != "" {
					t.Errorf("successful items mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "NoAdminHeader",
			body: `{"items":[{"promoter_user_id":"promoter-1","amount":"100"}]}`,
			setupAuth: func(r *http.Request) {
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "EmptyItems",
			body: `{"items":[]}`,
			setupAuth: func(r *http.Request) {
				r.Header.Set(middleware.AdminIDHeader, adminID)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "MalformedAmount",
			body: `{"items":[{"promoter_user_id":"promoter-1","amount":"abc"}]}`,
			setupAuth: func(r *http.Request) {
				r.Header.Set(middleware.AdminIDHeader, adminID)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "BatchGuardViolation",
			body: `{"items":[{"promoter_user_id":"promoter-1","amount":"100"}]}`,
			setupAuth: func(r *http.Request) {
				r.Header.Set(middleware.AdminIDHeader, adminID)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.BatchResult{},
						fmt.Errorf("%w: 101 items, maximum 100", domain.ErrTooManyItems))
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newTestServer(service)

			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodPost, "/refunds/batches", bytes.NewReader([]byte(tc.body)))
			request.Header.Set("Content-Type", "application/json")
			tc.setupAuth(request)

			server.ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, recorder)
			}
		})
	}
}

func TestImportBatch(t *testing.T) {
	adminID := randompkg.AdminID()

	t.Run("OK", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().
			Execute(gomock.Any(), gomock.Any(), gomock.Eq(adminID), gomock.Any()).
			Times(1).
			DoAndReturn(func(_ context.Context, action domain.BulkAction, _ string, _ refundservice.ProgressFunc) (domain.BatchResult, error) {
				batchAction, ok := action.(domain.RefundBatchAction)
				require.True(t, ok)
				// The zero-amount row never reaches the pipeline.
				require.Len(t, batchAction.Batch.Items, 2)

				return domain.BatchResult{TotalProcessed: 2}, nil
			})

		server := newTestServer(service)

		csv := "promoterid,amount,reason\n" +
			"promoter-1,100,a\n" +
			"promoter-2,0,b\n" +
			"promoter-3,300,c\n"

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/refunds/imports", strings.NewReader(csv))
		request.Header.Set(middleware.AdminIDHeader, adminID)

		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("UnrecognizedColumns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		server := newTestServer(service)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/refunds/imports", strings.NewReader("name,city\nAlex,Lisbon\n"))
		request.Header.Set(middleware.AdminIDHeader, adminID)

		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetPromoter(t *testing.T) {
	adminID := randompkg.AdminID()

	promoter := domain.Promoter{
		UserID:  "promoter-1",
		Name:    "Alex",
		Balance: decimal.NewFromInt(5000),
	}

	t.Run("OK", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().
			LookupPromoter(gomock.Any(), gomock.Eq("promoter-1")).
			Times(1).
			Return(promoter, nil)

		server := newTestServer(service)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/promoters/promoter-1", nil)
		request.Header.Set(middleware.AdminIDHeader, adminID)

		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)

		var res struct {
			Data struct {
				Promoter domain.Promoter `json:"promoter"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
		require.Equal(t, "Alex", res.Data.Promoter.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := NewMockService(ctrl)
		service.EXPECT().
			LookupPromoter(gomock.Any(), gomock.Eq("promoter-9")).
			Times(1).
			Return(domain.Promoter{}, &domain.RemoteError{
				Op: "/users/promoters/promoter-9", StatusCode: http.StatusNotFound, Message: "not found",
			})

		server := newTestServer(service)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/promoters/promoter-9", nil)
		request.Header.Set(middleware.AdminIDHeader, adminID)

		server.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
