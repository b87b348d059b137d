package handler_test

import (
	"fmt"
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/service/mocks"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPurchase(t *testing.T) {
	purchaseRequest := model.AllocationRequest{
		OfferID:        7,
		CustomerID:     12,
		Quantity:       2,
		PurchaseMethod: model.PurchaseMethodCredit,
	}

	t.Run("Success", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		mockService.EXPECT().Purchase(mock.Anything, purchaseRequest).Return(&model.PurchaseResponse{
			UnitIDs:    []int64{101, 102},
			TotalPrice: decimal.RequireFromString("50"),
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"unit_ids":[101,102]`)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - invalid JSON", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - missing quantity", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", model.AllocationRequest{
			OfferID:        7,
			PurchaseMethod: model.PurchaseMethodCash,
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - ErrCapacityExceeded", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		mockService.EXPECT().Purchase(mock.Anything, mock.Anything).Return(nil, &apperrors.CapacityExceededError{
			Requested: 2,
			Remaining: 1,
		}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeBody(w.Body)
		assert.Equal(t, float64(2), body["requested"])
		assert.Equal(t, float64(1), body["remaining"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInvalidRedemption in a bundle", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		mockService.EXPECT().Purchase(mock.Anything, mock.Anything).Return(nil, &apperrors.CapacityExceededError{
			Requested: 1,
			Cause:     fmt.Errorf("%w: Event is sold out", apperrors.ErrInvalidRedemption),
		}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, decodeBody(w.Body)["reason"], "Event is sold out")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrInvalidOffer", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		mockService.EXPECT().Purchase(mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidOffer).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ErrContended", func(t *testing.T) {
		mockService := mocks.NewMockBoxOfficeService(t)
		router := setupTestRouter(mockService)

		mockService.EXPECT().Purchase(mock.Anything, mock.Anything).Return(nil, apperrors.ErrContended).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/purchases", purchaseRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusLocked, w.Code)
		mockService.AssertExpectations(t)
	})
}
