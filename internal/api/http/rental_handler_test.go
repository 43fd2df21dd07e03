package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/repository"
	"autorental-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRental() *domain.Rental {
	return &domain.Rental{
		ID:               1,
		ContractNumber:   "RENT-20250301-00001",
		VehicleID:        10,
		CustomerID:       20,
		StartDate:        day(2025, 3, 1),
		EndDate:          day(2025, 3, 6),
		DailyRateCents:   10000,
		TotalDays:        5,
		TotalAmountCents: 50000,
		Status:           domain.RentalStatusPending,
	}
}

func setupRouter() (*MockRentalService, *MockPaymentService, *MockVehicleService, http.Handler) {
	rentals := new(MockRentalService)
	payments := new(MockPaymentService)
	vehicles := new(MockVehicleService)
	return rentals, payments, vehicles, NewRouter(rentals, payments, vehicles)
}

func TestRentalHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("CreateRental", mock.Anything, service.CreateRentalInput{
			VehicleID:  10,
			CustomerID: 20,
			StartDate:  day(2025, 3, 1),
			EndDate:    day(2025, 3, 6),
		}).Return(sampleRental(), nil)

		body := `{"vehicle_id":10,"customer_id":20,"start_date":"2025-03-01","end_date":"2025-03-06"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/rentals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var view RentalView
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
		assert.Equal(t, "RENT-20250301-00001", view.ContractNumber)
		assert.Equal(t, int64(50000), view.BalanceCents)
		assert.True(t, view.CanBeDelivered)
	})

	t.Run("Malformed date", func(t *testing.T) {
		_, _, _, router := setupRouter()

		body := `{"vehicle_id":10,"customer_id":20,"start_date":"03/01/2025","end_date":"2025-03-06"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/rentals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("State conflict maps to 409", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("CreateRental", mock.Anything, mock.Anything).
			Return(nil, domain.ErrStateConflict)

		body := `{"vehicle_id":10,"customer_id":20,"start_date":"2025-03-01","end_date":"2025-03-06"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/rentals", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestRentalHandler_Transitions(t *testing.T) {
	t.Run("Deliver", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rt := sampleRental()
		now := day(2025, 3, 1)
		rt.Status = domain.RentalStatusActive
		rt.ActualDeliveryDate = &now
		rentals.On("DeliverVehicle", mock.Anything, int64(1)).Return(rt, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/rentals/1/deliver", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var view RentalView
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
		assert.Equal(t, "ACTIVE", view.Status)
		assert.True(t, view.CanBeReturned)
	})

	t.Run("Cancel conflict", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("CancelRental", mock.Anything, int64(1)).
			Return(nil, domain.ErrStateConflict)

		req := httptest.NewRequest(http.MethodPost, "/v1/rentals/1/cancel", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Concurrency conflict is retryable", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("DeliverVehicle", mock.Anything, int64(1)).
			Return(nil, domain.ErrConcurrencyConflict)

		req := httptest.NewRequest(http.MethodPost, "/v1/rentals/1/deliver", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var resp errorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.Retryable)
	})

	t.Run("Invalid path id", func(t *testing.T) {
		_, _, _, router := setupRouter()

		req := httptest.NewRequest(http.MethodPost, "/v1/rentals/abc/deliver", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRentalHandler_Get(t *testing.T) {
	t.Run("Not found maps to 404", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("GetRental", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals/99", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRentalHandler_List(t *testing.T) {
	t.Run("Filters forwarded", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		from := day(2025, 3, 1)
		rentals.On("ListRentals", mock.Anything, repository.RentalFilter{
			Status:     domain.RentalStatusActive,
			CustomerID: 20,
			From:       &from,
		}, int32(2), int32(10)).Return([]domain.Rental{*sampleRental()}, int32(15), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals?status=ACTIVE&customer_id=20&from=2025-03-01&page=2&page_size=10", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp rentalListResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int32(15), resp.Total)
		assert.Len(t, resp.Rentals, 1)
	})

	t.Run("Overdue cutoff is today at midnight", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("ListRentals", mock.Anything, mock.MatchedBy(func(f repository.RentalFilter) bool {
			if f.OverdueOn == nil {
				return false
			}
			now := time.Now().UTC()
			midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			// A rental ending today must not satisfy end_date < cutoff.
			return f.OverdueOn.Equal(midnight)
		}), int32(1), int32(20)).Return([]domain.Rental{}, int32(0), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals?overdue=true", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		rentals.AssertExpectations(t)
	})

	t.Run("Overdue with non-active status rejected", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals?overdue=true&status=PENDING", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rentals.AssertNotCalled(t, "ListRentals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Out of range pagination falls back to defaults", func(t *testing.T) {
		rentals, _, _, router := setupRouter()

		rentals.On("ListRentals", mock.Anything, repository.RentalFilter{}, int32(1), int32(20)).
			Return([]domain.Rental{}, int32(0), nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals?page=2000000000&page_size=500", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		rentals.AssertExpectations(t)
	})
}

func TestPaymentHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, payments, _, router := setupRouter()

		payments.On("RegisterPayment", mock.Anything, service.RegisterPaymentInput{
			RentalID:    1,
			AmountCents: 20000,
			Method:      domain.PaymentMethodCard,
			Reference:   "auth-123",
		}).Return(&domain.Payment{
			ID:            5,
			PaymentNumber: "PAY-20250302-00001",
			RentalID:      1,
			AmountCents:   20000,
			Method:        domain.PaymentMethodCard,
			Status:        domain.PaymentStatusCompleted,
			Reference:     "auth-123",
		}, nil)

		body := `{"rental_id":1,"amount_cents":20000,"method":"CARD","reference":"auth-123"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var view PaymentView
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
		assert.Equal(t, "PAY-20250302-00001", view.PaymentNumber)
	})

	t.Run("Balance violation maps to 422", func(t *testing.T) {
		_, payments, _, router := setupRouter()

		payments.On("RegisterPayment", mock.Anything, mock.Anything).
			Return(nil, domain.ErrBalanceViolation)

		body := `{"rental_id":1,"amount_cents":999999,"method":"CARD"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/payments", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
