package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/service"
)

type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type registerPaymentRequest struct {
	RentalID       int64  `json:"rental_id"`
	AmountCents    int64  `json:"amount_cents"`
	Method         string `json:"method"`
	Reference      string `json:"reference"`
	CardLastDigits string `json:"card_last_digits"`
	Notes          string `json:"notes"`
	Pending        bool   `json:"pending"`
}

func (h *PaymentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}

	payment, err := h.payments.RegisterPayment(r.Context(), service.RegisterPaymentInput{
		RentalID:       req.RentalID,
		AmountCents:    req.AmountCents,
		Method:         domain.PaymentMethod(req.Method),
		Reference:      req.Reference,
		CardLastDigits: req.CardLastDigits,
		Notes:          req.Notes,
		Pending:        req.Pending,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentView(payment))
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payment, err := h.payments.RefundPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentView(payment))
}

func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payment, err := h.payments.ConfirmPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentView(payment))
}

type rejectPaymentRequest struct {
	Reason string `json:"reason"`
}

func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req rejectPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}
	payment, err := h.payments.RejectPayment(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentView(payment))
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.payments.DeletePayment(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type paymentListResponse struct {
	Payments       []PaymentView `json:"payments"`
	TotalPaidCents int64         `json:"total_paid_cents"`
}

func (h *PaymentHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	payments, err := h.payments.ListPayments(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	totalPaid, err := h.payments.TotalPaid(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentListResponse{
		Payments:       toPaymentViews(payments),
		TotalPaidCents: totalPaid,
	})
}

type incomeResponse struct {
	From        string `json:"from"`
	To          string `json:"to"`
	IncomeCents int64  `json:"income_cents"`
}

func (h *PaymentHandler) Income(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDate(q.Get("from"), "from")
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := parseDate(q.Get("to"), "to")
	if err != nil {
		writeError(w, err)
		return
	}
	// The range is inclusive of the whole "to" day.
	toEnd := to.Add(24*time.Hour - time.Nanosecond)

	income, err := h.payments.Income(r.Context(), from, toEnd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, incomeResponse{
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		IncomeCents: income,
	})
}
