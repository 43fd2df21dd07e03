package http

import (
	"time"

	"autorental-backend/internal/domain"
)

// RentalView is the read-model projection exposed to callers. Derived
// fields like balance and delay figures are computed from the aggregate,
// never stored.
type RentalView struct {
	ID                 int64   `json:"id"`
	ContractNumber     string  `json:"contract_number"`
	VehicleID          int64   `json:"vehicle_id"`
	CustomerID         int64   `json:"customer_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	ActualDeliveryDate *string `json:"actual_delivery_date,omitempty"`
	ActualReturnDate   *string `json:"actual_return_date,omitempty"`
	DailyRateCents     int64   `json:"daily_rate_cents"`
	TotalDays          int     `json:"total_days"`
	TotalAmountCents   int64   `json:"total_amount_cents"`
	AmountPaidCents    int64   `json:"amount_paid_cents"`
	BalanceCents       int64   `json:"balance_cents"`
	Status             string  `json:"status"`
	Notes              string  `json:"notes,omitempty"`
	IsFullyPaid        bool    `json:"is_fully_paid"`
	IsDelayed          bool    `json:"is_delayed"`
	DelayDays          int     `json:"delay_days"`
	DelayPenaltyCents  int64   `json:"delay_penalty_cents"`
	ActualDays         *int    `json:"actual_days,omitempty"`
	IsOverdue          bool    `json:"is_overdue"`
	CanBeModified      bool    `json:"can_be_modified"`
	CanBeDelivered     bool    `json:"can_be_delivered"`
	CanBeReturned      bool    `json:"can_be_returned"`
}

func toRentalView(rt *domain.Rental) RentalView {
	view := RentalView{
		ID:                rt.ID,
		ContractNumber:    rt.ContractNumber,
		VehicleID:         rt.VehicleID,
		CustomerID:        rt.CustomerID,
		StartDate:         rt.StartDate.Format("2006-01-02"),
		EndDate:           rt.EndDate.Format("2006-01-02"),
		DailyRateCents:    rt.DailyRateCents,
		TotalDays:         rt.TotalDays,
		TotalAmountCents:  rt.TotalAmountCents,
		AmountPaidCents:   rt.AmountPaidCents,
		BalanceCents:      rt.Balance(),
		Status:            string(rt.Status),
		Notes:             rt.Notes,
		IsFullyPaid:       rt.IsFullyPaid(),
		IsDelayed:         rt.IsDelayed(),
		DelayDays:         rt.DelayDays(),
		DelayPenaltyCents: rt.DelayPenaltyCents(),
		IsOverdue:         rt.IsOverdue(time.Now()),
		CanBeModified:     rt.CanBeModified(),
		CanBeDelivered:    rt.CanBeDelivered(),
		CanBeReturned:     rt.CanBeReturned(),
	}
	if rt.ActualDeliveryDate != nil {
		s := rt.ActualDeliveryDate.Format(time.RFC3339)
		view.ActualDeliveryDate = &s
	}
	if rt.ActualReturnDate != nil {
		s := rt.ActualReturnDate.Format(time.RFC3339)
		view.ActualReturnDate = &s
	}
	if days, ok := rt.ActualDays(); ok {
		view.ActualDays = &days
	}
	return view
}

func toRentalViews(rentals []domain.Rental) []RentalView {
	views := make([]RentalView, 0, len(rentals))
	for i := range rentals {
		views = append(views, toRentalView(&rentals[i]))
	}
	return views
}

type PaymentView struct {
	ID             int64  `json:"id"`
	PaymentNumber  string `json:"payment_number"`
	RentalID       int64  `json:"rental_id"`
	AmountCents    int64  `json:"amount_cents"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	Reference      string `json:"reference,omitempty"`
	CardLastDigits string `json:"card_last_digits,omitempty"`
	Notes          string `json:"notes,omitempty"`
	PaidOn         string `json:"paid_on"`
}

func toPaymentView(p *domain.Payment) PaymentView {
	return PaymentView{
		ID:             p.ID,
		PaymentNumber:  p.PaymentNumber,
		RentalID:       p.RentalID,
		AmountCents:    p.AmountCents,
		Method:         string(p.Method),
		Status:         string(p.Status),
		Reference:      p.Reference,
		CardLastDigits: p.CardLastDigits,
		Notes:          p.Notes,
		PaidOn:         p.PaidOn.Format(time.RFC3339),
	}
}

func toPaymentViews(payments []domain.Payment) []PaymentView {
	views := make([]PaymentView, 0, len(payments))
	for i := range payments {
		views = append(views, toPaymentView(&payments[i]))
	}
	return views
}

type VehicleView struct {
	ID                int64  `json:"id"`
	Plate             string `json:"plate"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	RateNormalCents   int64  `json:"rate_normal_cents"`
	RateVIPCents      int64  `json:"rate_vip_cents"`
	RateLongTermCents int64  `json:"rate_long_term_cents"`
	RateMonthlyCents  int64  `json:"rate_monthly_cents"`
	Status            string `json:"status"`
	IsAvailable       bool   `json:"is_available"`
}

func toVehicleView(v *domain.Vehicle) VehicleView {
	return VehicleView{
		ID:                v.ID,
		Plate:             v.Plate,
		Make:              v.Make,
		Model:             v.Model,
		RateNormalCents:   v.RateNormalCents,
		RateVIPCents:      v.RateVIPCents,
		RateLongTermCents: v.RateLongTermCents,
		RateMonthlyCents:  v.RateMonthlyCents,
		Status:            string(v.Status),
		IsAvailable:       v.IsAvailable(),
	}
}

func toVehicleViews(vehicles []domain.Vehicle) []VehicleView {
	views := make([]VehicleView, 0, len(vehicles))
	for i := range vehicles {
		views = append(views, toVehicleView(&vehicles[i]))
	}
	return views
}
