package domain

import (
	"fmt"
	"time"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// Rental is the contract aggregate. The lifecycle only moves forward:
// PENDING -> ACTIVE -> COMPLETED, or PENDING -> CANCELLED. Pricing fields
// are fixed at creation time; AmountPaidCents is the only mutable money
// field and changes exclusively through RegisterPayment.
type Rental struct {
	ID             int64  `json:"id"`
	ContractNumber string `json:"contract_number"`
	VehicleID      int64  `json:"vehicle_id"`
	CustomerID     int64  `json:"customer_id"`
	// Planned range. EndDate is exclusive for billing purposes.
	StartDate          time.Time    `json:"start_date"`
	EndDate            time.Time    `json:"end_date"`
	ActualDeliveryDate *time.Time   `json:"actual_delivery_date,omitempty"`
	ActualReturnDate   *time.Time   `json:"actual_return_date,omitempty"`
	DailyRateCents     int64        `json:"daily_rate_cents"`
	TotalDays          int          `json:"total_days"`
	TotalAmountCents   int64        `json:"total_amount_cents"`
	AmountPaidCents    int64        `json:"amount_paid_cents"`
	Status             RentalStatus `json:"status"`
	Notes              string       `json:"notes"`
	CreatedOn          time.Time    `json:"created_on"`
	UpdatedOn          time.Time    `json:"updated_on"`
	DeletedOn          *time.Time   `json:"deleted_on,omitempty"`
}

// Deliver hands the vehicle to the customer. Legal only from PENDING; the
// caller must re-check vehicle availability in the same transaction.
func (r *Rental) Deliver(now time.Time) error {
	if r.Status != RentalStatusPending {
		return fmt.Errorf("%w: rental %s cannot be delivered from status %s", ErrStateConflict, r.ContractNumber, r.Status)
	}
	r.ActualDeliveryDate = &now
	r.Status = RentalStatusActive
	return nil
}

// Return closes the rental. Legal only from ACTIVE.
func (r *Rental) Return(now time.Time) error {
	if r.Status != RentalStatusActive {
		return fmt.Errorf("%w: rental %s cannot be returned from status %s", ErrStateConflict, r.ContractNumber, r.Status)
	}
	r.ActualReturnDate = &now
	r.Status = RentalStatusCompleted
	return nil
}

// Cancel aborts a booking that was never delivered. Legal only from PENDING.
func (r *Rental) Cancel() error {
	if r.Status != RentalStatusPending {
		return fmt.Errorf("%w: rental %s cannot be cancelled from status %s", ErrStateConflict, r.ContractNumber, r.Status)
	}
	r.Status = RentalStatusCancelled
	return nil
}

// Delete soft-deletes the rental. An active rental cannot be deleted.
func (r *Rental) Delete(now time.Time) error {
	if r.Status == RentalStatusActive {
		return fmt.Errorf("%w: rental %s is active and cannot be deleted", ErrStateConflict, r.ContractNumber)
	}
	r.DeletedOn = &now
	return nil
}

// RegisterPayment applies a signed delta to the cached paid amount. This is
// the single choke point for AmountPaidCents; refund flows pass a negated
// amount. The result must stay within [0, TotalAmountCents].
func (r *Rental) RegisterPayment(amountCents int64) error {
	if amountCents == 0 {
		return fmt.Errorf("%w: payment amount must not be zero", ErrBalanceViolation)
	}
	next := r.AmountPaidCents + amountCents
	if next > r.TotalAmountCents {
		return fmt.Errorf("%w: payment of %d exceeds outstanding balance of %d", ErrBalanceViolation, amountCents, r.Balance())
	}
	if next < 0 {
		return fmt.Errorf("%w: refund of %d exceeds amount paid %d", ErrBalanceViolation, -amountCents, r.AmountPaidCents)
	}
	r.AmountPaidCents = next
	return nil
}

// Balance is the amount still owed.
func (r *Rental) Balance() int64 {
	return r.TotalAmountCents - r.AmountPaidCents
}

func (r *Rental) IsFullyPaid() bool {
	return r.AmountPaidCents >= r.TotalAmountCents
}

// IsDelayed reports whether the vehicle came back after the planned end date.
// Only defined once the rental has been returned.
func (r *Rental) IsDelayed() bool {
	if r.ActualReturnDate == nil {
		return false
	}
	return dateOnly(*r.ActualReturnDate).After(dateOnly(r.EndDate))
}

// DelayDays is the number of calendar days the return ran past the planned
// end date, zero when on time.
func (r *Rental) DelayDays() int {
	if !r.IsDelayed() {
		return 0
	}
	return int(dateOnly(*r.ActualReturnDate).Sub(dateOnly(r.EndDate)) / (24 * time.Hour))
}

// DelayPenaltyCents is an informational charge. It is reported but never
// applied to TotalAmountCents or the balance; late fees are billed out of
// band.
func (r *Rental) DelayPenaltyCents() int64 {
	return r.DailyRateCents * int64(r.DelayDays())
}

// ActualDays is the inclusive day count between delivery and return. The
// second return value is false until both timestamps are set.
func (r *Rental) ActualDays() (int, bool) {
	if r.ActualDeliveryDate == nil || r.ActualReturnDate == nil {
		return 0, false
	}
	days := int(dateOnly(*r.ActualReturnDate).Sub(dateOnly(*r.ActualDeliveryDate))/(24*time.Hour)) + 1
	return days, true
}

// IsOverdue reports whether an active rental has run past its planned end
// date as of the given moment. Overdue rentals are only surfaced on query;
// nothing acts on them automatically.
func (r *Rental) IsOverdue(now time.Time) bool {
	return r.Status == RentalStatusActive && dateOnly(r.EndDate).Before(dateOnly(now))
}

func (r *Rental) CanBeModified() bool {
	return r.Status == RentalStatusPending
}

func (r *Rental) CanBeDelivered() bool {
	return r.Status == RentalStatusPending
}

func (r *Rental) CanBeReturned() bool {
	return r.Status == RentalStatusActive
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
