package domain

import (
	"fmt"
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck        PaymentMethod = "CHECK"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheck:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusRejected  PaymentStatus = "REJECTED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Payment is one ledger entry against a rental. A rental can carry many
// partial payments; only COMPLETED, non-deleted payments count toward the
// rental's cached paid amount.
type Payment struct {
	ID             int64         `json:"id"`
	PaymentNumber  string        `json:"payment_number"`
	RentalID       int64         `json:"rental_id"`
	AmountCents    int64         `json:"amount_cents"`
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	Reference      string        `json:"reference"`
	CardLastDigits string        `json:"card_last_digits,omitempty"`
	Notes          string        `json:"notes"`
	PaidOn         time.Time     `json:"paid_on"`
	CreatedOn      time.Time     `json:"created_on"`
	DeletedOn      *time.Time    `json:"deleted_on,omitempty"`
}

// Refund reverses a completed payment. The caller restores the rental
// balance with a negated RegisterPayment in the same transaction.
func (p *Payment) Refund() error {
	if p.DeletedOn != nil {
		return fmt.Errorf("%w: payment %s is deleted", ErrStateConflict, p.PaymentNumber)
	}
	if p.Status != PaymentStatusCompleted {
		return fmt.Errorf("%w: payment %s cannot be refunded from status %s", ErrStateConflict, p.PaymentNumber, p.Status)
	}
	p.Status = PaymentStatusRefunded
	return nil
}

// Confirm settles a pending payment. Legal only from PENDING.
func (p *Payment) Confirm() error {
	if p.Status != PaymentStatusPending {
		return fmt.Errorf("%w: payment %s cannot be confirmed from status %s", ErrStateConflict, p.PaymentNumber, p.Status)
	}
	p.Status = PaymentStatusCompleted
	return nil
}

// Reject declines a payment that has not settled and records the reason.
func (p *Payment) Reject(reason string) error {
	if p.Status == PaymentStatusCompleted {
		return fmt.Errorf("%w: payment %s is already completed", ErrStateConflict, p.PaymentNumber)
	}
	p.Status = PaymentStatusRejected
	if reason != "" {
		if p.Notes != "" {
			p.Notes = strings.TrimSpace(p.Notes) + "\nRejected: " + reason
		} else {
			p.Notes = "Rejected: " + reason
		}
	}
	return nil
}

// Delete soft-deletes the payment. A completed payment must be refunded
// instead.
func (p *Payment) Delete(now time.Time) error {
	if p.Status == PaymentStatusCompleted {
		return fmt.Errorf("%w: payment %s is completed and must be refunded, not deleted", ErrStateConflict, p.PaymentNumber)
	}
	p.DeletedOn = &now
	return nil
}
