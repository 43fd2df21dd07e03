package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func completedPayment() *Payment {
	return &Payment{
		ID:            1,
		PaymentNumber: "PAY-20250301-00001",
		RentalID:      1,
		AmountCents:   20000,
		Method:        PaymentMethodCard,
		Status:        PaymentStatusCompleted,
	}
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCash))
	assert.True(t, ValidPaymentMethod(PaymentMethodCard))
	assert.True(t, ValidPaymentMethod(PaymentMethodBankTransfer))
	assert.True(t, ValidPaymentMethod(PaymentMethodCheck))
	assert.False(t, ValidPaymentMethod("BITCOIN"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestPayment_Refund(t *testing.T) {
	t.Run("Refund completed payment", func(t *testing.T) {
		p := completedPayment()
		assert.NoError(t, p.Refund())
		assert.Equal(t, PaymentStatusRefunded, p.Status)
	})

	t.Run("Refund twice rejected", func(t *testing.T) {
		p := completedPayment()
		assert.NoError(t, p.Refund())
		assert.ErrorIs(t, p.Refund(), ErrStateConflict)
	})

	t.Run("Refund pending payment rejected", func(t *testing.T) {
		p := completedPayment()
		p.Status = PaymentStatusPending
		assert.ErrorIs(t, p.Refund(), ErrStateConflict)
	})

	t.Run("Refund deleted payment rejected", func(t *testing.T) {
		p := completedPayment()
		now := time.Now()
		p.DeletedOn = &now
		assert.ErrorIs(t, p.Refund(), ErrStateConflict)
	})
}

func TestPayment_ConfirmReject(t *testing.T) {
	t.Run("Confirm pending payment", func(t *testing.T) {
		p := completedPayment()
		p.Status = PaymentStatusPending
		assert.NoError(t, p.Confirm())
		assert.Equal(t, PaymentStatusCompleted, p.Status)
	})

	t.Run("Confirm completed payment rejected", func(t *testing.T) {
		p := completedPayment()
		assert.ErrorIs(t, p.Confirm(), ErrStateConflict)
	})

	t.Run("Reject pending payment records reason", func(t *testing.T) {
		p := completedPayment()
		p.Status = PaymentStatusPending
		assert.NoError(t, p.Reject("card declined"))
		assert.Equal(t, PaymentStatusRejected, p.Status)
		assert.Contains(t, p.Notes, "Rejected: card declined")
	})

	t.Run("Reject completed payment rejected", func(t *testing.T) {
		p := completedPayment()
		assert.ErrorIs(t, p.Reject("too late"), ErrStateConflict)
	})
}

func TestPayment_Delete(t *testing.T) {
	t.Run("Delete rejected payment", func(t *testing.T) {
		p := completedPayment()
		p.Status = PaymentStatusRejected
		assert.NoError(t, p.Delete(time.Now()))
		assert.NotNil(t, p.DeletedOn)
	})

	t.Run("Delete completed payment rejected", func(t *testing.T) {
		p := completedPayment()
		assert.ErrorIs(t, p.Delete(time.Now()), ErrStateConflict)
		assert.Nil(t, p.DeletedOn)
	})
}
