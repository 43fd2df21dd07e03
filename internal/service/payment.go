package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/logger"
	"autorental-backend/internal/repository"
)

type paymentService struct {
	store repository.Store
	now   func() time.Time
}

func NewPaymentService(store repository.Store) PaymentService {
	return &paymentService{
		store: store,
		now:   time.Now,
	}
}

// RegisterPayment records a payment against a rental and updates the
// rental's cached paid amount in the same transaction. Both writes commit
// together or not at all.
func (s *paymentService) RegisterPayment(ctx context.Context, in RegisterPaymentInput) (*domain.Payment, error) {
	if in.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrBalanceViolation)
	}
	if !domain.ValidPaymentMethod(in.Method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, in.Method)
	}

	var payment *domain.Payment
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rental, err := tx.Rentals().GetByIDForUpdate(ctx, in.RentalID)
		if err != nil {
			return err
		}
		if rental.Status == domain.RentalStatusCancelled {
			return fmt.Errorf("%w: rental %s is cancelled", domain.ErrStateConflict, rental.ContractNumber)
		}
		if in.AmountCents > rental.Balance() {
			return fmt.Errorf("%w: payment of %d exceeds outstanding balance of %d", domain.ErrBalanceViolation, in.AmountCents, rental.Balance())
		}

		number, err := nextDocumentNumber(ctx, tx, paymentNumberPrefix, s.now())
		if err != nil {
			return err
		}

		reference := in.Reference
		if reference == "" {
			reference = uuid.NewString()
		}

		status := domain.PaymentStatusCompleted
		if in.Pending {
			status = domain.PaymentStatusPending
		} else {
			if err := rental.RegisterPayment(in.AmountCents); err != nil {
				return err
			}
			if err := tx.Rentals().Update(ctx, rental); err != nil {
				return err
			}
		}

		payment = &domain.Payment{
			PaymentNumber:  number,
			RentalID:       rental.ID,
			AmountCents:    in.AmountCents,
			Method:         in.Method,
			Status:         status,
			Reference:      reference,
			CardLastDigits: in.CardLastDigits,
			Notes:          in.Notes,
			PaidOn:         s.now(),
		}
		return tx.Payments().Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment registered",
		"payment_number", payment.PaymentNumber,
		"rental_id", payment.RentalID,
		"amount_cents", payment.AmountCents,
		"status", payment.Status)
	return payment, nil
}

// RefundPayment reverses a completed payment and restores the rental's
// balance with a negated registration in the same transaction.
func (s *paymentService) RefundPayment(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		p, err := tx.Payments().GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		rental, err := tx.Rentals().GetByIDForUpdate(ctx, p.RentalID)
		if err != nil {
			return err
		}
		if err := p.Refund(); err != nil {
			return err
		}
		if err := rental.RegisterPayment(-p.AmountCents); err != nil {
			return err
		}
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment refunded", "payment_number", payment.PaymentNumber, "amount_cents", payment.AmountCents)
	return payment, nil
}

// ConfirmPayment settles a pending payment. The amount only counts toward
// the rental's paid amount from this point on.
func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		p, err := tx.Payments().GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		rental, err := tx.Rentals().GetByIDForUpdate(ctx, p.RentalID)
		if err != nil {
			return err
		}
		if rental.Status == domain.RentalStatusCancelled {
			return fmt.Errorf("%w: rental %s is cancelled", domain.ErrStateConflict, rental.ContractNumber)
		}
		if err := p.Confirm(); err != nil {
			return err
		}
		if err := rental.RegisterPayment(p.AmountCents); err != nil {
			return err
		}
		p.PaidOn = s.now()
		if err := tx.Rentals().Update(ctx, rental); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment confirmed", "payment_number", payment.PaymentNumber, "amount_cents", payment.AmountCents)
	return payment, nil
}

func (s *paymentService) RejectPayment(ctx context.Context, paymentID int64, reason string) (*domain.Payment, error) {
	var payment *domain.Payment
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		p, err := tx.Payments().GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := p.Reject(reason); err != nil {
			return err
		}
		if err := tx.Payments().Update(ctx, p); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment rejected", "payment_number", payment.PaymentNumber, "reason", reason)
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID int64) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		p, err := tx.Payments().GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := p.Delete(s.now()); err != nil {
			return err
		}
		return tx.Payments().Update(ctx, p)
	})
}

func (s *paymentService) ListPayments(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	return s.store.Payments().ListByRental(ctx, rentalID)
}

func (s *paymentService) TotalPaid(ctx context.Context, rentalID int64) (int64, error) {
	return s.store.Payments().SumCompletedByRental(ctx, rentalID)
}

func (s *paymentService) Income(ctx context.Context, from, to time.Time) (int64, error) {
	if to.Before(from) {
		return 0, fmt.Errorf("%w: income range end precedes start", domain.ErrValidation)
	}
	return s.store.Payments().SumIncome(ctx, from, to)
}
