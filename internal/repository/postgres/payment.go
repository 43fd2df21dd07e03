package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/repository"
)

const paymentColumns = `id, payment_number, rental_id, amount_cents, method, status, COALESCE(reference, ''), COALESCE(card_last_digits, ''), COALESCE(notes, ''), paid_on, created_on, deleted_on`

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (payment_number, rental_id, amount_cents, method, status, reference, card_last_digits, notes, paid_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.PaymentNumber, p.RentalID, p.AmountCents, p.Method, p.Status,
		p.Reference, p.CardLastDigits, p.Notes, p.PaidOn, time.Now(),
	).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *paymentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *paymentRepository) scanOne(row *sql.Row, id int64) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.PaymentNumber, &p.RentalID, &p.AmountCents,
		&p.Method, &p.Status, &p.Reference, &p.CardLastDigits, &p.Notes,
		&p.PaidOn, &p.CreatedOn, &p.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET status=$1, notes=$2, paid_on=$3, deleted_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.Status, p.Notes, p.PaidOn, p.DeletedOn, p.ID)
	return err
}

func (r *paymentRepository) ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 AND deleted_on IS NULL ORDER BY paid_on, id`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.PaymentNumber, &p.RentalID, &p.AmountCents,
			&p.Method, &p.Status, &p.Reference, &p.CardLastDigits, &p.Notes,
			&p.PaidOn, &p.CreatedOn, &p.DeletedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) SumCompletedByRental(ctx context.Context, rentalID int64) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE rental_id = $1 AND status = 'COMPLETED' AND deleted_on IS NULL`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&total)
	return total, err
}

func (r *paymentRepository) SumIncome(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE status = 'COMPLETED' AND deleted_on IS NULL AND paid_on >= $1 AND paid_on <= $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&total)
	return total, err
}
