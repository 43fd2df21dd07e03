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

const rentalColumns = `id, contract_number, vehicle_id, customer_id, start_date, end_date, actual_delivery_date, actual_return_date, daily_rate_cents, total_days, total_amount_cents, amount_paid_cents, status, COALESCE(notes, ''), created_on, updated_on, deleted_on`

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (contract_number, vehicle_id, customer_id, start_date, end_date, daily_rate_cents, total_days, total_amount_cents, amount_paid_cents, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		rt.ContractNumber, rt.VehicleID, rt.CustomerID,
		rt.StartDate, rt.EndDate,
		rt.DailyRateCents, rt.TotalDays, rt.TotalAmountCents, rt.AmountPaidCents,
		rt.Status, rt.Notes, now, now,
	).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), fmt.Sprintf("rental %d", id))
}

func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), fmt.Sprintf("rental %d", id))
}

func (r *rentalRepository) GetByContractNumber(ctx context.Context, number string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE contract_number = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, number), fmt.Sprintf("rental %s", number))
}

func (r *rentalRepository) scanOne(row *sql.Row, what string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.ContractNumber, &rt.VehicleID, &rt.CustomerID,
		&rt.StartDate, &rt.EndDate, &rt.ActualDeliveryDate, &rt.ActualReturnDate,
		&rt.DailyRateCents, &rt.TotalDays, &rt.TotalAmountCents, &rt.AmountPaidCents,
		&rt.Status, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn, &rt.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET actual_delivery_date=$1, actual_return_date=$2, amount_paid_cents=$3, status=$4, notes=$5, updated_on=$6, deleted_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		rt.ActualDeliveryDate, rt.ActualReturnDate, rt.AmountPaidCents,
		rt.Status, rt.Notes, time.Now(), rt.DeletedOn, rt.ID)
	return err
}

func (r *rentalRepository) List(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE deleted_on IS NULL`
	args := []any{}
	argIdx := 1

	addArg := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, argIdx)
		args = append(args, val)
		argIdx++
	}

	if filter.Status != "" {
		addArg("status = $%d", filter.Status)
	}
	if filter.CustomerID != 0 {
		addArg("customer_id = $%d", filter.CustomerID)
	}
	if filter.VehicleID != 0 {
		addArg("vehicle_id = $%d", filter.VehicleID)
	}
	if filter.From != nil {
		addArg("start_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addArg("start_date <= $%d", *filter.To)
	}
	if filter.OverdueOn != nil {
		query += " AND status = 'ACTIVE'"
		addArg("end_date < $%d", *filter.OverdueOn)
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.ContractNumber, &rt.VehicleID, &rt.CustomerID,
			&rt.StartDate, &rt.EndDate, &rt.ActualDeliveryDate, &rt.ActualReturnDate,
			&rt.DailyRateCents, &rt.TotalDays, &rt.TotalAmountCents, &rt.AmountPaidCents,
			&rt.Status, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn, &rt.DeletedOn); err != nil {
			return nil, 0, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, count, rows.Err()
}
