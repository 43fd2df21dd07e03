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

const vehicleColumns = `id, plate, make, model, rate_normal_cents, rate_vip_cents, rate_long_term_cents, rate_monthly_cents, status, created_on, updated_on, deleted_on`

type vehicleRepository struct {
	db DBTX
}

func NewVehicleRepository(db DBTX) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (plate, make, model, rate_normal_cents, rate_vip_cents, rate_long_term_cents, rate_monthly_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		v.Plate, v.Make, v.Model,
		v.RateNormalCents, v.RateVIPCents, v.RateLongTermCents, v.RateMonthlyCents,
		v.Status, now, now,
	).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *vehicleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *vehicleRepository) scanOne(row *sql.Row, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(&v.ID, &v.Plate, &v.Make, &v.Model,
		&v.RateNormalCents, &v.RateVIPCents, &v.RateLongTermCents, &v.RateMonthlyCents,
		&v.Status, &v.CreatedOn, &v.UpdatedOn, &v.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: vehicle %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET plate=$1, make=$2, model=$3, rate_normal_cents=$4, rate_vip_cents=$5, rate_long_term_cents=$6, rate_monthly_cents=$7, status=$8, updated_on=$9, deleted_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query,
		v.Plate, v.Make, v.Model,
		v.RateNormalCents, v.RateVIPCents, v.RateLongTermCents, v.RateMonthlyCents,
		v.Status, time.Now(), v.DeletedOn, v.ID)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE deleted_on IS NULL`
	args := []any{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.Make, &v.Model,
			&v.RateNormalCents, &v.RateVIPCents, &v.RateLongTermCents, &v.RateMonthlyCents,
			&v.Status, &v.CreatedOn, &v.UpdatedOn, &v.DeletedOn); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
