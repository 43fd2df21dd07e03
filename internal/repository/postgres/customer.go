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

const customerColumns = `id, name, email, phone, category, active, created_on, updated_on, deleted_on`

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (name, email, phone, category, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Category, c.Active, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Category, &c.Active,
		&c.CreatedOn, &c.UpdatedOn, &c.DeletedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, email=$2, phone=$3, category=$4, active=$5, updated_on=$6, deleted_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Email, c.Phone, c.Category, c.Active, time.Now(), c.DeletedOn, c.ID)
	return err
}

func (r *customerRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Customer, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM customers WHERE deleted_on IS NULL`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE deleted_on IS NULL ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Category, &c.Active,
			&c.CreatedOn, &c.UpdatedOn, &c.DeletedOn); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}
