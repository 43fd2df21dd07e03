package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same repository code
// runs standalone or inside ExecTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db        *sql.DB
	vehicles  repository.VehicleRepository
	customers repository.CustomerRepository
	rentals   repository.RentalRepository
	payments  repository.PaymentRepository
	numbers   repository.NumberRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		vehicles:  NewVehicleRepository(db),
		customers: NewCustomerRepository(db),
		rentals:   NewRentalRepository(db),
		payments:  NewPaymentRepository(db),
		numbers:   NewNumberRepository(db),
	}
}

func (s *Store) Vehicles() repository.VehicleRepository   { return s.vehicles }
func (s *Store) Customers() repository.CustomerRepository { return s.customers }
func (s *Store) Rentals() repository.RentalRepository     { return s.rentals }
func (s *Store) Payments() repository.PaymentRepository   { return s.payments }
func (s *Store) Numbers() repository.NumberRepository     { return s.numbers }

// ExecTx runs fn inside one transaction. Row locks taken through the
// *ForUpdate reads are held until commit, which is what keeps check-then-act
// sequences like deliver's availability re-check safe under concurrency.
// Driver-level conflicts come back as domain.ErrConcurrencyConflict.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		// Already transaction-bound; join the ambient transaction.
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer tx.Rollback()

	txStore := &Store{
		vehicles:  NewVehicleRepository(tx),
		customers: NewCustomerRepository(tx),
		rentals:   NewRentalRepository(tx),
		payments:  NewPaymentRepository(tx),
		numbers:   NewNumberRepository(tx),
	}
	if err := fn(txStore); err != nil {
		return mapError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError translates driver failures into the domain error taxonomy.
// Serialization failures, deadlocks and lock timeouts become retryable
// concurrency conflicts; unique violations on document numbers are treated
// the same way since retrying re-allocates.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrStateConflict) ||
		errors.Is(err, domain.ErrBalanceViolation) ||
		errors.Is(err, domain.ErrConcurrencyConflict) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01", "55P03", "23505":
			return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
		}
	}
	return err
}
