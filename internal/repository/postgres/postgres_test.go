package postgres_test

import (
	"context"
	"errors"
	"testing"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/repository"
	"autorental-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStore_ExecTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_cents\\), 0\\) FROM payments").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100))
		mock.ExpectCommit()

		err = store.ExecTx(ctx, func(tx repository.Store) error {
			_, err := tx.Payments().SumCompletedByRental(ctx, 1)
			return err
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = store.ExecTx(ctx, func(tx repository.Store) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Domain errors pass through untouched", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = store.ExecTx(ctx, func(tx repository.Store) error {
			return domain.ErrBalanceViolation
		})
		assert.ErrorIs(t, err, domain.ErrBalanceViolation)
	})

	t.Run("Serialization failure maps to concurrency conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = store.ExecTx(ctx, func(tx repository.Store) error {
			return &pq.Error{Code: "40001"}
		})
		assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	})

	t.Run("Deadlock maps to concurrency conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err = store.ExecTx(ctx, func(tx repository.Store) error {
			return &pq.Error{Code: "40P01"}
		})
		assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	})
}
