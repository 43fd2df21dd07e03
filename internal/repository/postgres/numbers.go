package postgres

import (
	"context"
	"time"

	"autorental-backend/internal/repository"
)

type numberRepository struct {
	db DBTX
}

func NewNumberRepository(db DBTX) repository.NumberRepository {
	return &numberRepository{db: db}
}

// Next bumps the per-(prefix, day) counter row and returns the new value.
// The single UPSERT keeps the sequence strictly increasing under concurrent
// allocations; gaps can appear when an enclosing transaction rolls back,
// which is acceptable for contract and payment numbers.
func (r *numberRepository) Next(ctx context.Context, prefix string, day time.Time) (int64, error) {
	query := `INSERT INTO document_numbers (prefix, day, last_seq)
	          VALUES ($1, $2, 1)
	          ON CONFLICT (prefix, day)
	          DO UPDATE SET last_seq = document_numbers.last_seq + 1
	          RETURNING last_seq`
	var seq int64
	err := r.db.QueryRowContext(ctx, query, prefix, day.UTC().Format("2006-01-02")).Scan(&seq)
	return seq, err
}
