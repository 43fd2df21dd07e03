package repository

import (
	"context"
	"time"

	"autorental-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	// GetByIDForUpdate locks the vehicle row for the rest of the enclosing
	// transaction. Availability check-then-act sequences must use this read.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Customer, int32, error)
}

// RentalFilter narrows rental list queries. Zero values mean "no filter".
type RentalFilter struct {
	Status     domain.RentalStatus
	CustomerID int64
	VehicleID  int64
	// From/To bound the planned start date.
	From *time.Time
	To   *time.Time
	// OverdueOn selects ACTIVE rentals whose planned end date lies before
	// the given day.
	OverdueOn *time.Time
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Rental, error)
	GetByContractNumber(ctx context.Context, number string) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	List(ctx context.Context, filter RentalFilter, page, pageSize int32) ([]domain.Rental, int32, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
	ListByRental(ctx context.Context, rentalID int64) ([]domain.Payment, error)
	// SumCompletedByRental totals COMPLETED, non-deleted payments for a rental.
	SumCompletedByRental(ctx context.Context, rentalID int64) (int64, error)
	// SumIncome totals COMPLETED, non-deleted payments paid within [from, to].
	SumIncome(ctx context.Context, from, to time.Time) (int64, error)
}

// NumberRepository hands out the next sequence value for a document prefix
// on a given day. Values are strictly increasing within one (prefix, day)
// pair, so concurrent allocations never collide.
type NumberRepository interface {
	Next(ctx context.Context, prefix string, day time.Time) (int64, error)
}

// Store bundles the aggregate repositories with the transactional boundary.
// ExecTx runs fn against repositories bound to a single database
// transaction; any error rolls the whole use case back, so multi-row writes
// like payment-plus-rental are all-or-nothing.
type Store interface {
	Vehicles() VehicleRepository
	Customers() CustomerRepository
	Rentals() RentalRepository
	Payments() PaymentRepository
	Numbers() NumberRepository
	ExecTx(ctx context.Context, fn func(Store) error) error
}
