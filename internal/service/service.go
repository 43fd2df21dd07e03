package service

import (
	"context"
	"time"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/repository"
)

type CreateRentalInput struct {
	VehicleID  int64
	CustomerID int64
	StartDate  time.Time
	EndDate    time.Time
	Notes      string
}

type RegisterPaymentInput struct {
	RentalID       int64
	AmountCents    int64
	Method         domain.PaymentMethod
	Reference      string
	CardLastDigits string
	Notes          string
	// Pending records the payment without settling it; the amount is applied
	// to the rental when the payment is confirmed.
	Pending bool
}

type RentalService interface {
	CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error)
	DeliverVehicle(ctx context.Context, rentalID int64) (*domain.Rental, error)
	ReturnVehicle(ctx context.Context, rentalID int64) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID int64) (*domain.Rental, error)
	DeleteRental(ctx context.Context, rentalID int64) error
	GetRental(ctx context.Context, rentalID int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.Rental, int32, error)
	ContractDocument(ctx context.Context, rentalID int64) (string, error)
}

type PaymentService interface {
	RegisterPayment(ctx context.Context, in RegisterPaymentInput) (*domain.Payment, error)
	RefundPayment(ctx context.Context, paymentID int64) (*domain.Payment, error)
	ConfirmPayment(ctx context.Context, paymentID int64) (*domain.Payment, error)
	RejectPayment(ctx context.Context, paymentID int64, reason string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, paymentID int64) error
	ListPayments(ctx context.Context, rentalID int64) ([]domain.Payment, error)
	TotalPaid(ctx context.Context, rentalID int64) (int64, error)
	Income(ctx context.Context, from, to time.Time) (int64, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error)
	SendToMaintenance(ctx context.Context, id int64) (*domain.Vehicle, error)
	ReturnToService(ctx context.Context, id int64) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
}
