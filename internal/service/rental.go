package service

import (
	"context"
	"fmt"
	"time"

	"autorental-backend/internal/documents"
	"autorental-backend/internal/domain"
	"autorental-backend/internal/logger"
	"autorental-backend/internal/repository"
	"autorental-backend/internal/utils"
)

const (
	contractNumberPrefix = "RENT"
	paymentNumberPrefix  = "PAY"
)

type rentalService struct {
	store repository.Store
	docs  documents.Generator
	now   func() time.Time
}

func NewRentalService(store repository.Store, docs documents.Generator) RentalService {
	return &rentalService{
		store: store,
		docs:  docs,
		now:   time.Now,
	}
}

// CreateRental books a vehicle for a customer. The whole use case runs in
// one transaction with the vehicle row locked, so two concurrent bookings
// cannot both see the vehicle as available.
func (s *rentalService) CreateRental(ctx context.Context, in CreateRentalInput) (*domain.Rental, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}

	var rental *domain.Rental
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, in.VehicleID)
		if err != nil {
			return err
		}
		customer, err := tx.Customers().GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if !customer.IsActiveCustomer() {
			return fmt.Errorf("%w: customer %d is not active", domain.ErrStateConflict, customer.ID)
		}
		if !vehicle.IsAvailable() {
			return fmt.Errorf("%w: vehicle %d is not available", domain.ErrStateConflict, vehicle.ID)
		}

		days, rateCents, totalCents, err := utils.CalculateTotalPrice(vehicle, customer, in.StartDate, in.EndDate)
		if err != nil {
			return err
		}

		number, err := nextDocumentNumber(ctx, tx, contractNumberPrefix, s.now())
		if err != nil {
			return err
		}

		rental = &domain.Rental{
			ContractNumber:   number,
			VehicleID:        vehicle.ID,
			CustomerID:       customer.ID,
			StartDate:        in.StartDate,
			EndDate:          in.EndDate,
			DailyRateCents:   rateCents,
			TotalDays:        days,
			TotalAmountCents: totalCents,
			AmountPaidCents:  0,
			Status:           domain.RentalStatusPending,
			Notes:            in.Notes,
		}
		return tx.Rentals().Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental created",
		"contract_number", rental.ContractNumber,
		"vehicle_id", rental.VehicleID,
		"customer_id", rental.CustomerID,
		"total_amount_cents", rental.TotalAmountCents)
	return rental, nil
}

// DeliverVehicle hands the vehicle over and activates the rental.
// Availability is checked again here, independently of the creation-time
// check: time may have passed between booking and delivery.
func (s *rentalService) DeliverVehicle(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rt, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, rt.VehicleID)
		if err != nil {
			return err
		}
		if err := rt.Deliver(s.now()); err != nil {
			return err
		}
		if err := vehicle.MarkAsRented(); err != nil {
			return err
		}
		if err := tx.Vehicles().Update(ctx, vehicle); err != nil {
			return err
		}
		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Vehicle delivered", "contract_number", rental.ContractNumber, "vehicle_id", rental.VehicleID)
	return rental, nil
}

// ReturnVehicle completes the rental and frees the vehicle. Delay figures
// are derived on the returned rental; they are reported, never billed.
func (s *rentalService) ReturnVehicle(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rt, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, rt.VehicleID)
		if err != nil {
			return err
		}
		if err := rt.Return(s.now()); err != nil {
			return err
		}
		if err := vehicle.MarkAsAvailable(); err != nil {
			return err
		}
		if err := tx.Vehicles().Update(ctx, vehicle); err != nil {
			return err
		}
		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Vehicle returned",
		"contract_number", rental.ContractNumber,
		"vehicle_id", rental.VehicleID,
		"delayed", rental.IsDelayed(),
		"delay_days", rental.DelayDays())
	return rental, nil
}

func (s *rentalService) CancelRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	var rental *domain.Rental
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		rt, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		// No vehicle side effect: the vehicle was never flipped to RENTED.
		if err := rt.Cancel(); err != nil {
			return err
		}
		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental = rt
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Rental cancelled", "contract_number", rental.ContractNumber)
	return rental, nil
}

func (s *rentalService) DeleteRental(ctx context.Context, rentalID int64) error {
	return s.store.ExecTx(ctx, func(tx repository.Store) error {
		rt, err := tx.Rentals().GetByIDForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if err := rt.Delete(s.now()); err != nil {
			return err
		}
		return tx.Rentals().Update(ctx, rt)
	})
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	return s.store.Rentals().GetByID(ctx, rentalID)
}

func (s *rentalService) ListRentals(ctx context.Context, filter repository.RentalFilter, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.store.Rentals().List(ctx, filter, page, pageSize)
}

// ContractDocument renders the contract artifact for a completed rental and
// returns a reference to it.
func (s *rentalService) ContractDocument(ctx context.Context, rentalID int64) (string, error) {
	rt, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return "", err
	}
	if rt.Status != domain.RentalStatusCompleted {
		return "", fmt.Errorf("%w: rental %s is not completed", domain.ErrStateConflict, rt.ContractNumber)
	}
	vehicle, err := s.store.Vehicles().GetByID(ctx, rt.VehicleID)
	if err != nil {
		return "", err
	}
	customer, err := s.store.Customers().GetByID(ctx, rt.CustomerID)
	if err != nil {
		return "", err
	}
	return s.docs.Generate(ctx, documents.ContractData{
		Rental:   rt,
		Vehicle:  vehicle,
		Customer: customer,
	})
}

// nextDocumentNumber renders {PREFIX}-{yyyyMMdd}-{NNNNN} from the
// allocator's strictly increasing per-day sequence. The string format is
// fixed for compatibility with existing contract and payment numbers.
func nextDocumentNumber(ctx context.Context, tx repository.Store, prefix string, day time.Time) (string, error) {
	seq, err := tx.Numbers().Next(ctx, prefix, day)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%05d", prefix, day.UTC().Format("20060102"), seq), nil
}
