package service

import (
	"context"
	"fmt"
	"time"

	"autorental-backend/internal/domain"
	"autorental-backend/internal/logger"
	"autorental-backend/internal/repository"
)

type vehicleService struct {
	store repository.Store
	now   func() time.Time
}

func NewVehicleService(store repository.Store) VehicleService {
	return &vehicleService{
		store: store,
		now:   time.Now,
	}
}

func (s *vehicleService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.Plate == "" {
		return fmt.Errorf("%w: vehicle plate is required", domain.ErrValidation)
	}
	if vehicle.RateNormalCents <= 0 {
		return fmt.Errorf("%w: normal daily rate must be positive", domain.ErrValidation)
	}
	if vehicle.Status == "" {
		vehicle.Status = domain.VehicleStatusAvailable
	}
	if err := s.store.Vehicles().Create(ctx, vehicle); err != nil {
		return err
	}
	logger.Info("Vehicle added", "vehicle_id", vehicle.ID, "plate", vehicle.Plate)
	return nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.store.Vehicles().GetByID(ctx, id)
}

func (s *vehicleService) ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.store.Vehicles().List(ctx, status, page, pageSize)
}

func (s *vehicleService) SendToMaintenance(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.mutate(ctx, id, func(v *domain.Vehicle) error { return v.SendToMaintenance() })
}

func (s *vehicleService) ReturnToService(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.mutate(ctx, id, func(v *domain.Vehicle) error { return v.MarkAsAvailable() })
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	_, err := s.mutate(ctx, id, func(v *domain.Vehicle) error { return v.Delete(s.now()) })
	return err
}

// mutate applies a guarded status change under the vehicle's row lock.
func (s *vehicleService) mutate(ctx context.Context, id int64, change func(*domain.Vehicle) error) (*domain.Vehicle, error) {
	var vehicle *domain.Vehicle
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		v, err := tx.Vehicles().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := change(v); err != nil {
			return err
		}
		if err := tx.Vehicles().Update(ctx, v); err != nil {
			return err
		}
		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}
