package domain

import (
	"fmt"
	"time"
)

type VehicleStatus string

const (
	VehicleStatusAvailable    VehicleStatus = "AVAILABLE"
	VehicleStatusRented       VehicleStatus = "RENTED"
	VehicleStatusMaintenance  VehicleStatus = "MAINTENANCE"
	VehicleStatusOutOfService VehicleStatus = "OUT_OF_SERVICE"
)

type Vehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Make  string `json:"make"`
	Model string `json:"model"`
	// Rate fields are mutually exclusive per rental: exactly one of them is
	// selected at creation time based on customer category and duration.
	RateNormalCents   int64         `json:"rate_normal_cents"`
	RateVIPCents      int64         `json:"rate_vip_cents"`
	RateLongTermCents int64         `json:"rate_long_term_cents"` // 15 days and longer
	RateMonthlyCents  int64         `json:"rate_monthly_cents"`   // 30 days and longer
	Status            VehicleStatus `json:"status"`
	CreatedOn         time.Time     `json:"created_on"`
	UpdatedOn         time.Time     `json:"updated_on"`
	DeletedOn         *time.Time    `json:"deleted_on,omitempty"`
}

// IsAvailable reports whether the vehicle can start a new rental.
func (v *Vehicle) IsAvailable() bool {
	return v.Status == VehicleStatusAvailable && v.DeletedOn == nil
}

func (v *Vehicle) MarkAsRented() error {
	if !v.IsAvailable() {
		return fmt.Errorf("%w: vehicle %d is %s, not available for rental", ErrStateConflict, v.ID, v.Status)
	}
	v.Status = VehicleStatusRented
	return nil
}

func (v *Vehicle) MarkAsAvailable() error {
	if v.Status == VehicleStatusOutOfService {
		return fmt.Errorf("%w: vehicle %d is out of service", ErrStateConflict, v.ID)
	}
	v.Status = VehicleStatusAvailable
	return nil
}

func (v *Vehicle) SendToMaintenance() error {
	if v.Status == VehicleStatusRented {
		return fmt.Errorf("%w: vehicle %d is rented out", ErrStateConflict, v.ID)
	}
	v.Status = VehicleStatusMaintenance
	return nil
}

// Delete soft-deletes the vehicle. A rented vehicle cannot be deleted.
func (v *Vehicle) Delete(now time.Time) error {
	if v.Status == VehicleStatusRented {
		return fmt.Errorf("%w: vehicle %d is rented out", ErrStateConflict, v.ID)
	}
	v.DeletedOn = &now
	return nil
}
