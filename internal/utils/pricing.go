package utils

import (
	"fmt"
	"time"

	"autorental-backend/internal/domain"
)

const (
	longTermThresholdDays = 15
	monthlyThresholdDays  = 30
)

// CalculateDays returns the whole calendar days between start and end,
// exclusive of the end date: March 1 to March 4 bills 3 days, and a span
// from day 1 to day 3 yields 2. This exclusive semantics drives billing and
// must not change.
func CalculateDays(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)) / (24 * time.Hour))
}

// SelectDailyRate picks the vehicle rate for a customer and duration. A VIP
// customer always gets the VIP rate regardless of duration; duration tiers
// apply to everyone else. There is no combined VIP-plus-long-stay discount.
func SelectDailyRate(vehicle *domain.Vehicle, customer *domain.Customer, days int) int64 {
	if customer.IsVIP() {
		return vehicle.RateVIPCents
	}
	switch {
	case days >= monthlyThresholdDays:
		return vehicle.RateMonthlyCents
	case days >= longTermThresholdDays:
		return vehicle.RateLongTermCents
	default:
		return vehicle.RateNormalCents
	}
}

// CalculateTotalPrice computes the billable day count, the selected daily
// rate and the total price for a rental. The date range must span at least
// one full day.
func CalculateTotalPrice(vehicle *domain.Vehicle, customer *domain.Customer, start, end time.Time) (days int, rateCents int64, totalCents int64, err error) {
	days = CalculateDays(start, end)
	if days < 1 {
		return 0, 0, 0, fmt.Errorf("%w: rental must span at least one full day", domain.ErrValidation)
	}
	rateCents = SelectDailyRate(vehicle, customer, days)
	return days, rateCents, rateCents * int64(days), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
