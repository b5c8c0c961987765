package service

import (
	"context"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"
)

type availabilityChecker struct{}

func NewAvailabilityChecker() AvailabilityChecker {
	return &availabilityChecker{}
}

// HasOverlap validates the range and delegates the interval test to the
// repository, which excludes terminal bookings. Both bounds are
// inclusive, so a booking ending on the requested start day conflicts.
func (a *availabilityChecker) HasOverlap(ctx context.Context, bookings repository.BookingRepository, carID int32, startDate, endDate string) (bool, error) {
	if _, err := utils.RentalDays(startDate, endDate); err != nil {
		return false, domain.NewValidationError(map[string]string{"dates": err.Error()})
	}
	return bookings.HasOverlapping(ctx, carID, startDate, endDate)
}
