package jobs

import (
	"context"
	"fmt"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/logger"
	"driveshare-backend/internal/metrics"
	"driveshare-backend/internal/utils"
)

// ActivateDueBookings moves APPROVED bookings whose start date has
// arrived into ACTIVE. Bookings the host never decided on stay
// REQUESTED and simply become unservable history.
func (jr *JobRunner) ActivateDueBookings() {
	jr.runWithRecovery("ActivateDueBookings", func() {
		ctx := context.Background()

		query := `
			WITH moved AS (
				UPDATE bookings
				SET status = 'ACTIVE'
				WHERE status = 'APPROVED'
				  AND start_date <= $1
				RETURNING id, car_id, renter_id
			)
			SELECT m.id, m.car_id, m.renter_id, u.email, c.brand, c.model
			FROM moved m
			JOIN users u ON u.id = m.renter_id
			JOIN cars c ON c.id = m.car_id
		`

		jr.transition(ctx, query, domain.BookingStatusActive)
	})
}

// CompleteFinishedBookings moves ACTIVE bookings past their end date
// into COMPLETED, which frees the car's dates for new requests.
func (jr *JobRunner) CompleteFinishedBookings() {
	jr.runWithRecovery("CompleteFinishedBookings", func() {
		ctx := context.Background()

		query := `
			WITH moved AS (
				UPDATE bookings
				SET status = 'COMPLETED'
				WHERE status = 'ACTIVE'
				  AND end_date < $1
				RETURNING id, car_id, renter_id
			)
			SELECT m.id, m.car_id, m.renter_id, u.email, c.brand, c.model
			FROM moved m
			JOIN users u ON u.id = m.renter_id
			JOIN cars c ON c.id = m.car_id
		`

		jr.transition(ctx, query, domain.BookingStatusCompleted)
	})
}

func (jr *JobRunner) transition(ctx context.Context, query string, status domain.BookingStatus) {
	rows, err := jr.db.QueryContext(ctx, query, utils.Today())
	if err != nil {
		logger.Error("Failed to transition bookings", "status", status, "error", err)
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, carID, renterID int32
		var email, brand, model string
		if err := rows.Scan(&id, &carID, &renterID, &email, &brand, &model); err != nil {
			logger.Error("Failed to scan transitioned booking", "error", err)
			continue
		}
		count++
		logger.Debug("Booking transitioned",
			"booking_id", id,
			"car_id", carID,
			"renter_id", renterID,
			"status", status)
		jr.notifyRenter(ctx, id, renterID, email, fmt.Sprintf("%s %s", brand, model), status)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error iterating transitioned bookings", "error", err)
		return
	}

	metrics.ScheduledTransitionsTotal.WithLabelValues(string(status)).Add(float64(count))
	logger.Info("Bookings transitioned", "status", status, "count", count)
}

// notifyRenter tells the renter their booking moved. Delivery failures
// are logged and dropped; the status change has already committed.
func (jr *JobRunner) notifyRenter(ctx context.Context, bookingID, renterID int32, email, carTitle string, status domain.BookingStatus) {
	if jr.services != nil && jr.services.Email != nil {
		if err := jr.services.Email.SendBookingTransitionNotification(ctx, email, carTitle, status); err != nil {
			logger.Warn("Failed to send transition email", "booking_id", bookingID, "error", err)
		}
	}

	title := "Booking started"
	message := fmt.Sprintf("Your booking for %s is now active", carTitle)
	noteType := "BOOKING_ACTIVE"
	if status == domain.BookingStatusCompleted {
		title = "Booking completed"
		message = fmt.Sprintf("Your booking for %s is complete", carTitle)
		noteType = "BOOKING_COMPLETED"
	}
	notif := &domain.Notification{
		UserID:  renterID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       noteType,
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	}
	if err := jr.store.NotificationRepository.Create(ctx, notif); err != nil {
		logger.Warn("Failed to record transition notification", "booking_id", bookingID, "error", err)
	}
}
