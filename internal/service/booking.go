package service

import (
	"context"
	"fmt"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/metrics"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/utils"
)

type bookingService struct {
	uowFactory   repository.UnitOfWorkFactory
	bookingRepo  repository.BookingRepository
	carRepo      repository.CarRepository
	userRepo     repository.UserRepository
	availability AvailabilityChecker
	emailSvc     EmailService
	noteRepo     repository.NotificationRepository
}

func NewBookingService(
	uowFactory repository.UnitOfWorkFactory,
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	availability AvailabilityChecker,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) BookingService {
	return &bookingService{
		uowFactory:   uowFactory,
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		userRepo:     userRepo,
		availability: availability,
		emailSvc:     emailSvc,
		noteRepo:     noteRepo,
	}
}

// RequestBooking runs the availability check and the insert inside one
// serializable unit of work, so two overlapping requests for the same
// car cannot both commit. The loser surfaces as a conflict either from
// the check or from commit.
func (s *bookingService) RequestBooking(ctx context.Context, principal domain.Principal, carID int32, startDate, endDate string) (*domain.Booking, error) {
	startDate, endDate, err := normalizeRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.BeginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	car, err := uow.Cars().GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	// Unreviewed and rejected listings are invisible to renters.
	if car.Status != domain.CarStatusApproved {
		return nil, domain.NewNotFoundError("car", carID)
	}
	if car.HostID == principal.UserID {
		return nil, domain.NewAuthorizationError("hosts cannot book their own car")
	}

	overlap, err := s.availability.HasOverlap(ctx, uow.Bookings(), carID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if overlap {
		metrics.BookingConflictsTotal.Inc()
		return nil, domain.NewConflictError("car is not available for the requested dates")
	}

	total, err := utils.RentalTotalCents(car.PricePerDayCents, startDate, endDate)
	if err != nil {
		return nil, domain.NewValidationError(map[string]string{"dates": err.Error()})
	}

	booking := &domain.Booking{
		CarID:           carID,
		RenterID:        principal.UserID,
		TotalPriceCents: total,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          domain.BookingStatusRequested,
	}
	if err := uow.Bookings().Create(ctx, booking); err != nil {
		return nil, err
	}
	if err := uow.Complete(ctx); err != nil {
		// A serialization failure at commit means a concurrent request
		// won the same dates.
		if domain.IsKind(err, domain.ErrConflict) {
			metrics.BookingConflictsTotal.Inc()
			return nil, domain.NewConflictError("car is not available for the requested dates")
		}
		return nil, err
	}
	metrics.BookingRequestsTotal.Inc()

	// Notify host outside the transaction; delivery failures never undo
	// the booking.
	host, _ := s.userRepo.GetByID(ctx, car.HostID)
	renter, _ := s.userRepo.GetByID(ctx, principal.UserID)
	if host != nil && renter != nil {
		title := carTitle(car)
		_ = s.emailSvc.SendBookingRequestNotification(ctx, host.Email, renter.Name, title, startDate, endDate)

		notif := &domain.Notification{
			UserID:  host.ID,
			Title:   "New Booking Request",
			Message: fmt.Sprintf("%s requested %s from %s to %s", renter.Name, title, startDate, endDate),
			Attributes: map[string]string{
				"type":       "BOOKING_REQUEST",
				"booking_id": fmt.Sprintf("%d", booking.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return booking, nil
}

// ApproveBooking overwrites the status unconditionally, so repeating a
// decision or reversing a rejection is a no-op rather than an error.
// Only ownership gates the operation.
func (s *bookingService) ApproveBooking(ctx context.Context, principal domain.Principal, bookingID int32) (*domain.Booking, error) {
	return s.decideBooking(ctx, principal, bookingID, domain.BookingStatusApproved)
}

func (s *bookingService) RejectBooking(ctx context.Context, principal domain.Principal, bookingID int32) (*domain.Booking, error) {
	return s.decideBooking(ctx, principal, bookingID, domain.BookingStatusRejected)
}

func (s *bookingService) decideBooking(ctx context.Context, principal domain.Principal, bookingID int32, status domain.BookingStatus) (*domain.Booking, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	booking, err := uow.Bookings().GetWithCar(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Car.HostID != principal.UserID {
		return nil, domain.NewAuthorizationError("booking belongs to another host's car")
	}

	booking.Status = status
	if err := uow.Bookings().Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}
	metrics.BookingDecisionsTotal.WithLabelValues(string(status)).Inc()

	renter, _ := s.userRepo.GetByID(ctx, booking.RenterID)
	if renter != nil {
		title := carTitle(booking.Car)
		approved := status == domain.BookingStatusApproved
		_ = s.emailSvc.SendBookingDecisionNotification(ctx, renter.Email, title, approved)

		verb := "approved"
		noteType := "BOOKING_APPROVED"
		if !approved {
			verb = "rejected"
			noteType = "BOOKING_REJECTED"
		}
		notif := &domain.Notification{
			UserID:  renter.ID,
			Title:   fmt.Sprintf("Booking %s", verb),
			Message: fmt.Sprintf("Your booking for %s was %s", title, verb),
			Attributes: map[string]string{
				"type":       noteType,
				"booking_id": fmt.Sprintf("%d", booking.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return booking, nil
}

// CancelBooking lets the renter withdraw a booking that has not reached
// a final state yet.
func (s *bookingService) CancelBooking(ctx context.Context, principal domain.Principal, bookingID int32) (*domain.Booking, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	booking, err := uow.Bookings().GetWithCar(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != principal.UserID {
		return nil, domain.NewAuthorizationError("booking belongs to another renter")
	}
	if booking.Status.Terminal() {
		return nil, domain.NewConflictError(fmt.Sprintf("booking is already %s", booking.Status))
	}

	booking.Status = domain.BookingStatusCancelled
	if err := uow.Bookings().Update(ctx, booking); err != nil {
		return nil, err
	}
	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}
	metrics.BookingDecisionsTotal.WithLabelValues(string(domain.BookingStatusCancelled)).Inc()

	host, _ := s.userRepo.GetByID(ctx, booking.Car.HostID)
	if host != nil {
		title := carTitle(booking.Car)
		notif := &domain.Notification{
			UserID:  host.ID,
			Title:   "Booking Cancelled",
			Message: fmt.Sprintf("The booking for %s from %s to %s was cancelled", title, booking.StartDate, booking.EndDate),
			Attributes: map[string]string{
				"type":       "BOOKING_CANCELLED",
				"booking_id": fmt.Sprintf("%d", booking.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return booking, nil
}

func (s *bookingService) ListHostRequests(ctx context.Context, principal domain.Principal) ([]domain.Booking, error) {
	if !principal.HasRole(domain.RoleHost) {
		return nil, domain.NewAuthorizationError("host role required")
	}
	return s.bookingRepo.ListRequestsByHost(ctx, principal.UserID)
}

func (s *bookingService) ListHostBookings(ctx context.Context, principal domain.Principal) ([]domain.Booking, error) {
	if !principal.HasRole(domain.RoleHost) {
		return nil, domain.NewAuthorizationError("host role required")
	}
	return s.bookingRepo.ListConfirmedByHost(ctx, principal.UserID)
}

func (s *bookingService) ListRenterBookings(ctx context.Context, principal domain.Principal) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRenter(ctx, principal.UserID)
}

func normalizeRange(startDate, endDate string) (string, string, error) {
	start, err := utils.NormalizeDate(startDate)
	if err != nil {
		return "", "", domain.NewValidationError(map[string]string{"start_date": err.Error()})
	}
	end, err := utils.NormalizeDate(endDate)
	if err != nil {
		return "", "", domain.NewValidationError(map[string]string{"end_date": err.Error()})
	}
	if end < start {
		return "", "", domain.NewValidationError(map[string]string{"end_date": "must not be before start date"})
	}
	return start, end, nil
}

func carTitle(c *domain.Car) string {
	return fmt.Sprintf("%s %s", c.Brand, c.Model)
}
