package service

import (
	"context"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

// AddCarInput carries everything a host submits for a new listing.
// Validation runs server-side regardless of any client-side checks.
type AddCarInput struct {
	Brand            string `json:"brand" validate:"required,max=50"`
	CarType          string `json:"car_type" validate:"required,max=20"`
	Model            string `json:"model" validate:"required,max=50"`
	Year             int32  `json:"year" validate:"required,min=1950,max=2050"`
	Transmission     string `json:"transmission" validate:"required,max=20"`
	FuelType         string `json:"fuel_type" validate:"required,max=20"`
	Seats            int32  `json:"seats" validate:"required,min=1,max=20"`
	PricePerDayCents int32  `json:"price_per_day_cents" validate:"required,gt=0"`
	Location         string `json:"location" validate:"required,max=100"`
	Description      string `json:"description" validate:"max=500"`
	ImageData        []byte `json:"-"`
	ImageName        string `json:"-"`
}

// EditCarInput covers the mutable listing fields. Brand, type, model and
// year cannot change after creation.
type EditCarInput struct {
	PricePerDayCents int32  `json:"price_per_day_cents" validate:"required,gt=0"`
	Location         string `json:"location" validate:"required,max=100"`
	Description      string `json:"description" validate:"max=500"`
	ImageData        []byte `json:"-"`
	ImageName        string `json:"-"`
}

type CarService interface {
	AddCar(ctx context.Context, principal domain.Principal, in AddCarInput) (*domain.Car, error)
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	UpdateCar(ctx context.Context, principal domain.Principal, carID int32, in EditCarInput) (*domain.Car, error)
	DeleteCar(ctx context.Context, principal domain.Principal, carID int32) error
	ApproveCar(ctx context.Context, principal domain.Principal, carID int32) (*domain.Car, error)
	RejectCar(ctx context.Context, principal domain.Principal, carID int32) (*domain.Car, error)
	ListApprovedCars(ctx context.Context) ([]domain.Car, error)
	ListPendingCars(ctx context.Context, principal domain.Principal) ([]domain.Car, error)
	ListHostCars(ctx context.Context, principal domain.Principal) ([]domain.Car, error)
}

type BookingService interface {
	RequestBooking(ctx context.Context, principal domain.Principal, carID int32, startDate, endDate string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, principal domain.Principal, bookingID int32) (*domain.Booking, error)
	RejectBooking(ctx context.Context, principal domain.Principal, bookingID int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, principal domain.Principal, bookingID int32) (*domain.Booking, error)
	ListHostRequests(ctx context.Context, principal domain.Principal) ([]domain.Booking, error)
	ListHostBookings(ctx context.Context, principal domain.Principal) ([]domain.Booking, error)
	ListRenterBookings(ctx context.Context, principal domain.Principal) ([]domain.Booking, error)
}

// AvailabilityChecker answers whether a requested date range collides
// with any non-terminal booking. Callers pass the repository so the check
// can run inside their unit of work; the result is only valid at the
// instant of the read.
type AvailabilityChecker interface {
	HasOverlap(ctx context.Context, bookings repository.BookingRepository, carID int32, startDate, endDate string) (bool, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, hostEmail, renterName, carTitle, startDate, endDate string) error
	SendBookingDecisionNotification(ctx context.Context, renterEmail, carTitle string, approved bool) error
	SendListingDecisionNotification(ctx context.Context, hostEmail, carTitle string, approved bool) error
	SendBookingTransitionNotification(ctx context.Context, renterEmail, carTitle string, status domain.BookingStatus) error
}
