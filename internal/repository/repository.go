package repository

import (
	"context"

	"driveshare-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	// GetWithHost loads the car together with its host record. Related
	// entities are always loaded explicitly, never lazily.
	GetWithHost(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	Delete(ctx context.Context, id int32) error
	ListByHost(ctx context.Context, hostID int32) ([]domain.Car, error)
	ListApproved(ctx context.Context) ([]domain.Car, error)
	ListPending(ctx context.Context) ([]domain.Car, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// GetWithCar loads the booking together with its car, so callers can
	// run ownership checks without a second round trip.
	GetWithCar(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// HasOverlapping reports whether any non-terminal booking for the car
	// shares at least one day with [startDate, endDate], bounds inclusive.
	HasOverlapping(ctx context.Context, carID int32, startDate, endDate string) (bool, error)
	CountNonTerminalByCar(ctx context.Context, carID int32) (int32, error)
	ListRequestsByHost(ctx context.Context, hostID int32) ([]domain.Booking, error)
	ListConfirmedByHost(ctx context.Context, hostID int32) ([]domain.Booking, error)
	ListByRenter(ctx context.Context, renterID int32) ([]domain.Booking, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// UnitOfWork scopes one logical operation's reads and writes to a single
// atomic commit. Repositories obtained from it run on the same
// transaction; Complete persists everything or nothing. Release rolls
// back if Complete was never reached and must be called on every path.
type UnitOfWork interface {
	Cars() CarRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Complete(ctx context.Context) error
	Release()
}

// UnitOfWorkFactory opens units of work. BeginSerializable is used on the
// booking-request path so the overlap check and the insert commit as one
// isolated unit; concurrent overlapping requests fail at commit instead
// of both slipping through.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
	BeginSerializable(ctx context.Context) (UnitOfWork, error)
}
