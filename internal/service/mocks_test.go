package service_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) GetWithHost(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) ListByHost(ctx context.Context, hostID int32) ([]domain.Car, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) ListApproved(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) ListPending(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetWithCar(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) HasOverlapping(ctx context.Context, carID int32, startDate, endDate string) (bool, error) {
	args := m.Called(ctx, carID, startDate, endDate)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) CountNonTerminalByCar(ctx context.Context, carID int32) (int32, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) ListRequestsByHost(ctx context.Context, hostID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListConfirmedByHost(ctx context.Context, hostID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, renterID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, hostEmail, renterName, carTitle, startDate, endDate string) error {
	args := m.Called(ctx, hostEmail, renterName, carTitle, startDate, endDate)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingDecisionNotification(ctx context.Context, renterEmail, carTitle string, approved bool) error {
	args := m.Called(ctx, renterEmail, carTitle, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendListingDecisionNotification(ctx context.Context, hostEmail, carTitle string, approved bool) error {
	args := m.Called(ctx, hostEmail, carTitle, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingTransitionNotification(ctx context.Context, renterEmail, carTitle string, status domain.BookingStatus) error {
	args := m.Called(ctx, renterEmail, carTitle, status)
	return args.Error(0)
}

// MockBlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	args := m.Called(ctx, originalName, r)
	return args.String(0), args.Error(1)
}
func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockBlobStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// fakeUow hands the mock repositories back to the code under test and
// records whether the unit of work was completed or released.
type fakeUow struct {
	cars        *MockCarRepo
	bookings    *MockBookingRepo
	notes       *MockNotificationRepo
	completeErr error
	completed   bool
	released    bool
}

func (u *fakeUow) Cars() repository.CarRepository                   { return u.cars }
func (u *fakeUow) Bookings() repository.BookingRepository           { return u.bookings }
func (u *fakeUow) Notifications() repository.NotificationRepository { return u.notes }
func (u *fakeUow) Complete(ctx context.Context) error {
	if u.completeErr != nil {
		return u.completeErr
	}
	u.completed = true
	return nil
}
func (u *fakeUow) Release() { u.released = true }

type fakeUowFactory struct {
	uow          *fakeUow
	serializable bool
}

func (f *fakeUowFactory) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	return f.uow, nil
}
func (f *fakeUowFactory) BeginSerializable(ctx context.Context) (repository.UnitOfWork, error) {
	f.serializable = true
	return f.uow, nil
}
