package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/service"
)

func newCarFixture() (*fakeUowFactory, *MockCarRepo, *MockBookingRepo, *MockUserRepo, *MockBlobStore, *MockEmailService, *MockNotificationRepo, service.CarService) {
	carRepo := new(MockCarRepo)
	bookingRepo := new(MockBookingRepo)
	userRepo := new(MockUserRepo)
	blobs := new(MockBlobStore)
	emailSvc := new(MockEmailService)
	noteRepo := new(MockNotificationRepo)
	factory := &fakeUowFactory{uow: &fakeUow{cars: carRepo, bookings: bookingRepo, notes: noteRepo}}
	svc := service.NewCarService(factory, carRepo, userRepo, blobs, emailSvc, noteRepo)
	return factory, carRepo, bookingRepo, userRepo, blobs, emailSvc, noteRepo, svc
}

func validCarInput() service.AddCarInput {
	return service.AddCarInput{
		Brand:            "Toyota",
		CarType:          "Sedan",
		Model:            "Corolla",
		Year:             2022,
		Transmission:     "Automatic",
		FuelType:         "Petrol",
		Seats:            5,
		PricePerDayCents: 5000,
		Location:         "Sofia",
		Description:      "Reliable daily driver",
	}
}

func TestCarService_AddCar(t *testing.T) {
	ctx := context.Background()
	host := domain.Principal{UserID: 10, Roles: []domain.Role{domain.RoleHost}}

	t.Run("Success starts in pending review", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		carRepo.On("Create", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)

		res, err := svc.AddCar(ctx, host, validCarInput())
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusPending, res.Status)
		assert.Equal(t, int32(10), res.HostID)
		assert.Nil(t, res.ImagePath)
	})

	t.Run("Image stored before create", func(t *testing.T) {
		_, carRepo, _, _, blobs, _, _, svc := newCarFixture()
		in := validCarInput()
		in.ImageData = []byte{0xFF, 0xD8}
		in.ImageName = "corolla.jpg"
		blobs.On("Save", ctx, "corolla.jpg", mock.Anything).Return("abc123.jpg", nil)
		carRepo.On("Create", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)

		res, err := svc.AddCar(ctx, host, in)
		assert.NoError(t, err)
		if assert.NotNil(t, res.ImagePath) {
			assert.Equal(t, "abc123.jpg", *res.ImagePath)
		}
	})

	t.Run("Renter refused", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		renter := domain.Principal{UserID: 1, Roles: []domain.Role{domain.RoleRenter}}

		res, err := svc.AddCar(ctx, renter, validCarInput())
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.ErrAuthorization))
		carRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Missing fields reported per field", func(t *testing.T) {
		_, _, _, _, _, _, _, svc := newCarFixture()
		in := validCarInput()
		in.Brand = ""
		in.PricePerDayCents = 0

		res, err := svc.AddCar(ctx, host, in)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.ErrValidation))
		var derr *domain.Error
		assert.ErrorAs(t, err, &derr)
		assert.Contains(t, derr.Fields, "Brand")
		assert.Contains(t, derr.Fields, "PricePerDayCents")
	})

	t.Run("Negative price rejected", func(t *testing.T) {
		_, _, _, _, _, _, _, svc := newCarFixture()
		in := validCarInput()
		in.PricePerDayCents = -100

		res, err := svc.AddCar(ctx, host, in)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.ErrValidation))
	})
}

func TestCarService_Review(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{UserID: 5, Roles: []domain.Role{domain.RoleAdmin}}

	pendingCar := func() *domain.Car {
		return &domain.Car{ID: 7, HostID: 10, Brand: "Toyota", Model: "Corolla", Status: domain.CarStatusPending}
	}

	t.Run("Approve", func(t *testing.T) {
		_, carRepo, _, userRepo, _, emailSvc, noteRepo, svc := newCarFixture()
		carRepo.On("GetByID", ctx, int32(7)).Return(pendingCar(), nil)
		carRepo.On("Update", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)
		userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "host@test.com", Name: "Host"}, nil)
		emailSvc.On("SendListingDecisionNotification", ctx, "host@test.com", "Toyota Corolla", true).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.ApproveCar(ctx, admin, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusApproved, res.Status)
	})

	t.Run("Reject already rejected is a no-op", func(t *testing.T) {
		_, carRepo, _, userRepo, _, emailSvc, noteRepo, svc := newCarFixture()
		rejected := pendingCar()
		rejected.Status = domain.CarStatusRejected
		carRepo.On("GetByID", ctx, int32(7)).Return(rejected, nil)
		carRepo.On("Update", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)
		userRepo.On("GetByID", ctx, int32(10)).Return(&domain.User{ID: 10, Email: "host@test.com", Name: "Host"}, nil)
		emailSvc.On("SendListingDecisionNotification", ctx, "host@test.com", "Toyota Corolla", false).Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.RejectCar(ctx, admin, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.CarStatusRejected, res.Status)
	})

	t.Run("Non-admin refused", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		host := domain.Principal{UserID: 10, Roles: []domain.Role{domain.RoleHost}}

		res, err := svc.ApproveCar(ctx, host, 7)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.ErrAuthorization))
		carRepo.AssertNotCalled(t, "GetByID", ctx, mock.Anything)
	})

	t.Run("Missing car", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		carRepo.On("GetByID", ctx, int32(7)).Return(nil, domain.NewNotFoundError("car", 7))

		res, err := svc.ApproveCar(ctx, admin, 7)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.ErrNotFound))
	})
}

func TestCarService_UpdateCar(t *testing.T) {
	ctx := context.Background()
	host := domain.Principal{UserID: 10, Roles: []domain.Role{domain.RoleHost}}

	t.Run("Owner edits mutable fields", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		car := &domain.Car{ID: 7, HostID: 10, Brand: "Toyota", Model: "Corolla", PricePerDayCents: 5000, Location: "Sofia", Status: domain.CarStatusApproved}
		carRepo.On("GetByID", ctx, int32(7)).Return(car, nil)
		carRepo.On("Update", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)

		res, err := svc.UpdateCar(ctx, host, 7, service.EditCarInput{PricePerDayCents: 6000, Location: "Plovdiv"})
		assert.NoError(t, err)
		assert.Equal(t, int32(6000), res.PricePerDayCents)
		assert.Equal(t, "Plovdiv", res.Location)
	})

	t.Run("Replacing image deletes the old one", func(t *testing.T) {
		_, carRepo, _, _, blobs, _, _, svc := newCarFixture()
		old := "old.jpg"
		car := &domain.Car{ID: 7, HostID: 10, PricePerDayCents: 5000, Location: "Sofia", ImagePath: &old, Status: domain.CarStatusApproved}
		carRepo.On("GetByID", ctx, int32(7)).Return(car, nil)
		blobs.On("Save", ctx, "new.jpg", mock.Anything).Return("new-key.jpg", nil)
		carRepo.On("Update", ctx, mock.AnythingOfType("*domain.Car")).Return(nil)
		blobs.On("Delete", ctx, "old.jpg").Return(nil)

		res, err := svc.UpdateCar(ctx, host, 7, service.EditCarInput{
			PricePerDayCents: 5000,
			Location:         "Sofia",
			ImageData:        []byte{0xFF, 0xD8},
			ImageName:        "new.jpg",
		})
		assert.NoError(t, err)
		if assert.NotNil(t, res.ImagePath) {
			assert.Equal(t, "new-key.jpg", *res.ImagePath)
		}
		blobs.AssertCalled(t, "Delete", ctx, "old.jpg")
	})

	t.Run("Other host refused", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		car := &domain.Car{ID: 7, HostID: 99, Status: domain.CarStatusApproved}
		carRepo.On("GetByID", ctx, int32(7)).Return(car, nil)

		res, err := svc.UpdateCar(ctx, host, 7, service.EditCarInput{PricePerDayCents: 6000, Location: "Sofia"})
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.ErrAuthorization))
	})
}

func TestCarService_DeleteCar(t *testing.T) {
	ctx := context.Background()
	host := domain.Principal{UserID: 10, Roles: []domain.Role{domain.RoleHost}}

	t.Run("Delete with no live bookings", func(t *testing.T) {
		factory, carRepo, bookingRepo, _, blobs, _, _, svc := newCarFixture()
		img := "img.jpg"
		car := &domain.Car{ID: 7, HostID: 10, ImagePath: &img}
		carRepo.On("GetByID", ctx, int32(7)).Return(car, nil)
		bookingRepo.On("CountNonTerminalByCar", ctx, int32(7)).Return(int32(0), nil)
		carRepo.On("Delete", ctx, int32(7)).Return(nil)
		blobs.On("Delete", ctx, "img.jpg").Return(nil)

		err := svc.DeleteCar(ctx, host, 7)
		assert.NoError(t, err)
		assert.True(t, factory.uow.completed)
		blobs.AssertCalled(t, "Delete", ctx, "img.jpg")
	})

	t.Run("Live bookings block deletion", func(t *testing.T) {
		factory, carRepo, bookingRepo, _, _, _, _, svc := newCarFixture()
		carRepo.On("GetByID", ctx, int32(7)).Return(&domain.Car{ID: 7, HostID: 10}, nil)
		bookingRepo.On("CountNonTerminalByCar", ctx, int32(7)).Return(int32(2), nil)

		err := svc.DeleteCar(ctx, host, 7)
		assert.True(t, domain.IsKind(err, domain.ErrConflict))
		assert.False(t, factory.uow.completed)
		carRepo.AssertNotCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("Admin may delete another host's car", func(t *testing.T) {
		_, carRepo, bookingRepo, _, _, _, _, svc := newCarFixture()
		admin := domain.Principal{UserID: 5, Roles: []domain.Role{domain.RoleAdmin}}
		carRepo.On("GetByID", ctx, int32(7)).Return(&domain.Car{ID: 7, HostID: 10}, nil)
		bookingRepo.On("CountNonTerminalByCar", ctx, int32(7)).Return(int32(0), nil)
		carRepo.On("Delete", ctx, int32(7)).Return(nil)

		err := svc.DeleteCar(ctx, admin, 7)
		assert.NoError(t, err)
	})

	t.Run("Other host refused", func(t *testing.T) {
		_, carRepo, _, _, _, _, _, svc := newCarFixture()
		intruder := domain.Principal{UserID: 99, Roles: []domain.Role{domain.RoleHost}}
		carRepo.On("GetByID", ctx, int32(7)).Return(&domain.Car{ID: 7, HostID: 10}, nil)

		err := svc.DeleteCar(ctx, intruder, 7)
		assert.True(t, domain.IsKind(err, domain.ErrAuthorization))
	})
}
