package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"driveshare-backend/internal/domain"
	"driveshare-backend/internal/metrics"
	"driveshare-backend/internal/repository"
	"driveshare-backend/internal/storage"
)

type carService struct {
	uowFactory repository.UnitOfWorkFactory
	carRepo    repository.CarRepository
	userRepo   repository.UserRepository
	blobs      storage.BlobStore
	emailSvc   EmailService
	noteRepo   repository.NotificationRepository
	validate   *validator.Validate
}

func NewCarService(
	uowFactory repository.UnitOfWorkFactory,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	blobs storage.BlobStore,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) CarService {
	return &carService{
		uowFactory: uowFactory,
		carRepo:    carRepo,
		userRepo:   userRepo,
		blobs:      blobs,
		emailSvc:   emailSvc,
		noteRepo:   noteRepo,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AddCar creates a new listing in PENDING review state. Every listing
// waits for an admin decision before renters can see it.
func (s *carService) AddCar(ctx context.Context, principal domain.Principal, in AddCarInput) (*domain.Car, error) {
	if !principal.HasRole(domain.RoleHost) {
		return nil, domain.NewAuthorizationError("host role required")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	var imagePath *string
	if len(in.ImageData) > 0 {
		key, err := s.blobs.Save(ctx, in.ImageName, bytes.NewReader(in.ImageData))
		if err != nil {
			return nil, domain.NewValidationError(map[string]string{"image": err.Error()})
		}
		imagePath = &key
	}

	car := &domain.Car{
		HostID:           principal.UserID,
		Brand:            in.Brand,
		CarType:          in.CarType,
		Model:            in.Model,
		Year:             in.Year,
		Transmission:     in.Transmission,
		FuelType:         in.FuelType,
		Seats:            in.Seats,
		PricePerDayCents: in.PricePerDayCents,
		Location:         in.Location,
		Description:      in.Description,
		ImagePath:        imagePath,
		Status:           domain.CarStatusPending,
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		if imagePath != nil {
			_ = s.blobs.Delete(ctx, *imagePath)
		}
		return nil, err
	}
	return car, nil
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	return s.carRepo.GetWithHost(ctx, id)
}

func (s *carService) UpdateCar(ctx context.Context, principal domain.Principal, carID int32, in EditCarInput) (*domain.Car, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.HostID != principal.UserID {
		return nil, domain.NewAuthorizationError("car belongs to another host")
	}

	var newImage, oldImage *string
	if len(in.ImageData) > 0 {
		key, err := s.blobs.Save(ctx, in.ImageName, bytes.NewReader(in.ImageData))
		if err != nil {
			return nil, domain.NewValidationError(map[string]string{"image": err.Error()})
		}
		newImage = &key
		oldImage = car.ImagePath
		car.ImagePath = newImage
	}

	car.PricePerDayCents = in.PricePerDayCents
	car.Location = in.Location
	car.Description = in.Description

	if err := s.carRepo.Update(ctx, car); err != nil {
		if newImage != nil {
			_ = s.blobs.Delete(ctx, *newImage)
		}
		return nil, err
	}
	if oldImage != nil {
		_ = s.blobs.Delete(ctx, *oldImage)
	}
	return car, nil
}

// DeleteCar removes a listing once nothing live depends on it. A car
// with any non-terminal booking is refused; the database foreign key
// backstops the same rule.
func (s *carService) DeleteCar(ctx context.Context, principal domain.Principal, carID int32) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Release()

	car, err := uow.Cars().GetByID(ctx, carID)
	if err != nil {
		return err
	}
	if car.HostID != principal.UserID && !principal.HasRole(domain.RoleAdmin) {
		return domain.NewAuthorizationError("car belongs to another host")
	}

	active, err := uow.Bookings().CountNonTerminalByCar(ctx, carID)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.NewConflictError("car has active or pending bookings")
	}

	if err := uow.Cars().Delete(ctx, carID); err != nil {
		return err
	}
	if err := uow.Complete(ctx); err != nil {
		return err
	}

	if car.ImagePath != nil {
		_ = s.blobs.Delete(ctx, *car.ImagePath)
	}
	return nil
}

// ApproveCar and RejectCar overwrite the review status unconditionally;
// admins can revisit a decision and the repeat is a no-op.
func (s *carService) ApproveCar(ctx context.Context, principal domain.Principal, carID int32) (*domain.Car, error) {
	return s.reviewCar(ctx, principal, carID, domain.CarStatusApproved)
}

func (s *carService) RejectCar(ctx context.Context, principal domain.Principal, carID int32) (*domain.Car, error) {
	return s.reviewCar(ctx, principal, carID, domain.CarStatusRejected)
}

func (s *carService) reviewCar(ctx context.Context, principal domain.Principal, carID int32, status domain.CarStatus) (*domain.Car, error) {
	if !principal.HasRole(domain.RoleAdmin) {
		return nil, domain.NewAuthorizationError("admin role required")
	}

	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	car.Status = status
	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}
	metrics.CarReviewsTotal.WithLabelValues(string(status)).Inc()

	host, _ := s.userRepo.GetByID(ctx, car.HostID)
	if host != nil {
		title := carTitle(car)
		approved := status == domain.CarStatusApproved
		_ = s.emailSvc.SendListingDecisionNotification(ctx, host.Email, title, approved)

		verb := "approved"
		noteType := "LISTING_APPROVED"
		if !approved {
			verb = "rejected"
			noteType = "LISTING_REJECTED"
		}
		notif := &domain.Notification{
			UserID:  host.ID,
			Title:   fmt.Sprintf("Listing %s", verb),
			Message: fmt.Sprintf("Your listing %s was %s", title, verb),
			Attributes: map[string]string{
				"type":   noteType,
				"car_id": fmt.Sprintf("%d", car.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return car, nil
}

func (s *carService) ListApprovedCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.ListApproved(ctx)
}

func (s *carService) ListPendingCars(ctx context.Context, principal domain.Principal) ([]domain.Car, error) {
	if !principal.HasRole(domain.RoleAdmin) {
		return nil, domain.NewAuthorizationError("admin role required")
	}
	return s.carRepo.ListPending(ctx)
}

func (s *carService) ListHostCars(ctx context.Context, principal domain.Principal) ([]domain.Car, error) {
	if !principal.HasRole(domain.RoleHost) {
		return nil, domain.NewAuthorizationError("host role required")
	}
	return s.carRepo.ListByHost(ctx, principal.UserID)
}

// validationError converts validator output to the per-field map the
// API layer renders.
func validationError(err error) error {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
		return domain.NewValidationError(fields)
	}
	return domain.NewValidationError(map[string]string{"input": err.Error()})
}
