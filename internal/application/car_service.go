package application

import (
	"context"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"cars-api/internal/apperr"
	"cars-api/internal/domain/entity"
	repo "cars-api/internal/domain/repository"
	"cars-api/pkg/helpers"
	"cars-api/pkg/storage"
)

// CarService implements car CRUD scoped to the requesting identity: every
// lookup except photo upload goes through the owner's login.
type CarService struct {
	Cars     repo.CarRepository
	Validate *Validator
	Photos   storage.PhotoStore
	Redis    *redis.Client
	Logger   *logrus.Logger
}

func NewCarService(users repo.UserRepository, cars repo.CarRepository, photos storage.PhotoStore, rdb *redis.Client, logger *logrus.Logger) *CarService {
	return &CarService{
		Cars:     cars,
		Validate: &Validator{Users: users, Cars: cars},
		Photos:   photos,
		Redis:    rdb,
		Logger:   logger,
	}
}

// Create registers a car owned by the given user.
func (s *CarService) Create(ctx context.Context, in CarInput, owner *entity.User) (*entity.Car, error) {
	if err := s.Validate.ValidateNewCar(ctx, in); err != nil {
		return nil, err
	}
	c := &entity.Car{
		Year:         in.year(),
		LicensePlate: in.LicensePlate,
		Model:        in.Model,
		Color:        in.Color,
		OwnerID:      &owner.ID,
	}
	if err := s.Cars.Save(ctx, c); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"car_id": c.ID, "license_plate": c.LicensePlate}).Info("car created")
	return c, nil
}

// List returns the cars owned by the given user.
func (s *CarService) List(ctx context.Context, owner *entity.User) ([]entity.Car, error) {
	return s.Cars.FindByOwnerLogin(ctx, owner.Login)
}

// Get returns an owned car by ID and bumps its usage counter. The counter
// is persisted on the row; a redis mirror is kept best-effort for cheap
// reads.
func (s *CarService) Get(ctx context.Context, id int64, owner *entity.User) (*entity.Car, error) {
	c, err := s.Cars.FindByIDAndOwnerLogin(ctx, id, owner.Login)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	c.UsageAmount++
	if err := s.Cars.Save(ctx, c); err != nil {
		return nil, err
	}
	if err := helpers.IncrCarUsage(ctx, s.Redis, c.ID); err != nil {
		s.Logger.WithError(err).WithField("car_id", c.ID).Warn("usage counter mirror failed")
	}
	return c, nil
}

// Update overwrites an owned car's fields.
func (s *CarService) Update(ctx context.Context, id int64, in CarInput, owner *entity.User) (*entity.Car, error) {
	if err := s.Validate.ValidateCarUpdate(in); err != nil {
		return nil, err
	}
	c, err := s.Cars.FindByIDAndOwnerLogin(ctx, id, owner.Login)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	if in.LicensePlate != c.LicensePlate {
		other, err := s.Cars.FindByLicensePlate(ctx, in.LicensePlate)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, apperr.ErrLicensePlateConflict
		}
	}
	c.Year = *in.Year
	c.LicensePlate = in.LicensePlate
	c.Model = in.Model
	c.Color = in.Color
	if err := s.Cars.Save(ctx, c); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"car_id": c.ID}).Info("car updated")
	return c, nil
}

// Delete removes an owned car. Unlike users, cars are hard-deleted.
func (s *CarService) Delete(ctx context.Context, id int64, owner *entity.User) error {
	c, err := s.Cars.FindByIDAndOwnerLogin(ctx, id, owner.Login)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.ErrNotFound
	}
	if err := s.Cars.Delete(ctx, c); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"car_id": id}).Info("car deleted")
	return nil
}

// UploadPhoto stores the photo and records its reference on the car.
func (s *CarService) UploadPhoto(ctx context.Context, id int64, filename, contentType string, r io.Reader) (*entity.Car, error) {
	c, err := s.Cars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.ErrNotFound
	}
	url, err := s.Photos.Save(ctx, "cars", id, filename, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("car_id", id).Error("photo upload failed")
		return nil, apperr.ErrInvalidPhoto
	}
	c.PhotoURL = url
	if err := s.Cars.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
