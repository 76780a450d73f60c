package application

import (
	"context"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"cars-api/internal/apperr"
	"cars-api/internal/domain/entity"
	repo "cars-api/internal/domain/repository"
	"cars-api/pkg/helpers"
	"cars-api/pkg/storage"
)

// UserService implements user CRUD, sign-in, and photo upload. Car
// reconciliation during update lives in reconcile.go.
type UserService struct {
	Users    repo.UserRepository
	Cars     repo.CarRepository
	Validate *Validator
	JWT      *helpers.JWTManager
	Photos   storage.PhotoStore
	Logger   *logrus.Logger
	ES       *elasticsearch.Client
	ESIndex  string
}

func NewUserService(users repo.UserRepository, cars repo.CarRepository, jwt *helpers.JWTManager, photos storage.PhotoStore, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *UserService {
	return &UserService{
		Users:    users,
		Cars:     cars,
		Validate: &Validator{Users: users, Cars: cars},
		JWT:      jwt,
		Photos:   photos,
		Logger:   logger,
		ES:       es,
		ESIndex:  esIndex,
	}
}

// Create registers a new user. Cars in the input are matched to existing
// rows by plate and reused, or created fresh; unlike update, creation does
// not check plate ownership against other users.
func (s *UserService) Create(ctx context.Context, in UserInput) (*entity.User, error) {
	if err := s.Validate.ValidateNewUser(ctx, in); err != nil {
		return nil, err
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Birthday:  in.Birthday,
		Login:     in.Login,
		Password:  hash,
		Email:     in.Email,
		Phone:     in.Phone,
		Status:    entity.StatusActive,
	}
	for _, ci := range in.Cars {
		existing, err := s.Cars.FindByLicensePlate(ctx, ci.LicensePlate)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			u.Cars = append(u.Cars, *existing)
			continue
		}
		u.Cars = append(u.Cars, entity.Car{
			Year:         ci.year(),
			LicensePlate: ci.LicensePlate,
			Model:        ci.Model,
			Color:        ci.Color,
		})
	}
	if err := s.Users.SaveWithCars(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "login": u.Login}).Info("user created")
	s.indexUser(ctx, u)
	return u, nil
}

// List returns all active users, cars sorted by usage.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Users.FindByStatus(ctx, entity.StatusActive)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].SortCarsByUsage()
	}
	return users, nil
}

// Get returns an active user by ID, cars sorted by usage.
func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.Users.FindByIDAndStatus(ctx, id, entity.StatusActive)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	u.SortCarsByUsage()
	return u, nil
}

// Update merges the input into the stored user and reconciles the car list.
// Blank fields keep their stored values; a provided password is re-hashed.
// The whole operation is applied atomically or not at all.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (*entity.User, error) {
	u, err := s.Users.FindByIDAndStatus(ctx, id, entity.StatusActive)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	if err := s.Validate.ValidateUserUpdate(ctx, u, in); err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Birthday != "" {
		u.Birthday = in.Birthday
	}
	if in.Login != "" {
		u.Login = in.Login
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	if in.Cars != nil {
		if err := s.reconcileCars(ctx, u, in.Cars); err != nil {
			return nil, err
		}
	}

	if err := s.Users.SaveWithCars(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user updated")
	s.indexUser(ctx, u)
	return u, nil
}

// Delete deactivates the user. The row is kept; only the status flips.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.ErrNotFound
	}
	u.Status = entity.StatusInactive
	if err := s.Users.Save(ctx, u); err != nil {
		return err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": id}).Info("user deactivated")
	return nil
}

// UploadPhoto stores the photo and records its reference on the user.
func (s *UserService) UploadPhoto(ctx context.Context, id int64, filename, contentType string, r io.Reader) (*entity.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	url, err := s.Photos.Save(ctx, "users", id, filename, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Error("photo upload failed")
		return nil, apperr.ErrInvalidPhoto
	}
	u.PhotoURL = url
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignIn verifies credentials and issues a bearer token. The token stays
// valid for its full window regardless of later account changes; there is
// no refresh or revocation.
func (s *UserService) SignIn(ctx context.Context, login, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Users.FindByLogin(ctx, login)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		s.Logger.WithField("login", login).Warn("failed sign-in attempt")
		return nil, "", time.Time{}, apperr.ErrInvalidLoginOrPassword
	}
	token, exp, err := s.JWT.Generate(u.Login)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u.LastLogin = time.Now()
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}
	s.Logger.WithField("login", login).Info("user signed in")
	return u, token, exp, nil
}
