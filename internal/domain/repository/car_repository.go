package repository

import (
	"context"

	"cars-api/internal/domain/entity"
)

// CarRepository is the persistence boundary for cars. Same conventions as
// UserRepository: (nil, nil) for no match, errors are storage failures only.
type CarRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Car, error)
	FindByLicensePlate(ctx context.Context, plate string) (*entity.Car, error)

	// Ownership-scoped lookups used by the car endpoints; login is the
	// resolved identity's login.
	FindByIDAndOwnerLogin(ctx context.Context, id int64, login string) (*entity.Car, error)
	FindByOwnerLogin(ctx context.Context, login string) ([]entity.Car, error)

	Save(ctx context.Context, c *entity.Car) error
	Delete(ctx context.Context, c *entity.Car) error
}
