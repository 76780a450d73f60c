package repository

import (
	"context"

	"cars-api/internal/domain/entity"
)

// UserRepository is the persistence boundary for users. Lookups return
// (nil, nil) when no row matches; an error always means the storage call
// itself failed.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByIDAndStatus(ctx context.Context, id int64, status entity.UserStatus) (*entity.User, error)
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByStatus(ctx context.Context, status entity.UserStatus) ([]entity.User, error)

	// Save inserts or updates the user row only (no car changes).
	Save(ctx context.Context, u *entity.User) error

	// SaveWithCars persists the user and replaces its owned-car set with
	// u.Cars in a single transaction: listed cars are upserted with the user
	// as owner, previously owned cars missing from the list are disowned
	// (owner cleared, row kept). All-or-nothing.
	SaveWithCars(ctx context.Context, u *entity.User) error
}
