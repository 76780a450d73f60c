package application

import (
	"context"

	"cars-api/internal/apperr"
	"cars-api/internal/domain/entity"
	repo "cars-api/internal/domain/repository"
)

// Validator enforces required-field and uniqueness invariants before any
// write. Checks run in a fixed order and the first failure wins; no
// multi-error aggregation.
type Validator struct {
	Users repo.UserRepository
	Cars  repo.CarRepository
}

// ValidateNewUser checks required fields first, then email uniqueness, then
// login uniqueness.
func (v *Validator) ValidateNewUser(ctx context.Context, in UserInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Birthday == "" ||
		in.Password == "" || in.Phone == "" || in.Login == "" || in.Email == "" {
		return apperr.ErrMissingFields
	}
	if u, err := v.Users.FindByEmail(ctx, in.Email); err != nil {
		return err
	} else if u != nil {
		return apperr.ErrEmailExists
	}
	if u, err := v.Users.FindByLogin(ctx, in.Login); err != nil {
		return err
	} else if u != nil {
		return apperr.ErrLoginExists
	}
	return nil
}

// ValidateUserUpdate checks uniqueness only for the fields actually
// changing. Update is a partial merge, so blank-field requirements are not
// re-checked here; that asymmetry with creation is deliberate.
func (v *Validator) ValidateUserUpdate(ctx context.Context, existing *entity.User, in UserInput) error {
	if in.Email != "" && in.Email != existing.Email {
		if u, err := v.Users.FindByEmail(ctx, in.Email); err != nil {
			return err
		} else if u != nil {
			return apperr.ErrEmailExists
		}
	}
	if in.Login != "" && in.Login != existing.Login {
		if u, err := v.Users.FindByLogin(ctx, in.Login); err != nil {
			return err
		} else if u != nil {
			return apperr.ErrLoginExists
		}
	}
	return nil
}

// ValidateNewCar rejects blank required fields and plates already taken.
func (v *Validator) ValidateNewCar(ctx context.Context, in CarInput) error {
	if in.LicensePlate == "" || in.Model == "" || in.Color == "" {
		return apperr.ErrMissingFields
	}
	if c, err := v.Cars.FindByLicensePlate(ctx, in.LicensePlate); err != nil {
		return err
	} else if c != nil {
		return apperr.ErrLicensePlateConflict
	}
	return nil
}

// ValidateCarUpdate requires every field, year included.
func (v *Validator) ValidateCarUpdate(in CarInput) error {
	if in.LicensePlate == "" || in.Model == "" || in.Color == "" || in.Year == nil {
		return apperr.ErrMissingFields
	}
	return nil
}
