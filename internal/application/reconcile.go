package application

import (
	"context"

	"cars-api/internal/apperr"
	"cars-api/internal/domain/entity"
)

// reconcileCars merges the incoming car list into the user's owned set,
// keyed by license plate. For each entry:
//
//  1. plate matches an owned car: that car's year/model/color are updated
//     in place, identity and ownership unchanged;
//  2. plate exists elsewhere and belongs to a different user: the whole
//     update fails with a conflict and nothing is applied;
//  3. plate exists elsewhere but already belongs to this user (stale owned
//     list): the row is reattached and updated like case 1;
//  4. plate is unknown: a new car is created for this user.
//
// Owned cars absent from the incoming list are dropped from u.Cars; the
// repository disowns them on save rather than deleting the rows. The caller
// persists the result transactionally, so a mid-list failure leaves the
// stored set untouched.
//
// A plate repeated within one list merges into the entry already placed in
// the new set, so duplicates collapse instead of producing two rows with the
// same plate.
func (s *UserService) reconcileCars(ctx context.Context, u *entity.User, incoming []CarInput) error {
	next := make([]entity.Car, 0, len(incoming))
	for _, in := range incoming {
		if in.LicensePlate == "" {
			return apperr.ErrMissingFields
		}

		if placed := carByPlate(next, in.LicensePlate); placed != nil {
			applyCarInput(placed, in)
			continue
		}

		if owned := u.OwnedCarByPlate(in.LicensePlate); owned != nil {
			applyCarInput(owned, in)
			next = append(next, *owned)
			continue
		}

		existing, err := s.Cars.FindByLicensePlate(ctx, in.LicensePlate)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.OwnerID == nil || *existing.OwnerID != u.ID {
				return apperr.ErrLicensePlateConflict
			}
			applyCarInput(existing, in)
			next = append(next, *existing)
			continue
		}

		next = append(next, entity.Car{
			Year:         in.year(),
			LicensePlate: in.LicensePlate,
			Model:        in.Model,
			Color:        in.Color,
		})
	}
	u.Cars = next
	return nil
}

func carByPlate(cars []entity.Car, plate string) *entity.Car {
	for i := range cars {
		if cars[i].LicensePlate == plate {
			return &cars[i]
		}
	}
	return nil
}

func applyCarInput(c *entity.Car, in CarInput) {
	if in.Year != nil {
		c.Year = *in.Year
	}
	c.Model = in.Model
	c.Color = in.Color
}
