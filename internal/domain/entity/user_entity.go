package entity

import (
	"sort"
	"time"
)

// UserStatus is the lifecycle state of a user account. Deleting a user flips
// the status to INACTIVE; rows are never removed.
type UserStatus string

const (
	StatusActive   UserStatus = "ACTIVE"
	StatusInactive UserStatus = "INACTIVE"
)

// User is the aggregate root for the user domain. Login and Email are unique
// across all rows regardless of status. Password holds a bcrypt hash.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Birthday  string
	Login     string
	Password  string
	Email     string
	Phone     string
	Status    UserStatus
	PhotoURL  string
	LastLogin time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Cars owned by this user. Loaded with the user on reads; replaced as a
	// set during update reconciliation.
	Cars []Car
}

// SortCarsByUsage orders the user's cars by usage amount, most used first.
func (u *User) SortCarsByUsage() {
	sort.SliceStable(u.Cars, func(i, j int) bool {
		return u.Cars[i].UsageAmount > u.Cars[j].UsageAmount
	})
}

// OwnedCarByPlate returns a pointer into Cars for the car with the given
// license plate, or nil when the user owns no such car.
func (u *User) OwnedCarByPlate(plate string) *Car {
	for i := range u.Cars {
		if u.Cars[i].LicensePlate == plate {
			return &u.Cars[i]
		}
	}
	return nil
}
