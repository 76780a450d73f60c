package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cars-api/internal/apperr"
	"cars-api/internal/domain/entity"
)

func carInput(plate string) CarInput {
	return CarInput{Year: intp(2018), LicensePlate: plate, Model: "Audi A3", Color: "White"}
}

func createOwner(t *testing.T, us *UserService, login, email string) *entity.User {
	t.Helper()
	u, err := us.Create(context.Background(), validUserInput(login, email))
	require.NoError(t, err)
	return u
}

func TestCreateCar(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")

	c, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)
	require.NotZero(t, c.ID)
	require.NotNil(t, c.OwnerID)
	assert.Equal(t, owner.ID, *c.OwnerID)
}

func TestCreateCarMissingFields(t *testing.T) {
	us, cs, _ := newTestServices()
	owner := createOwner(t, us, "alice", "alice@example.com")

	in := carInput("PDV0001")
	in.Model = ""
	_, err := cs.Create(context.Background(), in, owner)
	assert.ErrorIs(t, err, apperr.ErrMissingFields)
}

func TestCreateCarDuplicatePlate(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")

	_, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)

	// Conflicts even against your own car: plates are globally unique.
	_, err = cs.Create(ctx, carInput("PDV0001"), owner)
	assert.ErrorIs(t, err, apperr.ErrLicensePlateConflict)
}

func TestGetCarBumpsUsage(t *testing.T) {
	us, cs, db := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)

	got, err := cs.Get(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageAmount)

	got, err = cs.Get(ctx, c.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageAmount)

	// The bump is persisted, not just reflected in the response.
	assert.Equal(t, 2, db.cars[c.ID].UsageAmount)
}

func TestGetCarScopedToOwner(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	alice := createOwner(t, us, "alice", "alice@example.com")
	bob := createOwner(t, us, "bob", "bob@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), alice)
	require.NoError(t, err)

	_, err = cs.Get(ctx, c.ID, bob)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListCarsScopedToOwner(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	alice := createOwner(t, us, "alice", "alice@example.com")
	bob := createOwner(t, us, "bob", "bob@example.com")
	_, err := cs.Create(ctx, carInput("PDV0001"), alice)
	require.NoError(t, err)
	_, err = cs.Create(ctx, carInput("PDV0002"), bob)
	require.NoError(t, err)

	cars, err := cs.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "PDV0001", cars[0].LicensePlate)
}

func TestUpdateCar(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)

	got, err := cs.Update(ctx, c.ID, CarInput{Year: intp(2021), LicensePlate: "PDV0009", Model: "Audi A4", Color: "Black"}, owner)
	require.NoError(t, err)
	assert.Equal(t, 2021, got.Year)
	assert.Equal(t, "PDV0009", got.LicensePlate)
	assert.Equal(t, "Audi A4", got.Model)
}

func TestUpdateCarRequiresEveryField(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)

	// Unlike user update, car update is a full overwrite: year included.
	_, err = cs.Update(ctx, c.ID, CarInput{LicensePlate: "PDV0001", Model: "Audi A3", Color: "White"}, owner)
	assert.ErrorIs(t, err, apperr.ErrMissingFields)
}

func TestUpdateCarPlateConflict(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")
	c1, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)
	_, err = cs.Create(ctx, carInput("PDV0002"), owner)
	require.NoError(t, err)

	_, err = cs.Update(ctx, c1.ID, CarInput{Year: intp(2018), LicensePlate: "PDV0002", Model: "Audi A3", Color: "White"}, owner)
	assert.ErrorIs(t, err, apperr.ErrLicensePlateConflict)
}

func TestUpdateCarScopedToOwner(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	alice := createOwner(t, us, "alice", "alice@example.com")
	bob := createOwner(t, us, "bob", "bob@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), alice)
	require.NoError(t, err)

	_, err = cs.Update(ctx, c.ID, CarInput{Year: intp(2021), LicensePlate: "PDV0009", Model: "X", Color: "Y"}, bob)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteCarIsHard(t *testing.T) {
	us, cs, db := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)

	require.NoError(t, cs.Delete(ctx, c.ID, owner))
	assert.NotContains(t, db.cars, c.ID)

	err = cs.Delete(ctx, c.ID, owner)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUploadCarPhoto(t *testing.T) {
	us, cs, _ := newTestServices()
	ctx := context.Background()
	owner := createOwner(t, us, "alice", "alice@example.com")
	c, err := cs.Create(ctx, carInput("PDV0001"), owner)
	require.NoError(t, err)

	got, err := cs.UploadPhoto(ctx, c.ID, "car.jpg", "image/jpeg", bytesReader("jpg-bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.PhotoURL)

	cs.Photos = &fakePhotoStore{fail: true}
	_, err = cs.UploadPhoto(ctx, c.ID, "car.jpg", "image/jpeg", bytesReader("jpg-bytes"))
	assert.ErrorIs(t, err, apperr.ErrInvalidPhoto)
}
