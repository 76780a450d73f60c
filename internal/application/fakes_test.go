package application

import (
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cars-api/internal/domain/entity"
	"cars-api/pkg/helpers"
)

// memDB is the shared in-memory backing store for the fake repositories.
// It stores copies, so entities returned from lookups never alias rows.
type memDB struct {
	users      map[int64]*entity.User
	cars       map[int64]*entity.Car
	nextUserID int64
	nextCarID  int64
}

func newMemDB() *memDB {
	return &memDB{users: map[int64]*entity.User{}, cars: map[int64]*entity.Car{}}
}

func (db *memDB) carsOwnedBy(ownerID int64) []entity.Car {
	var out []entity.Car
	for _, c := range db.cars {
		if c.OwnerID != nil && *c.OwnerID == ownerID {
			out = append(out, copyCar(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func copyCar(c *entity.Car) entity.Car {
	cp := *c
	if c.OwnerID != nil {
		o := *c.OwnerID
		cp.OwnerID = &o
	}
	return cp
}

type fakeUserRepo struct{ db *memDB }

func (r *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range r.db.users {
		if match(u) {
			cp := *u
			cp.Cars = r.db.carsOwnedBy(u.ID)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByIDAndStatus(_ context.Context, id int64, status entity.UserStatus) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id && u.Status == status })
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Login == login })
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) FindByStatus(_ context.Context, status entity.UserStatus) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.db.users {
		if u.Status == status {
			cp := *u
			cp.Cars = r.db.carsOwnedBy(u.ID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *entity.User) error {
	if u.ID == 0 {
		r.db.nextUserID++
		u.ID = r.db.nextUserID
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()
	cp := *u
	cp.Cars = nil
	r.db.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SaveWithCars(ctx context.Context, u *entity.User) error {
	if err := r.Save(ctx, u); err != nil {
		return err
	}
	cars := &fakeCarRepo{db: r.db}
	keep := map[int64]bool{}
	for i := range u.Cars {
		owner := u.ID
		u.Cars[i].OwnerID = &owner
		if err := cars.Save(ctx, &u.Cars[i]); err != nil {
			return err
		}
		keep[u.Cars[i].ID] = true
	}
	for _, c := range r.db.cars {
		if c.OwnerID != nil && *c.OwnerID == u.ID && !keep[c.ID] {
			c.OwnerID = nil
		}
	}
	return nil
}

type fakeCarRepo struct{ db *memDB }

func (r *fakeCarRepo) FindByID(_ context.Context, id int64) (*entity.Car, error) {
	if c, ok := r.db.cars[id]; ok {
		cp := copyCar(c)
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCarRepo) FindByLicensePlate(_ context.Context, plate string) (*entity.Car, error) {
	for _, c := range r.db.cars {
		if c.LicensePlate == plate {
			cp := copyCar(c)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCarRepo) ownerID(login string) (int64, bool) {
	for _, u := range r.db.users {
		if u.Login == login {
			return u.ID, true
		}
	}
	return 0, false
}

func (r *fakeCarRepo) FindByIDAndOwnerLogin(_ context.Context, id int64, login string) (*entity.Car, error) {
	oid, ok := r.ownerID(login)
	if !ok {
		return nil, nil
	}
	c, ok := r.db.cars[id]
	if !ok || c.OwnerID == nil || *c.OwnerID != oid {
		return nil, nil
	}
	cp := copyCar(c)
	return &cp, nil
}

func (r *fakeCarRepo) FindByOwnerLogin(_ context.Context, login string) ([]entity.Car, error) {
	oid, ok := r.ownerID(login)
	if !ok {
		return nil, nil
	}
	return r.db.carsOwnedBy(oid), nil
}

func (r *fakeCarRepo) Save(_ context.Context, c *entity.Car) error {
	if c.ID == 0 {
		r.db.nextCarID++
		c.ID = r.db.nextCarID
	}
	cp := copyCar(c)
	r.db.cars[c.ID] = &cp
	return nil
}

func (r *fakeCarRepo) Delete(_ context.Context, c *entity.Car) error {
	delete(r.db.cars, c.ID)
	return nil
}

type fakePhotoStore struct{ fail bool }

func (s *fakePhotoStore) Save(_ context.Context, kind string, ownerID int64, filename, _ string, r io.Reader) (string, error) {
	if s.fail {
		return "", errors.New("store unavailable")
	}
	_, _ = io.Copy(io.Discard, r)
	return "/" + kind + "/" + strconv.FormatInt(ownerID, 10) + "/" + filename, nil
}

func newTestServices() (*UserService, *CarService, *memDB) {
	db := newMemDB()
	users := &fakeUserRepo{db: db}
	cars := &fakeCarRepo{db: db}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-secret", 2*time.Hour)
	us := NewUserService(users, cars, jwt, &fakePhotoStore{}, logger, nil, "")
	cs := NewCarService(users, cars, &fakePhotoStore{}, nil, logger)
	return us, cs, db
}

func validUserInput(login, email string) UserInput {
	return UserInput{
		FirstName: "Alice",
		LastName:  "Souza",
		Birthday:  "1990-05-12",
		Login:     login,
		Password:  "s3cret",
		Email:     email,
		Phone:     "+5511988887777",
	}
}

func intp(v int) *int { return &v }

func bytesReader(s string) io.Reader { return strings.NewReader(s) }
