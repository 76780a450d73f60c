package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cars-api/internal/domain/entity"
	"cars-api/internal/domain/repository"
)

const carColumns = `id, car_year, license_plate, model, color, usage_amount, photo_url, owner_id`

type CarRepository struct {
	pool *pgxpool.Pool
}

func NewCarRepository(pool *pgxpool.Pool) *CarRepository {
	return &CarRepository{pool: pool}
}

func scanCar(row pgx.Row) (*entity.Car, error) {
	c := &entity.Car{}
	err := row.Scan(&c.ID, &c.Year, &c.LicensePlate, &c.Model, &c.Color, &c.UsageAmount, &c.PhotoURL, &c.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CarRepository) FindByID(ctx context.Context, id int64) (*entity.Car, error) {
	return scanCar(r.pool.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1`, id))
}

func (r *CarRepository) FindByLicensePlate(ctx context.Context, plate string) (*entity.Car, error) {
	return scanCar(r.pool.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE license_plate = $1`, plate))
}

func (r *CarRepository) FindByIDAndOwnerLogin(ctx context.Context, id int64, login string) (*entity.Car, error) {
	return scanCar(r.pool.QueryRow(ctx, `
		SELECT c.id, c.car_year, c.license_plate, c.model, c.color, c.usage_amount, c.photo_url, c.owner_id
		FROM cars c JOIN users u ON u.id = c.owner_id
		WHERE c.id = $1 AND u.login = $2
	`, id, login))
}

func (r *CarRepository) FindByOwnerLogin(ctx context.Context, login string) ([]entity.Car, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.car_year, c.license_plate, c.model, c.color, c.usage_amount, c.photo_url, c.owner_id
		FROM cars c JOIN users u ON u.id = c.owner_id
		WHERE u.login = $1
		ORDER BY c.id
	`, login)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

func loadCarsByOwner(ctx context.Context, q querier, ownerID int64) ([]entity.Car, error) {
	rows, err := q.Query(ctx, `SELECT `+carColumns+` FROM cars WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

func collectCars(rows pgx.Rows) ([]entity.Car, error) {
	var cars []entity.Car
	for rows.Next() {
		c := entity.Car{}
		if err := rows.Scan(&c.ID, &c.Year, &c.LicensePlate, &c.Model, &c.Color, &c.UsageAmount, &c.PhotoURL, &c.OwnerID); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *CarRepository) Save(ctx context.Context, c *entity.Car) error {
	return saveCarRow(ctx, r.pool, c)
}

func saveCarRow(ctx context.Context, q querier, c *entity.Car) error {
	if c.ID == 0 {
		row := q.QueryRow(ctx, `
			INSERT INTO cars (car_year, license_plate, model, color, usage_amount, photo_url, owner_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, c.Year, c.LicensePlate, c.Model, c.Color, c.UsageAmount, c.PhotoURL, c.OwnerID)
		return row.Scan(&c.ID)
	}
	_, err := q.Exec(ctx, `
		UPDATE cars
		SET car_year = $1, license_plate = $2, model = $3, color = $4,
		    usage_amount = $5, photo_url = $6, owner_id = $7
		WHERE id = $8
	`, c.Year, c.LicensePlate, c.Model, c.Color, c.UsageAmount, c.PhotoURL, c.OwnerID, c.ID)
	return err
}

func (r *CarRepository) Delete(ctx context.Context, c *entity.Car) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cars WHERE id = $1`, c.ID)
	return err
}

var _ repository.CarRepository = (*CarRepository)(nil)
