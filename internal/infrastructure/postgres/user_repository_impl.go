package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cars-api/internal/domain/entity"
	"cars-api/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so car loading and
// upserts can run inside or outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const userColumns = `id, first_name, last_name, birthday, login, password, email, phone,
	status, photo_url, last_login, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Birthday, &u.Login, &u.Password,
		&u.Email, &u.Phone, &u.Status, &u.PhotoURL, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, args...))
	if err != nil || u == nil {
		return nil, err
	}
	if u.Cars, err = loadCarsByOwner(ctx, r.pool, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.findOne(ctx, `id = $1`, id)
}

func (r *UserRepository) FindByIDAndStatus(ctx context.Context, id int64, status entity.UserStatus) (*entity.User, error) {
	return r.findOne(ctx, `id = $1 AND status = $2`, id, status)
}

func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.findOne(ctx, `login = $1`, login)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `email = $1`, email)
}

func (r *UserRepository) FindByStatus(ctx context.Context, status entity.UserStatus) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE status = $1 ORDER BY id`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		u := entity.User{}
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Birthday, &u.Login, &u.Password,
			&u.Email, &u.Phone, &u.Status, &u.PhotoURL, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Cars, err = loadCarsByOwner(ctx, r.pool, users[i].ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	return saveUserRow(ctx, r.pool, u)
}

func saveUserRow(ctx context.Context, q querier, u *entity.User) error {
	if u.ID == 0 {
		row := q.QueryRow(ctx, `
			INSERT INTO users (first_name, last_name, birthday, login, password, email, phone, status, photo_url, last_login)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at
		`, u.FirstName, u.LastName, u.Birthday, u.Login, u.Password, u.Email, u.Phone, u.Status, u.PhotoURL, u.LastLogin)
		return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	}
	row := q.QueryRow(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, birthday = $3, login = $4, password = $5,
		    email = $6, phone = $7, status = $8, photo_url = $9,
		    last_login = $10, updated_at = now()
		WHERE id = $11
		RETURNING updated_at
	`, u.FirstName, u.LastName, u.Birthday, u.Login, u.Password, u.Email, u.Phone, u.Status, u.PhotoURL, u.LastLogin, u.ID)
	return row.Scan(&u.UpdatedAt)
}

// SaveWithCars persists the user and replaces its owned-car set in one
// transaction. Cars in u.Cars are upserted with the user as owner; cars the
// user owned before but that are absent from u.Cars are disowned, not
// deleted.
func (r *UserRepository) SaveWithCars(ctx context.Context, u *entity.User) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := saveUserRow(ctx, tx, u); err != nil {
			return err
		}
		for i := range u.Cars {
			u.Cars[i].OwnerID = &u.ID
			if err := saveCarRow(ctx, tx, &u.Cars[i]); err != nil {
				return err
			}
		}
		keep := make([]int64, 0, len(u.Cars))
		for i := range u.Cars {
			keep = append(keep, u.Cars[i].ID)
		}
		_, err := tx.Exec(ctx, `
			UPDATE cars SET owner_id = NULL
			WHERE owner_id = $1 AND NOT (id = ANY($2))
		`, u.ID, keep)
		return err
	})
}

var _ repository.UserRepository = (*UserRepository)(nil)
