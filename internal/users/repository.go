package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/schoolhub/internal/platform/db"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type repo struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

const uniqueViolation = "23505"

// Create inserts the user inside a transaction so the duplicate-email check
// and the write see the same state. A concurrent insert still trips the
// unique index, which maps to the same duplicate error.
func (r *repo) Create(ctx context.Context, user User) (User, error) {
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var existing string
		err := tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, user.Email).Scan(&existing)
		if err == nil {
			return shared.ErrDuplicate
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		query := `INSERT INTO users (id, username, email, password_hash, role, school_id, created_at, updated_at)
		          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $7)`
		_, err = tx.Exec(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), user.SchoolID, now)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, shared.ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

func (r *repo) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, username, email, password_hash, role, COALESCE(school_id, ''), created_at, updated_at
	          FROM users WHERE email = $1`
	var u User
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.SchoolID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return u, err
}
