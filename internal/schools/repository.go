package schools

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/schoolhub/internal/shared"
)

// Repository abstracts school persistence.
type Repository interface {
	Create(ctx context.Context, school School) (School, error)
	FindByID(ctx context.Context, id string) (School, error)
	List(ctx context.Context) ([]School, error)
	Update(ctx context.Context, school School) (School, error)
	Delete(ctx context.Context, id string) error
}

// repo provides PostgreSQL backed persistence.
type repo struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

func (r *repo) Create(ctx context.Context, school School) (School, error) {
	query := `INSERT INTO schools (id, name, address, email, phone, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)`
	now := time.Now()
	school.ID = uuid.NewString()
	school.CreatedAt = now
	school.UpdatedAt = now
	if _, err := r.pool.Exec(ctx, query, school.ID, school.Name, school.Address, school.Email, school.Phone, now); err != nil {
		return School{}, err
	}
	return school, nil
}

func (r *repo) FindByID(ctx context.Context, id string) (School, error) {
	query := `SELECT id, name, address, email, phone, created_at, updated_at FROM schools WHERE id = $1`
	var s School
	err := r.pool.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Address, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return School{}, shared.ErrNotFound
	}
	return s, err
}

func (r *repo) List(ctx context.Context) ([]School, error) {
	query := `SELECT id, name, address, email, phone, created_at, updated_at FROM schools ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := []School{}
	for rows.Next() {
		var s School
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schools = append(schools, s)
	}
	return schools, rows.Err()
}

func (r *repo) Update(ctx context.Context, school School) (School, error) {
	query := `UPDATE schools SET name = $2, address = $3, email = $4, phone = $5, updated_at = $6 WHERE id = $1`
	school.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, query, school.ID, school.Name, school.Address, school.Email, school.Phone, school.UpdatedAt)
	if err != nil {
		return School{}, err
	}
	if tag.RowsAffected() == 0 {
		return School{}, shared.ErrNotFound
	}
	return school, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
