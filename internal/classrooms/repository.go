package classrooms

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/schoolhub/internal/shared"
)

// Repository abstracts classroom persistence.
type Repository interface {
	Create(ctx context.Context, classroom Classroom) (Classroom, error)
	FindByID(ctx context.Context, id string) (Classroom, error)
	List(ctx context.Context, schoolID string) ([]Classroom, error)
	Update(ctx context.Context, classroom Classroom) (Classroom, error)
	Delete(ctx context.Context, id string) error
}

type repo struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

func (r *repo) Create(ctx context.Context, classroom Classroom) (Classroom, error) {
	query := `INSERT INTO classrooms (id, name, school_id, capacity, resources, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)`
	now := time.Now()
	classroom.ID = uuid.NewString()
	classroom.CreatedAt = now
	classroom.UpdatedAt = now
	if classroom.Resources == nil {
		classroom.Resources = []string{}
	}
	_, err := r.pool.Exec(ctx, query, classroom.ID, classroom.Name, classroom.SchoolID, classroom.Capacity, classroom.Resources, now)
	if err != nil {
		return Classroom{}, err
	}
	return classroom, nil
}

func (r *repo) FindByID(ctx context.Context, id string) (Classroom, error) {
	query := `SELECT id, name, school_id, capacity, resources, created_at, updated_at FROM classrooms WHERE id = $1`
	var c Classroom
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.SchoolID, &c.Capacity, &c.Resources, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Classroom{}, shared.ErrNotFound
	}
	return c, err
}

// List returns classrooms of one school, or all classrooms when schoolID is
// empty.
func (r *repo) List(ctx context.Context, schoolID string) ([]Classroom, error) {
	query := `SELECT id, name, school_id, capacity, resources, created_at, updated_at FROM classrooms
	          WHERE ($1 = '' OR school_id = $1) ORDER BY name`
	rows, err := r.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := []Classroom{}
	for rows.Next() {
		var c Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.SchoolID, &c.Capacity, &c.Resources, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}

func (r *repo) Update(ctx context.Context, classroom Classroom) (Classroom, error) {
	query := `UPDATE classrooms SET name = $2, capacity = $3, resources = $4, updated_at = $5 WHERE id = $1`
	classroom.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, query, classroom.ID, classroom.Name, classroom.Capacity, classroom.Resources, classroom.UpdatedAt)
	if err != nil {
		return Classroom{}, err
	}
	if tag.RowsAffected() == 0 {
		return Classroom{}, shared.ErrNotFound
	}
	return classroom, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
