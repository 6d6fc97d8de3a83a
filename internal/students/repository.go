package students

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolhub/schoolhub/internal/shared"
)

const foreignKeyViolation = "23503"

// Repository abstracts student persistence.
type Repository interface {
	Create(ctx context.Context, student Student) (Student, error)
	FindByID(ctx context.Context, id string) (Student, error)
	List(ctx context.Context, schoolID string) ([]Student, error)
	Update(ctx context.Context, student Student) (Student, error)
	Delete(ctx context.Context, id string) error
	Transfer(ctx context.Context, id, schoolID string, classroomID *string) (Student, error)
}

type repo struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repo{pool: pool}
}

const studentColumns = `id, name, email, age, school_id, classroom_id, created_at, updated_at`

func (r *repo) Create(ctx context.Context, student Student) (Student, error) {
	query := `INSERT INTO students (id, name, email, age, school_id, classroom_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	now := time.Now()
	student.ID = uuid.NewString()
	student.CreatedAt = now
	student.UpdatedAt = now
	_, err := r.pool.Exec(ctx, query, student.ID, student.Name, student.Email, student.Age, student.SchoolID, student.ClassroomID, now)
	if err != nil {
		return Student{}, err
	}
	return student, nil
}

func (r *repo) FindByID(ctx context.Context, id string) (Student, error) {
	var s Student
	err := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.SchoolID, &s.ClassroomID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Student{}, shared.ErrNotFound
	}
	return s, err
}

// List returns students of one school, or all students when schoolID is empty.
func (r *repo) List(ctx context.Context, schoolID string) ([]Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE ($1 = '' OR school_id = $1) ORDER BY name`
	rows, err := r.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []Student{}
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.SchoolID, &s.ClassroomID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *repo) Update(ctx context.Context, student Student) (Student, error) {
	query := `UPDATE students SET name = $2, email = $3, age = $4, updated_at = $5 WHERE id = $1`
	student.UpdatedAt = time.Now()
	tag, err := r.pool.Exec(ctx, query, student.ID, student.Name, student.Email, student.Age, student.UpdatedAt)
	if err != nil {
		return Student{}, err
	}
	if tag.RowsAffected() == 0 {
		return Student{}, shared.ErrNotFound
	}
	return student, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Transfer moves the school and classroom assignment in a single statement.
// An unknown destination trips the school foreign key, which is the caller's
// input being wrong rather than a server fault.
func (r *repo) Transfer(ctx context.Context, id, schoolID string, classroomID *string) (Student, error) {
	query := `UPDATE students SET school_id = $2, classroom_id = $3, updated_at = $4 WHERE id = $1
	          RETURNING ` + studentColumns
	var s Student
	err := r.pool.QueryRow(ctx, query, id, schoolID, classroomID, time.Now()).
		Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.SchoolID, &s.ClassroomID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Student{}, shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return Student{}, shared.Errorf(shared.ErrValidation, "destination school does not exist")
	}
	return s, err
}
