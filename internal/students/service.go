package students

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/schoolhub/schoolhub/internal/events"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Service wraps student business rules.
type Service struct {
	repo   Repository
	events events.Publisher
	logger *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{repo: repo, events: publisher, logger: logger}
}

// CreateStudent checks tenant scope against the requested school before any
// field validation or write.
func (s *Service) CreateStudent(ctx context.Context, p *shared.Principal, in CreateStudentInput) (*Student, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if !shared.CanManageSchool(p, in.SchoolID) {
		return nil, shared.Errorf(shared.ErrForbidden, "forbidden: you can only manage your own school")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "student name is required")
	}
	if in.SchoolID == "" {
		return nil, shared.Errorf(shared.ErrValidation, "school id is required")
	}
	if in.Age < 0 {
		return nil, shared.Errorf(shared.ErrValidation, "age cannot be negative")
	}
	student, err := s.repo.Create(ctx, Student{
		Name:        in.Name,
		Email:       in.Email,
		Age:         in.Age,
		SchoolID:    in.SchoolID,
		ClassroomID: in.ClassroomID,
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, p, events.ActionCreated, student.ID, student.SchoolID)
	return &student, nil
}

// GetStudent returns one student; existence is checked before tenant scope.
func (s *Service) GetStudent(ctx context.Context, p *shared.Principal, id string) (*Student, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "student id is required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !shared.CanManageSchool(p, student.SchoolID) {
		return nil, shared.ErrForbidden
	}
	return &student, nil
}

// ListStudents narrows a school admin to its own school regardless of the
// requested filter.
func (s *Service) ListStudents(ctx context.Context, p *shared.Principal, schoolID string) ([]Student, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	return s.repo.List(ctx, shared.ListScope(p, schoolID))
}

// UpdateStudent patches name, email and age only.
func (s *Service) UpdateStudent(ctx context.Context, p *shared.Principal, id string, in UpdateStudentInput) (*Student, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "student id is required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !shared.CanManageSchool(p, student.SchoolID) {
		return nil, shared.ErrForbidden
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, shared.Errorf(shared.ErrValidation, "student name is required")
		}
		student.Name = *in.Name
	}
	if in.Email != nil {
		student.Email = *in.Email
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return nil, shared.Errorf(shared.ErrValidation, "age cannot be negative")
		}
		student.Age = *in.Age
	}
	updated, err := s.repo.Update(ctx, student)
	if err != nil {
		return nil, notFound(err)
	}
	s.emit(ctx, p, events.ActionUpdated, updated.ID, updated.SchoolID)
	return &updated, nil
}

// DeleteStudent removes a student after the fetch-then-scope check; the
// delete never reaches the repository for an out-of-tenant principal.
func (s *Service) DeleteStudent(ctx context.Context, p *shared.Principal, id string) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	if id == "" {
		return shared.Errorf(shared.ErrValidation, "student id is required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if !shared.CanManageSchool(p, student.SchoolID) {
		return shared.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.emit(ctx, p, events.ActionDeleted, id, student.SchoolID)
	return nil
}

// TransferStudent relocates a student. Authorization runs against the
// student's current school only; the destination school is not scope-checked,
// so an owning admin may export a student anywhere.
func (s *Service) TransferStudent(ctx context.Context, p *shared.Principal, id string, in TransferStudentInput) (*Student, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "student id is required")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !shared.CanManageSchool(p, student.SchoolID) {
		return nil, shared.ErrForbidden
	}
	if in.SchoolID == "" {
		return nil, shared.Errorf(shared.ErrValidation, "school id is required")
	}
	transferred, err := s.repo.Transfer(ctx, id, in.SchoolID, in.ClassroomID)
	if err != nil {
		return nil, notFound(err)
	}
	s.emit(ctx, p, events.ActionTransferred, transferred.ID, transferred.SchoolID)
	return &transferred, nil
}

// emit delivers best effort: a broker outage must not fail the operation,
// but it should not be invisible either.
func (s *Service) emit(ctx context.Context, p *shared.Principal, action, id, schoolID string) {
	err := s.events.Publish(ctx, events.Event{
		Entity:     "student",
		Action:     action,
		EntityID:   id,
		SchoolID:   schoolID,
		Actor:      p.UserID,
		OccurredAt: time.Now(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("publish student event", slog.String("action", action), slog.Any("error", err))
	}
}

func notFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrNotFound, "student not found")
	}
	return err
}
