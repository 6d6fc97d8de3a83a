package classrooms

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/schoolhub/schoolhub/internal/events"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Service wraps classroom business rules. Every operation re-derives its
// authorization decision from the principal and a freshly fetched resource;
// nothing is cached between calls.
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

// CreateClassroom checks tenant scope against the requested school before any
// field validation or write.
func (s *Service) CreateClassroom(ctx context.Context, p *shared.Principal, in CreateClassroomInput) (*Classroom, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if !shared.CanManageSchool(p, in.SchoolID) {
		return nil, shared.Errorf(shared.ErrForbidden, "forbidden: you can only manage your own school")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "classroom name is required")
	}
	if in.SchoolID == "" {
		return nil, shared.Errorf(shared.ErrValidation, "school id is required")
	}
	if in.Capacity < 0 {
		return nil, shared.Errorf(shared.ErrValidation, "capacity cannot be negative")
	}
	classroom, err := s.repo.Create(ctx, Classroom{
		Name:      in.Name,
		SchoolID:  in.SchoolID,
		Capacity:  in.Capacity,
		Resources: in.Resources,
	})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, p, events.ActionCreated, classroom.ID, classroom.SchoolID)
	return &classroom, nil
}

// GetClassroom returns one classroom. Existence is checked before tenant
// scope, so probing an id that does not exist at all yields not-found.
func (s *Service) GetClassroom(ctx context.Context, p *shared.Principal, id string) (*Classroom, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "classroom id is required")
	}
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !shared.CanManageSchool(p, classroom.SchoolID) {
		return nil, shared.ErrForbidden
	}
	return &classroom, nil
}

// ListClassrooms narrows rather than rejects: a school admin only ever sees
// its own school, whatever filter was requested.
func (s *Service) ListClassrooms(ctx context.Context, p *shared.Principal, schoolID string) ([]Classroom, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	return s.repo.List(ctx, shared.ListScope(p, schoolID))
}

// UpdateClassroom patches name, capacity and resources; the owning school is
// immutable.
func (s *Service) UpdateClassroom(ctx context.Context, p *shared.Principal, id string, in UpdateClassroomInput) (*Classroom, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "classroom id is required")
	}
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !shared.CanManageSchool(p, classroom.SchoolID) {
		return nil, shared.ErrForbidden
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, shared.Errorf(shared.ErrValidation, "classroom name is required")
		}
		classroom.Name = *in.Name
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return nil, shared.Errorf(shared.ErrValidation, "capacity cannot be negative")
		}
		classroom.Capacity = *in.Capacity
	}
	if in.Resources != nil {
		classroom.Resources = *in.Resources
	}
	updated, err := s.repo.Update(ctx, classroom)
	if err != nil {
		return nil, notFound(err)
	}
	s.emit(ctx, p, events.ActionUpdated, updated.ID, updated.SchoolID)
	return &updated, nil
}

// DeleteClassroom removes a classroom after the same fetch-then-scope check.
func (s *Service) DeleteClassroom(ctx context.Context, p *shared.Principal, id string) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	if id == "" {
		return shared.Errorf(shared.ErrValidation, "classroom id is required")
	}
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if !shared.CanManageSchool(p, classroom.SchoolID) {
		return shared.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.emit(ctx, p, events.ActionDeleted, id, classroom.SchoolID)
	return nil
}

// emit delivers best effort: a broker outage must not fail the operation,
// but it should not be invisible either.
func (s *Service) emit(ctx context.Context, p *shared.Principal, action, id, schoolID string) {
	err := s.events.Publish(ctx, events.Event{
		Entity:     "classroom",
		Action:     action,
		EntityID:   id,
		SchoolID:   schoolID,
		Actor:      p.UserID,
		OccurredAt: time.Now(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("publish classroom event", slog.String("action", action), slog.Any("error", err))
	}
}

func notFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrNotFound, "classroom not found")
	}
	return err
}
