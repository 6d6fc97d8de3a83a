package schools

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/schoolhub/schoolhub/internal/events"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Service wraps school business rules. Role enforcement happens at the access
// gates (every mutating operation sits behind the superadmin gate); the
// service still refuses to run without a principal.
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

// CreateSchool registers a new tenant root.
func (s *Service) CreateSchool(ctx context.Context, p *shared.Principal, in CreateSchoolInput) (*School, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.Errorf(shared.ErrValidation, "school name is required")
	}
	school, err := s.repo.Create(ctx, School{Name: in.Name, Address: in.Address, Email: in.Email, Phone: in.Phone})
	if err != nil {
		return nil, err
	}
	s.emit(ctx, p, events.ActionCreated, school.ID)
	return &school, nil
}

// GetSchool is the one school read open to both admin roles, unscoped.
func (s *Service) GetSchool(ctx context.Context, p *shared.Principal, id string) (*School, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "school id is required")
	}
	school, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &school, nil
}

// ListSchools returns every school.
func (s *Service) ListSchools(ctx context.Context, p *shared.Principal) ([]School, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	return s.repo.List(ctx)
}

// UpdateSchool patches the supplied fields.
func (s *Service) UpdateSchool(ctx context.Context, p *shared.Principal, id string, in UpdateSchoolInput) (*School, error) {
	if p == nil {
		return nil, shared.ErrUnauthorized
	}
	if id == "" {
		return nil, shared.Errorf(shared.ErrValidation, "school id is required")
	}
	school, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, shared.Errorf(shared.ErrValidation, "school name is required")
		}
		school.Name = *in.Name
	}
	if in.Address != nil {
		school.Address = *in.Address
	}
	if in.Email != nil {
		school.Email = *in.Email
	}
	if in.Phone != nil {
		school.Phone = *in.Phone
	}
	updated, err := s.repo.Update(ctx, school)
	if err != nil {
		return nil, notFound(err)
	}
	s.emit(ctx, p, events.ActionUpdated, updated.ID)
	return &updated, nil
}

// DeleteSchool removes a school.
func (s *Service) DeleteSchool(ctx context.Context, p *shared.Principal, id string) error {
	if p == nil {
		return shared.ErrUnauthorized
	}
	if id == "" {
		return shared.Errorf(shared.ErrValidation, "school id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.emit(ctx, p, events.ActionDeleted, id)
	return nil
}

// emit delivers best effort: a broker outage must not fail the operation,
// but it should not be invisible either.
func (s *Service) emit(ctx context.Context, p *shared.Principal, action, id string) {
	err := s.events.Publish(ctx, events.Event{
		Entity:     "school",
		Action:     action,
		EntityID:   id,
		Actor:      p.UserID,
		OccurredAt: time.Now(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("publish school event", slog.String("action", action), slog.Any("error", err))
	}
}

func notFound(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.Errorf(shared.ErrNotFound, "school not found")
	}
	return err
}
