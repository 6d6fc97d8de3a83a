package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/schoolhub/schoolhub/internal/auth"
	"github.com/schoolhub/schoolhub/internal/shared"
)

// Service wraps account registration and login.
type Service struct {
	repo   Repository
	tokens *auth.Manager
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *auth.Manager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// CreateUser registers an account and hands back the long token the client
// persists. The role defaults to school_admin when omitted.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (Public, string, error) {
	role := in.Role
	if role == "" {
		role = shared.RoleSchoolAdmin
	}
	if !role.Valid() {
		return Public{}, "", shared.Errorf(shared.ErrValidation, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Public{}, "", err
	}

	user, err := s.repo.Create(ctx, User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		SchoolID:     in.SchoolID,
	})
	if err != nil {
		if errors.Is(err, shared.ErrDuplicate) {
			return Public{}, "", shared.Errorf(shared.ErrDuplicate, "email already in use")
		}
		return Public{}, "", err
	}

	longToken, err := s.tokens.IssueLongToken(user.Principal())
	if err != nil {
		return Public{}, "", err
	}
	return user.Public(), longToken, nil
}

// Login validates credentials and issues a fresh long token. Unknown email
// and wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (Public, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Public{}, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Public{}, "", shared.ErrInvalidCredentials
	}
	longToken, err := s.tokens.IssueLongToken(user.Principal())
	if err != nil {
		return Public{}, "", err
	}
	return user.Public(), longToken, nil
}
