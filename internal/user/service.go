package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/luvvtapp/coach/internal/auth"
	"github.com/luvvtapp/coach/internal/common"
	"github.com/luvvtapp/coach/internal/models"
)

var (
	ErrEmailTaken = errors.New("user: email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so the response never reveals which one it was.
	ErrInvalidCredentials = errors.New("user: invalid email or password")
)

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

// CreateOrFetch is the idempotent onboarding path: the existing record wins
// when the normalized email is already present. The unique index on email
// closes the concurrent-signup race; a duplicate-key insert falls back to
// the re-fetch.
func (s *Service) CreateOrFetch(ctx context.Context, name, email string, assessment *models.SelfAssessment) (*User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, false, err
	}
	u := &User{
		ID:             id,
		Name:           name,
		Email:          NormalizeEmail(email),
		SelfAssessment: assessment,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.repo.GetByEmail(ctx, email)
			if ferr != nil {
				return nil, false, ferr
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return u, true, nil
}

// Signup registers a credentialed account. A record that already holds a
// credential blocks the signup; a legacy passwordless record adopts the new
// credential instead.
func (s *Service) Signup(ctx context.Context, name, email, password string, assessment *models.SelfAssessment) (*User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.PasswordHash != nil {
			return nil, ErrEmailTaken
		}
		if err := s.repo.AdoptCredential(ctx, existing.ID, name, hash, assessment); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, existing.ID)
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:             id,
		Name:           name,
		Email:          NormalizeEmail(email),
		PasswordHash:   &hash,
		SelfAssessment: assessment,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(*u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateAssessment(ctx context.Context, id string, assessment *models.SelfAssessment) error {
	return s.repo.UpdateAssessment(ctx, id, assessment)
}
