// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/apartment-api/internal/auth"
	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Service struct {
	repo      Repository
	validator *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Seed creates the bootstrap user. When the email is already taken the
// existing row is returned untouched and created is false.
func (s *Service) Seed(
	ctx context.Context,
	req SeedUserRequest,
) (user *User, created bool, err error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, fmt.Errorf(
			"seed user: %s: %w",
			core.FormatValidationError(err),
			core.ErrInvalidInput,
		)
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, fmt.Errorf("seed user: %w", err)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	user = &User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			existing, getErr := s.repo.GetByEmail(ctx, req.Email)
			if getErr != nil {
				return nil, false, fmt.Errorf("seed user: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("seed user: %w", err)
	}

	return user, true, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}
}
