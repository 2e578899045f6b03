package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tambo/internal/errors"
	"tambo/internal/model"
	"tambo/internal/repository"
)

// UpdateProfileInput carries optional profile fields; empty strings leave
// the current value untouched. A non-empty password is re-hashed.
type UpdateProfileInput struct {
	Name        string
	Phone       string
	City        string
	District    string
	Address     string
	AddressHint string
	Password    string
}

// UserService exposes customer profile operations.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Name != "" {
		user.Name = strings.TrimSpace(in.Name)
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.City != "" {
		user.City = strings.TrimSpace(in.City)
	}
	if in.District != "" {
		user.District = strings.TrimSpace(in.District)
	}
	if in.Address != "" {
		user.Address = strings.TrimSpace(in.Address)
	}
	if in.AddressHint != "" {
		user.AddressHint = strings.TrimSpace(in.AddressHint)
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
