package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tambo/internal/auth"
	apperrors "tambo/internal/errors"
	"tambo/internal/model"
	"tambo/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries the fields accepted by customer registration.
// Password is optional: accounts created at the counter may get one later.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	City     string
	District string
	Password string
}

// AuthService handles customer and staff authentication.
type AuthService interface {
	// Login resolves the identifier against email first, then phone, and
	// verifies the password against the stored hash.
	Login(ctx context.Context, identifier, password string) (token string, user *model.User, err error)
	AdminLogin(ctx context.Context, email, password string) (token string, admin *model.Admin, err error)
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, adminRepo repository.AdminRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

// Login authenticates a customer by email or phone.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := s.userRepo.FindByEmail(ctx, identifier)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("find user by email: %w", err)
		}
		user, err = s.userRepo.FindByPhone(ctx, identifier)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		if err != nil {
			return "", nil, fmt.Errorf("find user by phone: %w", err)
		}
	}

	// Accounts provisioned without a credential cannot authenticate by password.
	if user.PasswordHash == "" && password != "" {
		return "", nil, apperrors.ErrNoPasswordSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.ID, user.Email, auth.RoleUser, auth.UserTokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// AdminLogin authenticates an active staff account.
func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, *model.Admin, error) {
	admin, err := s.adminRepo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(admin.ID, admin.Email, auth.RoleAdmin, auth.AdminTokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, admin, nil
}

// Register creates a customer account. The pre-check is advisory only; the
// unique index on email is the authoritative duplicate guard, surfaced by
// gorm.ErrDuplicatedKey when two registrations race.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	var hash string
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = string(hashed)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		City:         in.City,
		District:     in.District,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}
