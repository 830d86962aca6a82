package service

import (
	"context"
	"errors"

	"tierlist_backend/internal/domain"
	"tierlist_backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUsernameTaken  = errors.New("username already taken")
)

// AuthService handles admin credentials and account creation.
type AuthService struct {
	admins repository.AdminStore
}

func NewAuthService(admins repository.AdminStore) *AuthService {
	return &AuthService{admins: admins}
}

// Login verifies credentials and returns the admin plus a session token.
// A missing admin and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Admin, string, error) {
	admin, err := s.admins.AdminByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := GenerateSessionToken(admin.ID)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// CreateAdmin hashes the password and stores the new admin.
func (s *AuthService) CreateAdmin(ctx context.Context, admin *domain.Admin, password string) error {
	if _, err := s.admins.AdminByUsername(ctx, admin.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)

	err = s.admins.CreateAdmin(ctx, admin)
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrUsernameTaken
	}
	return err
}
