package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/daybook-app/apiserver/internal/auth"
	"github.com/daybook-app/apiserver/internal/logger"
	"github.com/daybook-app/apiserver/internal/store"
	"github.com/daybook-app/apiserver/types"
)

const minUsernameLength = 2

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates account use-cases: registration, credential
// verification, and profile management.
type UserService struct {
	repo   UserRepository
	tokens *auth.TokenService
}

func NewUserService(repo UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// ProfileUpdate carries the optional fields of a profile update. Absent
// or individually invalid fields are skipped, not rejected.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// Register validates the input, hashes the password, and persists a new
// user. The duplicate-email check before the insert is an early exit; the
// schema's unique constraint is authoritative, so a concurrent duplicate
// surfaces as ErrUserExists either way.
func (s *UserService) Register(ctx context.Context, username, email, password string) (types.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return types.User{}, ErrMissingFields
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return types.User{}, ErrUsernameTooShort
	}
	if !validEmail(email) {
		return types.User{}, ErrInvalidEmail
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return types.User{}, ErrUserExists
		}
		return types.User{}, fmt.Errorf("create user: %w", err)
	}

	logger.FromContext(ctx).Info().Int("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate verifies the credentials and issues a signed token. An
// unknown email and a wrong password both return ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrMissingFields
	}
	if !validEmail(email) {
		return "", ErrInvalidEmail
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if err := auth.CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify password: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// GetByID returns the user record for the given id.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields to the user's record. Each
// field is validated independently; a field that is absent or fails its
// own validation is silently skipped.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, update ProfileUpdate) (types.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return types.User{}, err
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if utf8.RuneCountInString(username) >= minUsernameLength {
			user.Username = username
		}
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if validEmail(email) {
			user.Email = email
		}
	}
	if update.Password != nil && *update.Password != "" {
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			return types.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return types.User{}, ErrUserExists
		}
		return types.User{}, err
	}
	return updated, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
