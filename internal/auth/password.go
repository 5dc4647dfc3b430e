package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ArdhikaRizki/debTBE/internal/models"
	"github.com/ArdhikaRizki/debTBE/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUsernameExists     = errors.New("username already registered")
	ErrMissingFields      = errors.New("username and name are required")
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	users storage.UserStore
	cost  int
}

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(users storage.UserStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*models.User, error) {
	if reg.Username == "" || reg.Name == "" {
		return nil, ErrMissingFields
	}
	if err := a.ValidateCredential(reg.Password); err != nil {
		return nil, err
	}

	// Check if username already exists
	if _, err := a.users.GetUserByUsername(ctx, reg.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Username, reg.Name, reg.Email, string(hashedPassword))

	if err := a.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
