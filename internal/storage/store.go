// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ArdhikaRizki/debTBE/internal/models"
)

// ErrNotFound is returned when a requested record does not exist or is not
// visible to the requesting user.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint would be violated.
var ErrConflict = errors.New("already exists")

// Store defines the interface for user and debt storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	DebtStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrConflict if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns ErrNotFound if no user has the username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns every user ordered by name, then username.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// DebtStore persists debt records. Lookups are scoped to the owning user.
type DebtStore interface {
	// CreateDebt persists a new debt. ID and timestamps are filled in by the store.
	CreateDebt(ctx context.Context, debt *models.Debt) error

	// GetDebt retrieves a debt owned by userID.
	GetDebt(ctx context.Context, id, userID string) (*models.Debt, error)

	// ListDebts returns debts owned by userID matching filter, newest first.
	ListDebts(ctx context.Context, userID string, filter models.DebtFilter) ([]*models.Debt, error)

	// ListDebtsInvolving returns debts owned by userID or naming userID as
	// the counterparty.
	ListDebtsInvolving(ctx context.Context, userID string) ([]*models.Debt, error)

	// UpdateDebt overwrites a debt owned by debt.UserID.
	UpdateDebt(ctx context.Context, debt *models.Debt) error

	// DeleteDebt removes a debt owned by userID.
	DeleteDebt(ctx context.Context, id, userID string) error
}
