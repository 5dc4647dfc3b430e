package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ArdhikaRizki/debTBE/internal/models"
	"github.com/ArdhikaRizki/debTBE/internal/storage"
)

// memoryUsers is an in-memory storage.UserStore for tests.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return storage.ErrConflict
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
}

func (m *memoryUsers) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User)
	for _, id := range ids {
		if u, err := m.GetUserByID(ctx, id); err == nil {
			out[id] = u
		}
	}
	return out, nil
}

func (m *memoryUsers) ListUsers(context.Context) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func newTestAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(newMemoryUsers())
	a.cost = bcrypt.MinCost
	return a
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	user, err := a.Register(ctx, Registration{Username: "budi", Name: "Budi", Email: "budi@example.com", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" || user.PasswordHash == "rahasia123" {
		t.Fatalf("user not initialized correctly: %+v", user)
	}

	tests := []struct {
		name    string
		reg     Registration
		wantErr error
	}{
		{name: "weak password", reg: Registration{Username: "sari", Name: "Sari", Password: "short"}, wantErr: ErrWeakPassword},
		{name: "duplicate username", reg: Registration{Username: "budi", Name: "Budi 2", Password: "rahasia123"}, wantErr: ErrUsernameExists},
		{name: "missing name", reg: Registration{Username: "sari", Password: "rahasia123"}, wantErr: ErrMissingFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.reg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("authenticate with correct password", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "budi", "rahasia123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("ID = %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("authenticate with wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "budi", "salah12345"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("authenticate unknown user", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "nobody", "rahasia123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "budi"}
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("valid token", func(t *testing.T) {
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "user-1" || claims.Username != "budi" || claims.Issuer != Issuer {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		later := NewJWTManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})
}
