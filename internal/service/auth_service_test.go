package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/pkg/api"
)

func TestAuthService(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	reg, err := ts.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Username: "budi",
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "rahasia123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" || reg.Msg.User.ID == "" {
		t.Fatalf("expected token and user, got %+v", reg.Msg)
	}

	t.Run("duplicate username", func(t *testing.T) {
		_, err := ts.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Username: "budi",
			Name:     "Budi Lain",
			Password: "rahasia123",
		}))
		if connect.CodeOf(err) != connect.CodeAlreadyExists {
			t.Errorf("expected AlreadyExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := ts.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Username: "sari",
			Name:     "Sari",
			Password: "pendek",
		}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("login", func(t *testing.T) {
		resp, err := ts.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "budi", Password: "rahasia123"}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.User.ID != reg.Msg.User.ID || resp.Msg.Token == "" {
			t.Errorf("unexpected login response: %+v", resp.Msg)
		}
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := ts.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Username: "budi", Password: "salah12345"}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("current user", func(t *testing.T) {
		resp, err := ts.auth.GetCurrentUser(ctx, as(reg.Msg.User.ID, &api.GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if resp.Msg.User.Name != "Budi Santoso" || resp.Msg.User.Email != "budi@example.com" {
			t.Errorf("unexpected user: %+v", resp.Msg.User)
		}

		_, err = ts.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("expected Unauthenticated, got %v", err)
		}
	})

	t.Run("list users", func(t *testing.T) {
		citra := ts.createTestUser(t, "citra", "Citra")

		resp, err := ts.auth.ListUsers(ctx, as(reg.Msg.User.ID, &api.ListUsersRequest{}))
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(resp.Msg.Users) != 2 {
			t.Fatalf("expected 2 users, got %+v", resp.Msg.Users)
		}
		if resp.Msg.Users[0].ID != reg.Msg.User.ID || resp.Msg.Users[1].ID != citra.ID {
			t.Errorf("users not ordered by name: %+v", resp.Msg.Users)
		}

		_, err = ts.auth.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("expected Unauthenticated, got %v", err)
		}
	})
}
