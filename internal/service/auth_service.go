package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/internal/auth"
	"github.com/ArdhikaRizki/debTBE/internal/middleware"
	"github.com/ArdhikaRizki/debTBE/internal/storage"
	"github.com/ArdhikaRizki/debTBE/pkg/api"
	"github.com/ArdhikaRizki/debTBE/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	user, err := s.authenticator.Register(ctx, auth.Registration{
		Username: req.Msg.Username,
		Name:     req.Msg.Name,
		Email:    req.Msg.Email,
		Password: req.Msg.Password,
	})
	if err != nil {
		s.logger.Error("Registration failed", "username", req.Msg.Username, "error", err)
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			return nil, connect.NewError(connect.CodeAlreadyExists, err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrMissingFields):
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	// Generate JWT token
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.AuthResponse{User: userToAPI(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.AuthResponse{User: userToAPI(user), Token: token}), nil
}

// GetCurrentUser returns the currently authenticated user's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	// Set by the auth interceptor
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

// ListUsers returns every registered account so callers can pick a
// counterparty.
func (s *AuthService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("ListUsers failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &api.ListUsersResponse{Users: make([]api.User, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, userToAPI(u))
	}

	s.logger.Info("ListUsers successful", "user_id", userID, "users", len(resp.Users))
	return connect.NewResponse(resp), nil
}
