package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "debt.v1.AuthService"

// Procedure paths of AuthService.
const (
	AuthServiceRegisterProcedure       = "/debt.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/debt.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/debt.v1.AuthService/GetCurrentUser"
	AuthServiceListUsersProcedure      = "/debt.v1.AuthService/ListUsers"
)

type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
		AuthServiceListUsersProcedure:      connect.NewUnaryHandler(AuthServiceListUsersProcedure, svc.ListUsers, opts...),
	}
	return "/" + AuthServiceName + "/", router(routes)
}

// AuthServiceClient is a client for the AuthService service.
type AuthServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.AuthResponse]
	login          *connect.Client[api.LoginRequest, api.AuthResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.UserResponse]
	listUsers      *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
}

// NewAuthServiceClient constructs a client for the AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = withClientCodec(opts)
	return &AuthServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.UserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		listUsers:      connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+AuthServiceListUsersProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}
