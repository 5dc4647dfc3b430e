package api

// User is the public view of an account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the bearer token for subsequent calls.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type UserResponse struct {
	User User `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}
