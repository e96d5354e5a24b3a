package identity

import "github.com/dracarys/library/internal/domain/shared"

// RegisterUserRequest is the signup payload. The plaintext password travels
// in the password_hash field; that wire name predates this service and the
// clients still send it.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password_hash" binding:"required"`
	RoleID   *int   `json:"role_id"`
}

// LoginRequest is the login payload, same password field name as signup
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password_hash" binding:"required"`
}

// LoginResponse carries the authenticated user and a signed access token
type LoginResponse struct {
	UserID      uint             `json:"user_id"`
	Username    string           `json:"username"`
	Email       string           `json:"email"`
	RoleID      int              `json:"role_id"`
	CreatedAt   shared.NaiveTime `json:"created_at"`
	AccessToken string           `json:"access_token"`
}

// UpdateUserRequest carries a partial update: only non-nil fields change
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password_hash"`
	RoleID   *int    `json:"role_id"`
}
