package identity

import (
	"context"

	"github.com/dracarys/library/internal/domain/shared"
)

// Role identifiers. The role travels in the login payload and gates the
// admin pages on the client side only.
const (
	RoleAdmin  = 1
	RoleMember = 2
)

// User is a registered member or administrator
type User struct {
	UserID       uint             `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username     string           `gorm:"column:username" json:"username"`
	Email        string           `gorm:"column:email" json:"email"`
	PasswordHash string           `gorm:"column:password_hash" json:"password_hash"`
	RoleID       int              `gorm:"column:role_id" json:"role_id"`
	CreatedAt    shared.NaiveTime `gorm:"column:created_at" json:"created_at"`
}

// TableName implements the GORM table name convention
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may use the admin pages
func (u *User) IsAdmin() bool {
	return u.RoleID == RoleAdmin
}

// UserWithBorrowCount is the row shape of the admin users table: a user
// joined with the number of borrows they have made.
type UserWithBorrowCount struct {
	UserID       uint             `gorm:"column:user_id" json:"user_id"`
	Username     string           `gorm:"column:username" json:"username"`
	Email        string           `gorm:"column:email" json:"email"`
	RoleID       int              `gorm:"column:role_id" json:"role_id"`
	CreatedAt    shared.NaiveTime `gorm:"column:created_at" json:"created_at"`
	TotalBorrows int64            `gorm:"column:total_borrows" json:"total_borrows"`
}

// Identity errors carried to the HTTP layer as-is. The login failure
// messages are part of the wire contract.
var (
	ErrUserNotFound      = shared.NewDomainError(shared.CodeNotFound, "User not found")
	ErrIncorrectPassword = shared.NewDomainError(shared.CodeInvalidInput, "Incorrect password")
	ErrEmailTaken        = shared.NewDomainError(shared.CodeAlreadyExists, "Email already registered")
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	ListWithBorrowCount(ctx context.Context) ([]UserWithBorrowCount, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}
