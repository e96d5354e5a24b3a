package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dracarys/library/internal/domain/identity"
	"github.com/dracarys/library/internal/domain/shared"
	"github.com/dracarys/library/internal/infrastructure/auth"
)

// TokenIssuer signs access tokens for authenticated users. Decouples the
// service from the concrete token implementation.
type TokenIssuer interface {
	Generate(userID uint, roleID int) (string, error)
}

// UserService handles registration, login and user administration
type UserService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed password. New users are
// members unless a role is given explicitly.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*identity.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, identity.ErrEmailTaken
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	roleID := identity.RoleMember
	if req.RoleID != nil {
		roleID = *req.RoleID
	}

	user := &identity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       roleID,
		CreatedAt:    shared.NewNaiveTime(time.Now()),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the user with a fresh access
// token. An unknown email and a wrong password fail differently: the
// clients distinguish the two.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, identity.ErrIncorrectPassword
	}

	token, err := s.tokens.Generate(user.UserID, user.RoleID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		RoleID:      user.RoleID,
		CreatedAt:   user.CreatedAt,
		AccessToken: token,
	}, nil
}

// Get returns one user by id
func (s *UserService) Get(ctx context.Context, id uint) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns every user
func (s *UserService) List(ctx context.Context) ([]identity.User, error) {
	return s.userRepo.FindAll(ctx)
}

// ListWithBorrowCount returns every user with their borrow count, the row
// shape of the admin users table
func (s *UserService) ListWithBorrowCount(ctx context.Context) ([]identity.UserWithBorrowCount, error) {
	return s.userRepo.ListWithBorrowCount(ctx)
}

// Update applies the non-nil fields of req. A new password is re-hashed.
func (s *UserService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*identity.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.RoleID != nil {
		user.RoleID = *req.RoleID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return identity.ErrUserNotFound
	}
	return err
}
