package services

import (
	"context"
	"errors"

	"caribe-tours/internal/adapters/persistence/models"
	"caribe-tours/internal/adapters/persistence/repositories"
	"caribe-tours/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrWrongPassword = errors.New("current password is incorrect")
)

// UserService handles user profile business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile gets a user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents profile update input
type UpdateUserInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProfile updates a user's own profile. Email and role are not
// user-mutable.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if password.IsExternal(user.Password) {
		return ErrExternalAccount
	}

	if !password.Verify(currentPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}
