package services

import (
	"errors"
	"fmt"

	"goblog/models"
	"goblog/repositories"

	"gorm.io/gorm"
)

// The UserService interface defines the methods that user services need to implement
type UserService interface {
	ListUsers() ([]models.User, error)
	GetUser(id uint) (*models.User, error)
	CreateUser(input *CreateUserInput) (*models.User, error)
	UpdateUser(id uint, input *UpdateUserInput) (*models.User, error)
	DeleteUser(id uint) error
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserInput carries partial updates; empty fields are left unchanged.
type UpdateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userService struct {
	repo repositories.UserRepository
}

var _ UserService = (*userService)(nil)

// NewUserService creates a new UserService instance
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// ListUsers returns all users newest first with their posts.
func (s *userService) ListUsers() ([]models.User, error) {
	users, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("%w: listing users: %v", ErrInternal, err)
	}
	return users, nil
}

// GetUser returns a single user with its posts.
func (s *userService) GetUser(id uint) (*models.User, error) {
	user, err := s.repo.FindByIDWithPosts(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("%w: retrieving user: %v", ErrInternal, err)
	}
	return user, nil
}

// CreateUser creates a user without credentials (administrative creation; the
// registration path lives in AuthService).
func (s *userService) CreateUser(input *CreateUserInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, validationError("Name and email are required")
	}

	user := &models.User{Name: input.Name, Email: input.Email}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("Email already exists")
		}
		return nil, fmt.Errorf("%w: creating user: %v", ErrInternal, err)
	}
	return user, nil
}

// UpdateUser applies the provided fields to an existing user.
func (s *userService) UpdateUser(id uint, input *UpdateUserInput) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("%w: retrieving user for update: %v", ErrInternal, err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}

	if err := s.repo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictError("Email already exists")
		}
		return nil, fmt.Errorf("%w: saving user updates: %v", ErrInternal, err)
	}
	return user, nil
}

// DeleteUser removes the user and cascades to all posts it owns.
func (s *userService) DeleteUser(id uint) error {
	err := s.repo.DeleteWithPosts(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("User not found")
		}
		return fmt.Errorf("%w: deleting user: %v", ErrInternal, err)
	}
	return nil
}
