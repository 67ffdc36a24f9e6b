package services

import (
	"errors"
	"fmt"

	"goblog/auth"
	"goblog/models"
	"goblog/repositories"

	"gorm.io/gorm"
)

// AuthService drives the register/login/logout/whoami lifecycle. A client is
// Anonymous until a session token resolves in the store, Authenticated after.
type AuthService interface {
	Register(input *RegisterInput) (*models.User, string, error)
	Login(input *LoginInput) (*models.User, string, error)
	Logout(token string) error
	CurrentUser(token string) (*models.User, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

const minPasswordLength = 6

type authService struct {
	users    repositories.UserRepository
	sessions auth.SessionStore
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates a new AuthService instance
func NewAuthService(users repositories.UserRepository, sessions auth.SessionStore) AuthService {
	return &authService{users: users, sessions: sessions}
}

// Register validates input, persists the new user and opens a session for it.
// Returns the created user and the session token.
func (s *authService) Register(input *RegisterInput) (*models.User, string, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, "", validationError("Name, email, and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, "", validationError("Password must be at least 6 characters long")
	}

	// Friendly pre-check; the unique index still decides under concurrency.
	_, err := s.users.FindByEmail(input.Email)
	if err == nil {
		return nil, "", conflictError("User with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("%w: checking existing user: %v", ErrInternal, err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: hashing password: %v", ErrInternal, err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", conflictError("User with this email already exists")
		}
		return nil, "", fmt.Errorf("%w: creating user: %v", ErrInternal, err)
	}

	token, err := s.sessions.Create(auth.Identity{
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Name,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: creating session: %v", ErrInternal, err)
	}

	return user, token, nil
}

// Login verifies credentials and opens a session. An unknown email and a wrong
// password produce the identical error so callers cannot enumerate accounts.
func (s *authService) Login(input *LoginInput) (*models.User, string, error) {
	if input.Email == "" || input.Password == "" {
		return nil, "", validationError("Email and password are required")
	}

	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", authError("Invalid email or password")
		}
		return nil, "", fmt.Errorf("%w: looking up user: %v", ErrInternal, err)
	}

	if !auth.CheckPassword(input.Password, user.Password) {
		return nil, "", authError("Invalid email or password")
	}

	token, err := s.sessions.Create(auth.Identity{
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Name,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: creating session: %v", ErrInternal, err)
	}

	return user, token, nil
}

// Logout destroys the session. Destroying an absent session succeeds; only a
// failing store surfaces an error.
func (s *authService) Logout(token string) error {
	if err := s.sessions.Destroy(token); err != nil {
		return fmt.Errorf("%w: destroying session: %v", ErrInternal, err)
	}
	return nil
}

// CurrentUser resolves the session and re-fetches the user record so a user
// deleted after login is reported missing rather than served stale.
func (s *authService) CurrentUser(token string) (*models.User, error) {
	identity, ok := s.sessions.Load(token)
	if !ok {
		return nil, authError("Not authenticated")
	}

	user, err := s.users.FindByIDWithPosts(identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("%w: fetching current user: %v", ErrInternal, err)
	}
	return user, nil
}
