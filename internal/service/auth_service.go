package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"photofeed/internal/ids"
	"photofeed/internal/models"
	"photofeed/internal/repository"
	"photofeed/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrMissingCredentials = errors.New("username and password required")
)

type AuthService struct {
	users *repository.UserRepository
	log   zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// Register creates a user. An unspecified role defaults to consumer;
// unknown roles are rejected outright.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return models.User{}, ErrMissingCredentials
	}

	role := models.UserRole(input.Role)
	if input.Role == "" {
		role = models.UserRoleConsumer
	}
	if !models.ValidRole(role) {
		return models.User{}, errors.New("unknown role")
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns the user. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
