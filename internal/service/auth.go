package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/avelichko/scribe/internal/auth"
	"github.com/avelichko/scribe/internal/database"
	"github.com/avelichko/scribe/internal/models"
	"github.com/avelichko/scribe/internal/snowflake"
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_]{2,32}$`)

// AuthService handles registration, login, and session resolution.
type AuthService struct {
	users     database.UserRepository
	tokens    *auth.TokenService
	snowflake *snowflake.Generator
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users database.UserRepository,
	tokens *auth.TokenService,
	sf *snowflake.Generator,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		snowflake: sf,
	}
}

// Register creates a new user. The returned user never carries the password
// hash into a response (the model excludes it from serialization).
func (s *AuthService) Register(ctx context.Context, username, name string, email *string, password string) (*models.User, error) {
	if !usernameRegexp.MatchString(username) {
		return nil, BadRequest("INVALID_USERNAME", "username must be 2-32 alphanumeric or underscore characters")
	}
	if name == "" {
		return nil, BadRequest("INVALID_NAME", "name is required")
	}
	if len(password) < 6 || len(password) > 128 {
		return nil, BadRequest("INVALID_PASSWORD", "password must be 6-128 characters")
	}
	if email != nil && *email == "" {
		email = nil
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if existing != nil {
		return nil, Conflict("USERNAME_TAKEN", "username already exists")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	now := time.Now()
	user := &models.User{
		ID:           s.snowflake.Generate().Int64(),
		Username:     username,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost a concurrent race on the username, or the email is taken.
		// The store's unique constraints are the source of truth.
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, Conflict("USER_EXISTS", "username or email already exists")
		}
		return nil, Internal("INTERNAL", "internal server error")
	}

	return user, nil
}

// Login authenticates a user and returns a session token. An unknown
// username is reported distinctly from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, Internal("INTERNAL", "internal server error")
	}
	if user == nil {
		return "", nil, NotFound("USER_NOT_FOUND", "user not found")
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		// A malformed stored hash also lands here: fail closed.
		return "", nil, Unauthorized("INVALID_CREDENTIALS", "invalid password")
	}

	token, err := s.tokens.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return "", nil, Internal("INTERNAL", "internal server error")
	}

	return token, user, nil
}

// CurrentUser resolves a session identity to its user record, without the
// password hash.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if user == nil {
		return nil, NotFound("USER_NOT_FOUND", "user not found")
	}
	return user, nil
}
