package database

import (
	"context"

	"github.com/avelichko/scribe/internal/models"
)

type UserRepository interface {
	// Create inserts a user. Returns ErrDuplicateKey when the username, or
	// the email if provided, already exists.
	Create(ctx context.Context, user *models.User) error
	// GetByID returns the user without the password hash, or (nil, nil)
	// when absent. Used for session resolution.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByUsername returns the full user record including the password
	// hash, or (nil, nil) when absent. Login is its only caller.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID returns (nil, nil) when the post does not exist.
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// List returns all posts, newest first, with author resolved to
	// username and display name.
	List(ctx context.Context) ([]models.PostWithAuthor, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}
