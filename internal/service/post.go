package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/avelichko/scribe/internal/database"
	"github.com/avelichko/scribe/internal/models"
	"github.com/avelichko/scribe/internal/redis"
	"github.com/avelichko/scribe/internal/snowflake"
)

// PostUpdate carries the mergeable fields of an update request. Nil means
// "leave unchanged". The author is deliberately not representable here:
// ownership is set at creation and never reassigned.
type PostUpdate struct {
	Title   *string `json:"title"`
	Image   *string `json:"image"`
	Content *string `json:"content"`
}

// PostService handles post CRUD and enforces that only the recorded author
// may mutate or delete a post.
type PostService struct {
	posts     database.PostRepository
	cache     *redis.Client
	snowflake *snowflake.Generator
}

// NewPostService creates a PostService.
func NewPostService(posts database.PostRepository, cache *redis.Client, sf *snowflake.Generator) *PostService {
	return &PostService{
		posts:     posts,
		cache:     cache,
		snowflake: sf,
	}
}

// Create makes the authenticated caller the post's author.
func (s *PostService) Create(ctx context.Context, authorID int64, title string, image *string, content string) (*models.Post, error) {
	if title == "" {
		return nil, BadRequest("INVALID_TITLE", "title is required")
	}
	if content == "" {
		return nil, BadRequest("INVALID_CONTENT", "content is required")
	}
	if image != nil && *image == "" {
		image = nil
	}

	now := time.Now()
	post := &models.Post{
		ID:        s.snowflake.Generate().Int64(),
		Title:     title,
		Image:     image,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	s.invalidateFeed(ctx)
	return post, nil
}

// List returns all posts with authors resolved, newest first. Reads go
// through the feed cache; cache failures degrade to the database.
func (s *PostService) List(ctx context.Context) ([]models.PostWithAuthor, error) {
	if data, err := s.cache.GetFeed(ctx); err == nil && data != nil {
		var cached []models.PostWithAuthor
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if posts == nil {
		posts = []models.PostWithAuthor{}
	}

	if data, err := json.Marshal(posts); err == nil {
		if err := s.cache.SetFeed(ctx, data); err != nil {
			slog.Warn("feed cache set failed", "error", err)
		}
	}

	return posts, nil
}

// Update merges the allow-listed fields into an existing post. The existence
// check runs before the ownership check, so a missing post reads as not
// found even to a non-owner.
func (s *PostService) Update(ctx context.Context, postID, userID int64, update PostUpdate) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}
	if post == nil {
		return nil, NotFound("POST_NOT_FOUND", "post not found")
	}

	if post.AuthorID != userID {
		return nil, Forbidden("NOT_AUTHOR", "not authorised to update the post")
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, BadRequest("INVALID_TITLE", "title cannot be empty")
		}
		post.Title = *update.Title
	}
	if update.Image != nil {
		if *update.Image == "" {
			post.Image = nil
		} else {
			post.Image = update.Image
		}
	}
	if update.Content != nil {
		if *update.Content == "" {
			return nil, BadRequest("INVALID_CONTENT", "content cannot be empty")
		}
		post.Content = *update.Content
	}
	post.UpdatedAt = time.Now()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, Internal("INTERNAL", "internal server error")
	}

	s.invalidateFeed(ctx)
	return post, nil
}

// Delete removes a post. Same gating and ordering as Update.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return Internal("INTERNAL", "internal server error")
	}
	if post == nil {
		return NotFound("POST_NOT_FOUND", "post not found")
	}

	if post.AuthorID != userID {
		return Forbidden("NOT_AUTHOR", "not authorised to delete the post")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return Internal("INTERNAL", "internal server error")
	}

	s.invalidateFeed(ctx)
	return nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if err := s.cache.InvalidateFeed(ctx); err != nil {
		slog.Warn("feed cache invalidation failed", "error", err)
	}
}
