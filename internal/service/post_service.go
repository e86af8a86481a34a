// Package service contains business logic between handlers and repositories.
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"trendstack/internal/cache"
	"trendstack/internal/models"
	"trendstack/internal/repository"
)

// MaxSearchResults caps every search endpoint.
const MaxSearchResults = 20

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID      uint
	Content     string
	Attachments []string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	post := &models.Post{
		UserID:      in.UserID,
		Content:     content,
		Attachments: in.Attachments,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// GetFeed returns all posts, newest first. Authenticated requests carry a
// per-user liked annotation and bypass the shared cache; the anonymous feed
// is identical for everyone and is served cache-aside.
func (s *PostService) GetFeed(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	if currentUserID != 0 {
		return s.postRepo.List(ctx, currentUserID)
	}

	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedKey, &posts, cache.FeedTTL, func() error {
		var ferr error
		posts, ferr = s.postRepo.List(ctx, 0)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) SearchPosts(ctx context.Context, query string, currentUserID uint) ([]*models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, currentUserID, MaxSearchResults)
}

// ToggleLike flips the caller's like on a post and returns the new state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.postRepo.ToggleLike(ctx, userID, postID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("Only the author can delete this post")
	}
	return s.postRepo.Delete(ctx, postID)
}
