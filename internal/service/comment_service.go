package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"trendstack/internal/models"
	"trendstack/internal/repository"
)

const maxCommentContentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentContentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, currentUserID)
}

// ToggleLike flips the caller's like on a comment and returns the new state.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (bool, error) {
	return s.commentRepo.ToggleLike(ctx, userID, commentID)
}

// TogglePin flips the pinned flag on a comment and returns the new state.
// Only the author of the comment's post may pin or unpin; a missing comment
// reports not-found before the authorization check runs.
func (s *CommentService) TogglePin(ctx context.Context, userID, commentID uint) (bool, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return false, err
	}
	post, err := s.postRepo.GetByID(ctx, comment.PostID, 0)
	if err != nil {
		return false, err
	}
	if post.UserID != userID {
		return false, models.NewUnauthorizedError("Only the post author can pin comments")
	}

	pinned := !comment.Pinned
	if err := s.commentRepo.SetPinned(ctx, commentID, pinned); err != nil {
		return false, err
	}
	return pinned, nil
}

// DeleteComment removes a comment. Allowed for the comment's author and for
// the author of the post it belongs to.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		post, err := s.postRepo.GetByID(ctx, comment.PostID, 0)
		if err != nil {
			return err
		}
		if post.UserID != userID {
			return models.NewUnauthorizedError("Not allowed to delete this comment")
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}
