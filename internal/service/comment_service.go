package service

import (
	"context"
	"fmt"

	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/repository"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, log zerolog.Logger) CommentService {
	return &commentService{
		comments: repos.Comment,
		posts:    repos.Post,
		log:      log.With().Str("component", "comments").Logger(),
	}
}

// Add creates a comment on an existing post by an authenticated user.
// A missing post surfaces as models.ErrNotFound before anything is written.
func (s *commentService) Add(ctx context.Context, postID int64, author *models.User, text string) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: author.ID,
		Text:   text,
		Author: author.Name,
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.log.Info().Int64("post_id", postID).Int64("user_id", author.ID).Msg("Comment added")
	return comment, nil
}

// ListForPost retrieves all comments on a post, oldest first
func (s *commentService) ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}
