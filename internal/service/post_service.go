package service

import (
	"context"
	"time"

	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/repository"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService
type postService struct {
	posts repository.PostRepository
	log   zerolog.Logger
}

func newPostService(posts repository.PostRepository, log zerolog.Logger) PostService {
	return &postService{
		posts: posts,
		log:   log.With().Str("component", "posts").Logger(),
	}
}

// List retrieves all posts
func (s *postService) List(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// Get retrieves one post by id
func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create persists a new post. The display date is formatted here, once,
// and stored as a string.
func (s *postService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	post := &models.Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     time.Now().Format(models.DisplayDateFormat),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		AuthorID: author.ID,
		Author:   author.Name,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().Int64("post_id", post.ID).Str("title", post.Title).Msg("Post created")
	return post, nil
}

// Update rewrites the editable fields of an existing post
func (s *postService) Update(ctx context.Context, id int64, in PostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Subtitle = in.Subtitle
	post.Body = in.Body
	post.ImgURL = in.ImgURL

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	s.log.Info().Int64("post_id", id).Msg("Post updated")
	return post, nil
}

// Delete removes a post and, through the schema cascade, its comments
func (s *postService) Delete(ctx context.Context, id int64) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("post_id", id).Msg("Post deleted")
	return nil
}
