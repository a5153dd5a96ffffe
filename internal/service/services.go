package service

import (
	"context"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for registration, login sessions and
// the admin check
type AuthService interface {
	Register(ctx context.Context, name, email, plaintext string) (*models.User, string, error)
	Login(ctx context.Context, email, plaintext string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	UserFromSession(ctx context.Context, token string) (*models.User, error)
	IsAdmin(user *models.User) bool
}

// PostInput carries the author-editable fields of a post
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// PostService defines the interface for post operations
type PostService interface {
	List(ctx context.Context) ([]*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	Add(ctx context.Context, postID int64, author *models.User, text string) (*models.Comment, error)
	ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:    newAuthService(repos, cfg.Session, log),
		Post:    newPostService(repos.Post, log),
		Comment: newCommentService(repos, log),
	}
}
