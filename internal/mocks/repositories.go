package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/repository"
)

var (
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ repository.PostRepository    = (*MockPostRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
	_ repository.SessionRepository = (*MockSessionRepository)(nil)
)

// MockUserRepository is an in-memory implementation of UserRepository.
// IDs are assigned in registration order starting at 1, matching the
// database sequence, so the first user created is the admin.
type MockUserRepository struct {
	Users  map[int64]*models.User
	nextID int64

	CreateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[int64]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, models.ErrDuplicateEmail
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.Users[user.ID] = &stored
	return user.ID, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.Users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.Users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

// MockPostRepository is an in-memory implementation of PostRepository.
// When Comments is set, Delete cascades to comments on the post, the way
// the schema's ON DELETE CASCADE does.
type MockPostRepository struct {
	Posts    map[int64]*models.Post
	nextID   int64
	Comments *MockCommentRepository

	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{Posts: make(map[int64]*models.Post)}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	for _, p := range m.Posts {
		if p.Title == post.Title {
			return 0, models.ErrDuplicateTitle
		}
	}
	m.nextID++
	post.ID = m.nextID
	stored := *post
	m.Posts[post.ID] = &stored
	return post.ID, nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := m.Posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		copied := *p
		posts = append(posts, &copied)
	}
	return posts, nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Posts[post.ID]; !ok {
		return models.ErrNotFound
	}
	for _, p := range m.Posts {
		if p.ID != post.ID && p.Title == post.Title {
			return models.ErrDuplicateTitle
		}
	}
	stored := *post
	m.Posts[post.ID] = &stored
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Posts, id)
	if m.Comments != nil {
		m.Comments.deleteByPost(id)
	}
	return nil
}

// MockCommentRepository is an in-memory implementation of CommentRepository
type MockCommentRepository struct {
	Comments map[int64]*models.Comment
	nextID   int64

	CreateErr error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int64]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.nextID++
	comment.ID = m.nextID
	stored := *comment
	m.Comments[comment.ID] = &stored
	return comment.ID, nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, c := range m.Comments {
		if c.PostID == postID {
			copied := *c
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) deleteByPost(postID int64) {
	for id, c := range m.Comments {
		if c.PostID == postID {
			delete(m.Comments, id)
		}
	}
}

// MockSessionRepository is an in-memory implementation of SessionRepository
type MockSessionRepository struct {
	Sessions map[string]*models.Session

	CreateErr error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{Sessions: make(map[string]*models.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	stored := *session
	m.Sessions[session.Token] = &stored
	return nil
}

func (m *MockSessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	s, ok := m.Sessions[token]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, token string) error {
	delete(m.Sessions, token)
	return nil
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	for token, s := range m.Sessions {
		if s.UserID == userID {
			delete(m.Sessions, token)
		}
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now()
	var removed int64
	for token, s := range m.Sessions {
		if s.Expired(now) {
			delete(m.Sessions, token)
			removed++
		}
	}
	return removed, nil
}
