package mocks

import (
	"context"

	"github.com/blog-platform/internal/mail"
	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/service"
)

var (
	_ service.AuthService    = (*MockAuthService)(nil)
	_ service.PostService    = (*MockPostService)(nil)
	_ service.CommentService = (*MockCommentService)(nil)
	_ mail.Sender            = (*MockMailSender)(nil)
)

// MockAuthService is a mock implementation of AuthService. Sessions are a
// plain token->user map; AdminID controls the IsAdmin answer.
type MockAuthService struct {
	Sessions map[string]*models.User
	AdminID  int64

	RegisterUser  *models.User
	RegisterToken string
	RegisterErr   error
	LoginUser     *models.User
	LoginToken    string
	LoginErr      error

	LogoutCalls []string
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Sessions: make(map[string]*models.User),
		AdminID:  1,
	}
}

func (m *MockAuthService) Register(ctx context.Context, name, email, plaintext string) (*models.User, string, error) {
	if m.RegisterErr != nil {
		return nil, "", m.RegisterErr
	}
	if m.RegisterUser != nil {
		m.Sessions[m.RegisterToken] = m.RegisterUser
	}
	return m.RegisterUser, m.RegisterToken, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, plaintext string) (*models.User, string, error) {
	if m.LoginErr != nil {
		return nil, "", m.LoginErr
	}
	if m.LoginUser != nil {
		m.Sessions[m.LoginToken] = m.LoginUser
	}
	return m.LoginUser, m.LoginToken, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	m.LogoutCalls = append(m.LogoutCalls, token)
	delete(m.Sessions, token)
	return nil
}

func (m *MockAuthService) UserFromSession(ctx context.Context, token string) (*models.User, error) {
	u, ok := m.Sessions[token]
	if !ok {
		return nil, service.ErrNoSession
	}
	return u, nil
}

func (m *MockAuthService) IsAdmin(user *models.User) bool {
	return user != nil && user.ID == m.AdminID
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	Posts map[int64]*models.Post

	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	CreateCalls int
	UpdateCalls int
	DeleteCalls []int64
}

func NewMockPostService() *MockPostService {
	return &MockPostService{Posts: make(map[int64]*models.Post)}
}

func (m *MockPostService) List(ctx context.Context) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(m.Posts))
	for _, p := range m.Posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (m *MockPostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := m.Posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return p, nil
}

func (m *MockPostService) Create(ctx context.Context, author *models.User, in service.PostInput) (*models.Post, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	post := &models.Post{
		ID:       int64(len(m.Posts) + 1),
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		AuthorID: author.ID,
		Author:   author.Name,
	}
	m.Posts[post.ID] = post
	return post, nil
}

func (m *MockPostService) Update(ctx context.Context, id int64, in service.PostInput) (*models.Post, error) {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	p, ok := m.Posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	p.Title, p.Subtitle, p.Body, p.ImgURL = in.Title, in.Subtitle, in.Body, in.ImgURL
	return p, nil
}

func (m *MockPostService) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.Posts, id)
	return nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	Comments map[int64][]*models.Comment

	AddErr   error
	AddCalls int
}

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{Comments: make(map[int64][]*models.Comment)}
}

func (m *MockCommentService) Add(ctx context.Context, postID int64, author *models.User, text string) (*models.Comment, error) {
	m.AddCalls++
	if m.AddErr != nil {
		return nil, m.AddErr
	}
	comment := &models.Comment{
		ID:     int64(len(m.Comments[postID]) + 1),
		PostID: postID,
		UserID: author.ID,
		Text:   text,
		Author: author.Name,
	}
	m.Comments[postID] = append(m.Comments[postID], comment)
	return comment, nil
}

func (m *MockCommentService) ListForPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return m.Comments[postID], nil
}

// MockMailSender is a mock implementation of mail.Sender
type MockMailSender struct {
	SentTo     []string
	SentBodies []string
	ID         string
	Err        error
}

func NewMockMailSender() *MockMailSender {
	return &MockMailSender{ID: "mock-message-id"}
}

func (m *MockMailSender) SendContact(ctx context.Context, to, body string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.SentTo = append(m.SentTo, to)
	m.SentBodies = append(m.SentBodies, body)
	return m.ID, nil
}
