package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/mocks"
	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/repository"
	"github.com/blog-platform/internal/service"
	"github.com/rs/zerolog"
)

func setupServices() (*service.Services, *mocks.MockUserRepository, *mocks.MockPostRepository, *mocks.MockCommentRepository, *mocks.MockSessionRepository) {
	users := mocks.NewMockUserRepository()
	comments := mocks.NewMockCommentRepository()
	posts := mocks.NewMockPostRepository()
	posts.Comments = comments
	sessions := mocks.NewMockSessionRepository()

	repos := &repository.Repositories{
		User:    users,
		Post:    posts,
		Comment: comments,
		Session: sessions,
	}
	cfg := &config.Config{
		Session: config.SessionConfig{Secret: "test-secret", Lifetime: time.Hour},
	}
	return service.NewServices(repos, cfg, zerolog.Nop()), users, posts, comments, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	services, users, _, _, _ := setupServices()
	ctx := context.Background()

	user, token, err := services.Auth.Register(ctx, "Ada", "Ada@Example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("Expected first user to get id 1, got %d", user.ID)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}
	if token == "" {
		t.Error("Register should auto-login and return a session token")
	}
	if users.Users[1].PasswordHash == "secret-pass" {
		t.Error("Password must not be stored in plaintext")
	}

	// Fresh login with the right password
	_, token2, err := services.Auth.Login(ctx, "ada@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token2 == "" {
		t.Error("Login should return a session token")
	}

	// Session resolves back to the user
	got, err := services.Auth.UserFromSession(ctx, token2)
	if err != nil {
		t.Fatalf("UserFromSession failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected user %d from session, got %d", user.ID, got.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	services, users, _, _, sessions := setupServices()
	ctx := context.Background()

	if _, _, err := services.Auth.Register(ctx, "Ada", "ada@example.com", "secret-pass"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	sessionsBefore := len(sessions.Sessions)

	_, token, err := services.Auth.Register(ctx, "Imposter", "ADA@example.com", "other-pass")
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}
	if token != "" {
		t.Error("Failed registration must not establish a session")
	}
	if len(users.Users) != 1 {
		t.Errorf("Expected 1 user after duplicate attempt, got %d", len(users.Users))
	}
	if len(sessions.Sessions) != sessionsBefore {
		t.Error("Duplicate registration must leave sessions untouched")
	}
}

func TestLoginFailures(t *testing.T) {
	services, _, _, _, _ := setupServices()
	ctx := context.Background()

	if _, _, err := services.Auth.Register(ctx, "Ada", "ada@example.com", "secret-pass"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, _, err := services.Auth.Login(ctx, "nobody@example.com", "whatever")
	if !errors.Is(err, service.ErrUnknownEmail) {
		t.Errorf("Expected ErrUnknownEmail, got %v", err)
	}

	_, _, err = services.Auth.Login(ctx, "ada@example.com", "wrong-pass")
	if !errors.Is(err, service.ErrWrongPassword) {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	services, _, _, _, _ := setupServices()
	ctx := context.Background()

	_, token, err := services.Auth.Register(ctx, "Ada", "ada@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := services.Auth.Logout(ctx, token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := services.Auth.UserFromSession(ctx, token); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("Expected ErrNoSession after logout, got %v", err)
	}
}

func TestExpiredSessionIsAnonymous(t *testing.T) {
	services, _, _, _, sessions := setupServices()
	ctx := context.Background()

	_, _, err := services.Auth.Register(ctx, "Ada", "ada@example.com", "secret-pass")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	stale := &models.Session{
		Token:     "stale-token",
		UserID:    1,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessions.Create(ctx, stale)

	if _, err := services.Auth.UserFromSession(ctx, "stale-token"); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("Expected ErrNoSession for expired session, got %v", err)
	}
	if _, ok := sessions.Sessions["stale-token"]; ok {
		t.Error("Expired session should be deleted on access")
	}
}

func TestOnlyFirstUserIsAdmin(t *testing.T) {
	services, _, _, _, _ := setupServices()
	ctx := context.Background()

	var created []*models.User
	for _, reg := range []struct{ name, email string }{
		{"First", "first@example.com"},
		{"Second", "second@example.com"},
		{"Third", "third@example.com"},
	} {
		user, _, err := services.Auth.Register(ctx, reg.name, reg.email, "secret-pass")
		if err != nil {
			t.Fatalf("Register %s failed: %v", reg.email, err)
		}
		created = append(created, user)
	}

	if !services.Auth.IsAdmin(created[0]) {
		t.Error("The first registered user should be the admin")
	}
	for _, u := range created[1:] {
		if services.Auth.IsAdmin(u) {
			t.Errorf("User %d should not be admin", u.ID)
		}
	}
	if services.Auth.IsAdmin(nil) {
		t.Error("Anonymous must never be admin")
	}
}
