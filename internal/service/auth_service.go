package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/password"
	"github.com/blog-platform/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// adminUserID is the single designated administrator: the first account
// ever registered. There is no provisioning path for further admins.
const adminUserID int64 = 1

var (
	// ErrUnknownEmail means no account exists for the email
	ErrUnknownEmail = errors.New("no account registered for that email")

	// ErrWrongPassword means the account exists but the password is wrong
	ErrWrongPassword = errors.New("password is incorrect")

	// ErrNoSession means the token resolves to no live session
	ErrNoSession = errors.New("session not found")

	// ErrForbidden means the acting identity is not the administrator
	ErrForbidden = errors.New("admin access required")
)

// authService is the concrete implementation of AuthService
type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	lifetime time.Duration
	log      zerolog.Logger
}

func newAuthService(repos *repository.Repositories, cfg config.SessionConfig, log zerolog.Logger) AuthService {
	return &authService{
		users:    repos.User,
		sessions: repos.Session,
		lifetime: cfg.Lifetime,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

// Register creates an account and logs it in. A duplicate email returns
// models.ErrDuplicateEmail with nothing persisted.
func (s *authService) Register(ctx context.Context, name, email, plaintext string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)

	// Check first for a clear error; the unique constraint still backstops
	// a concurrent registration of the same email.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, Name: name, PasswordHash: hash}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User registered")
	return user, token, nil
}

// Login verifies the credentials and establishes a session
func (s *authService) Login(ctx context.Context, email, plaintext string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", ErrUnknownEmail
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !password.Verify(user.PasswordHash, plaintext) {
		s.log.Warn().Int64("user_id", user.ID).Msg("Login failed: bad password")
		return nil, "", ErrWrongPassword
	}

	// One live session per account; logging in again replaces it.
	if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
		return nil, "", fmt.Errorf("failed to clear old sessions: %w", err)
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return user, token, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// UserFromSession resolves a session token to its user, or ErrNoSession
// when the token is unknown or expired.
func (s *authService) UserFromSession(ctx context.Context, token string) (*models.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.Expired(time.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrNoSession
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}

// IsAdmin reports whether the user is the designated administrator
func (s *authService) IsAdmin(user *models.User) bool {
	return user != nil && user.ID == adminUserID
}

func (s *authService) startSession(ctx context.Context, userID int64) (string, error) {
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.lifetime),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.Token, nil
}
