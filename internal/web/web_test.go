package web_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/mocks"
	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/service"
	"github.com/blog-platform/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupTestRouter() (*gin.Engine, *mocks.MockAuthService, *mocks.MockPostService, *mocks.MockCommentService, *mocks.MockMailSender) {
	gin.SetMode(gin.TestMode)

	auth := mocks.NewMockAuthService()
	posts := mocks.NewMockPostService()
	comments := mocks.NewMockCommentService()
	mailer := mocks.NewMockMailSender()

	services := &service.Services{
		Auth:    auth,
		Post:    posts,
		Comment: comments,
	}

	cfg := &config.Config{
		Session: config.SessionConfig{Secret: "test-secret", Lifetime: time.Hour},
	}

	router := web.NewRouter(services, mailer, cfg, zerolog.Nop())
	return router, auth, posts, comments, mailer
}

func postForm(router *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// loginAs runs the real login flow against the router so the test holds a
// properly signed session cookie.
func loginAs(t *testing.T, router *gin.Engine, auth *mocks.MockAuthService, user *models.User) *http.Cookie {
	t.Helper()
	auth.LoginUser = user
	auth.LoginToken = fmt.Sprintf("token-%d", user.ID)

	w := postForm(router, "/login", url.Values{
		"email":    {user.Email},
		"password": {"secret-pass"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Login returned status %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "blog_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("Login did not set a session cookie")
	return nil
}

func TestIndexListsPosts(t *testing.T) {
	router, _, posts, _, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "First Post", Subtitle: "sub", Author: "Admin", Date: "August 1, 2026"}
	posts.Posts[2] = &models.Post{ID: 2, Title: "Second Post", Subtitle: "sub", Author: "Admin", Date: "August 2, 2026"}

	w := get(router, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "First Post") || !strings.Contains(body, "Second Post") {
		t.Error("Index should list every post title")
	}
}

func TestShowPostWithComments(t *testing.T) {
	router, _, posts, comments, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "A Post", Subtitle: "sub", Body: "body", Author: "Admin"}
	comments.Comments[1] = []*models.Comment{
		{ID: 1, PostID: 1, Text: "great read", Author: "Reader"},
	}

	w := get(router, "/post/1")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "A Post") || !strings.Contains(body, "great read") {
		t.Error("Post page should render the post and its comments")
	}
}

func TestUnknownPostRedirectsToIndex(t *testing.T) {
	router, _, _, _, _ := setupTestRouter()

	for _, path := range []string{"/post/99", "/post/not-a-number"} {
		w := get(router, path)
		if w.Code != http.StatusFound {
			t.Errorf("GET %s: expected 302, got %d", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/" {
			t.Errorf("GET %s: expected redirect to /, got %q", path, loc)
		}
	}
}

func TestAnonymousCommentRedirectsToLogin(t *testing.T) {
	router, _, posts, comments, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "A Post"}

	w := postForm(router, "/post/1", url.Values{"text": {"drive-by comment"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
	if comments.AddCalls != 0 {
		t.Error("Anonymous comment submission must not create a comment")
	}
}

func TestAuthenticatedComment(t *testing.T) {
	router, auth, posts, comments, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "A Post"}
	cookie := loginAs(t, router, auth, &models.User{ID: 2, Name: "Reader", Email: "reader@example.com"})

	w := postForm(router, "/post/1", url.Values{"text": {"well said"}}, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/post/1" {
		t.Errorf("Expected redirect back to the post, got %q", loc)
	}
	if comments.AddCalls != 1 {
		t.Errorf("Expected 1 comment created, got %d", comments.AddCalls)
	}
}

func TestAdminGuard(t *testing.T) {
	router, auth, posts, _, _ := setupTestRouter()

	form := url.Values{
		"title":    {"T"},
		"subtitle": {"S"},
		"body":     {"B"},
		"img_url":  {"U"},
	}

	// Anonymous first: refused, nothing created.
	w := postForm(router, "/add", form)
	if w.Code != http.StatusForbidden {
		t.Errorf("Anonymous create: expected 403, got %d", w.Code)
	}

	// Three registered users; only the first-ever (id 1) is admin.
	users := []*models.User{
		{ID: 1, Name: "First", Email: "first@example.com"},
		{ID: 2, Name: "Second", Email: "second@example.com"},
		{ID: 3, Name: "Third", Email: "third@example.com"},
	}
	for _, u := range users {
		cookie := loginAs(t, router, auth, u)
		w := postForm(router, "/add", form, cookie)

		if u.ID == 1 {
			if w.Code != http.StatusSeeOther {
				t.Errorf("Admin create: expected 303, got %d", w.Code)
			}
		} else {
			if w.Code != http.StatusForbidden {
				t.Errorf("User %d create: expected 403, got %d", u.ID, w.Code)
			}
		}
	}

	if posts.CreateCalls != 1 {
		t.Errorf("Expected exactly 1 post created, got %d", posts.CreateCalls)
	}
}

func TestAdminGuardCoversEditAndDelete(t *testing.T) {
	router, auth, posts, _, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "T"}
	cookie := loginAs(t, router, auth, &models.User{ID: 2, Name: "Reader", Email: "reader@example.com"})

	if w := get(router, "/edit/1", cookie); w.Code != http.StatusForbidden {
		t.Errorf("Edit as non-admin: expected 403, got %d", w.Code)
	}
	if w := get(router, "/delete/1", cookie); w.Code != http.StatusForbidden {
		t.Errorf("Delete as non-admin: expected 403, got %d", w.Code)
	}
	if posts.UpdateCalls != 0 || len(posts.DeleteCalls) != 0 {
		t.Error("Refused admin actions must have zero side effects")
	}
	if _, ok := posts.Posts[1]; !ok {
		t.Error("The post should still exist")
	}
}

func TestAdminDeleteRedirectsHome(t *testing.T) {
	router, auth, posts, _, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "T"}
	cookie := loginAs(t, router, auth, &models.User{ID: 1, Name: "Admin", Email: "admin@example.com"})

	w := get(router, "/delete/1", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
	if len(posts.DeleteCalls) != 1 || posts.DeleteCalls[0] != 1 {
		t.Errorf("Expected delete of post 1, got %v", posts.DeleteCalls)
	}
}

func TestEditUnknownPostRedirects(t *testing.T) {
	router, auth, _, _, _ := setupTestRouter()
	cookie := loginAs(t, router, auth, &models.User{ID: 1, Name: "Admin", Email: "admin@example.com"})

	w := get(router, "/edit/99", cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
}

func TestContactConfirmationShownDespiteRelayFailure(t *testing.T) {
	router, _, _, _, mailer := setupTestRouter()
	mailer.Err = errors.New("relay down")

	w := postForm(router, "/contact", url.Values{
		"email":   {"visitor@example.com"},
		"message": {"hello"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "your message has been sent") {
		t.Error("The confirmation should render even when the relay fails")
	}
}

func TestContactSubmitsToRelay(t *testing.T) {
	router, _, _, _, mailer := setupTestRouter()

	w := postForm(router, "/contact", url.Values{
		"email":   {"visitor@example.com"},
		"message": {"hello"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if len(mailer.SentTo) != 1 || mailer.SentTo[0] != "visitor@example.com" {
		t.Errorf("Expected one relayed message, got %v", mailer.SentTo)
	}
}

func TestContactValidation(t *testing.T) {
	router, _, _, _, mailer := setupTestRouter()

	w := postForm(router, "/contact", url.Values{"email": {"visitor@example.com"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "message is required") {
		t.Error("Missing message should re-render the form with feedback")
	}
	if len(mailer.SentTo) != 0 {
		t.Error("Nothing should be relayed for an invalid form")
	}
}

func TestRegisterDuplicateEmailRedirectsToLogin(t *testing.T) {
	router, auth, _, _, _ := setupTestRouter()
	auth.RegisterErr = models.ErrDuplicateEmail

	w := postForm(router, "/register", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"secret-pass"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}

	// The flash rides a cookie and shows on the next page.
	var flash *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "blog_flash" {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("Expected a flash cookie on the redirect")
	}
	login := get(router, "/login", flash)
	if !strings.Contains(login.Body.String(), "log in instead") {
		t.Error("The login page should render the flash message")
	}
}

func TestRegisterSuccessLogsIn(t *testing.T) {
	router, auth, _, _, _ := setupTestRouter()
	auth.RegisterUser = &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	auth.RegisterToken = "fresh-token"

	w := postForm(router, "/register", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"secret-pass"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect home, got %q", loc)
	}

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "blog_session" {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatal("Registration should establish a session cookie")
	}
}

func TestLoginFailureRedirects(t *testing.T) {
	router, auth, _, _, _ := setupTestRouter()

	auth.LoginErr = service.ErrUnknownEmail
	w := postForm(router, "/login", url.Values{"email": {"nobody@example.com"}, "password": {"x"}})
	if loc := w.Header().Get("Location"); loc != "/register" {
		t.Errorf("Unknown email: expected redirect to /register, got %q", loc)
	}

	auth.LoginErr = service.ErrWrongPassword
	w = postForm(router, "/login", url.Values{"email": {"ada@example.com"}, "password": {"x"}})
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Wrong password: expected redirect to /login, got %q", loc)
	}
}

func TestLogout(t *testing.T) {
	router, auth, _, _, _ := setupTestRouter()
	cookie := loginAs(t, router, auth, &models.User{ID: 2, Name: "Reader", Email: "reader@example.com"})

	w := get(router, "/logout", cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected 303, got %d", w.Code)
	}
	if len(auth.LogoutCalls) != 1 {
		t.Errorf("Expected 1 logout call, got %d", len(auth.LogoutCalls))
	}
}

func TestTamperedSessionCookieIsAnonymous(t *testing.T) {
	router, auth, posts, _, _ := setupTestRouter()
	posts.Posts[1] = &models.Post{ID: 1, Title: "T"}
	cookie := loginAs(t, router, auth, &models.User{ID: 1, Name: "Admin", Email: "admin@example.com"})

	forged := &http.Cookie{Name: cookie.Name, Value: cookie.Value + "00"}
	w := get(router, "/delete/1", forged)
	if w.Code != http.StatusForbidden {
		t.Errorf("Tampered cookie: expected 403, got %d", w.Code)
	}
	if len(posts.DeleteCalls) != 0 {
		t.Error("A tampered session must not reach the handler")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _, _, _ := setupTestRouter()

	w := get(router, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}
