package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/blog-platform/internal/config"
	"github.com/blog-platform/internal/mail"
	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handlers holds the collaborators every route needs: services, the mail
// relay, config and a logger. Nothing is ambient; state travels through
// the request context.
type Handlers struct {
	services *service.Services
	mailer   mail.Sender
	cfg      *config.Config
	log      zerolog.Logger
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, mailer mail.Sender, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Templates ship inside the binary so the server runs from any
	// working directory.
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	h := &Handlers{
		services: services,
		mailer:   mailer,
		cfg:      cfg,
		log:      log.With().Str("component", "web").Logger(),
	}

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(h.resolveSession())

	router.GET("/health", h.Health)

	// Public pages
	router.GET("/", h.Index)
	router.GET("/post/:id", h.ShowPost)
	router.POST("/post/:id", h.CreateComment)
	router.GET("/about", h.About)
	router.GET("/contact", h.ShowContact)
	router.POST("/contact", h.SubmitContact)

	// Account routes
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.Register)
	router.GET("/login", h.ShowLogin)
	router.POST("/login", h.Login)
	router.GET("/logout", h.Logout)

	// Admin-only post management. The guard runs before any handler side
	// effect and aborts with 403 for everyone but the administrator.
	admin := router.Group("/", h.requireAdmin())
	{
		admin.GET("/add", h.NewPostForm)
		admin.POST("/add", h.CreatePost)
		admin.GET("/edit/:id", h.EditPostForm)
		admin.POST("/edit/:id", h.UpdatePost)
		admin.GET("/delete/:id", h.DeletePost)
	}

	return router
}

// Health returns the liveness status
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-platform",
	})
}

// pageData assembles the fields every template expects
func (h *Handlers) pageData(c *gin.Context, title string) gin.H {
	user := currentUser(c)
	return gin.H{
		"Title":    title,
		"Year":     time.Now().Year(),
		"User":     user,
		"LoggedIn": user != nil,
		"IsAdmin":  h.services.Auth.IsAdmin(user),
		"Flash":    takeFlash(c),
	}
}

// serverError logs the failure and renders a generic error page. Nothing
// about the underlying error reaches the visitor.
func (h *Handlers) serverError(c *gin.Context, err error) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	data := h.pageData(c, "Something went wrong")
	data["Status"] = http.StatusInternalServerError
	data["Message"] = "Something went wrong. Please try again later."
	c.HTML(http.StatusInternalServerError, "error.html", data)
	c.Abort()
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
