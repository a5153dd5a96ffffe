package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// userContextKey is where resolveSession stores the authenticated user
// for the rest of the request.
const userContextKey = "currentUser"

// resolveSession reads the signed session cookie and, when it maps to a
// live session, attaches the user to the request context. A missing,
// tampered or expired cookie just leaves the request anonymous.
func (h *Handlers) resolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := h.readSessionCookie(c); ok {
			user, err := h.services.Auth.UserFromSession(c.Request.Context(), token)
			if err == nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// requireAdmin refuses the request with 403 unless the current user is
// the administrator. It aborts before the wrapped handler runs, so a
// refused request has zero side effects.
func (h *Handlers) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if !h.services.Auth.IsAdmin(user) {
			data := h.pageData(c, "Forbidden")
			data["Status"] = http.StatusForbidden
			data["Message"] = "You do not have permission to do that."
			c.HTML(http.StatusForbidden, "error.html", data)
			c.Abort()
			return
		}
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.String(http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}
