package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "blog_session"
	flashCookieName   = "blog_flash"
)

// The session cookie holds "<token>.<hmac>" where the HMAC-SHA256 tag is
// computed over the token with the configured secret. The token itself is
// opaque; the tag only stops cookie tampering.

func (h *Handlers) setSessionCookie(c *gin.Context, token string) {
	value := token + "." + signToken(token, h.cfg.Session.Secret)
	c.SetCookie(sessionCookieName, value, int(h.cfg.Session.Lifetime.Seconds()), "/", "", false, true)
}

func (h *Handlers) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

func (h *Handlers) readSessionCookie(c *gin.Context) (string, bool) {
	value, err := c.Cookie(sessionCookieName)
	if err != nil || value == "" {
		return "", false
	}
	i := strings.LastIndex(value, ".")
	if i < 0 {
		return "", false
	}
	token, tag := value[:i], value[i+1:]
	if !hmac.Equal([]byte(tag), []byte(signToken(token, h.cfg.Session.Secret))) {
		return "", false
	}
	return token, true
}

func signToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// Flash messages ride a short-lived cookie: set on redirect, read and
// cleared on the next render. No server-side state involved.

func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookieName, message, 60, "/", "", false, true)
}

func takeFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookieName)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	return message
}
