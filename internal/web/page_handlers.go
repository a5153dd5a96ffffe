package web

import (
	"net/http"

	"github.com/blog-platform/internal/validation"
	"github.com/gin-gonic/gin"
)

// Index handles GET / and lists every post
func (h *Handlers) Index(c *gin.Context) {
	posts, err := h.services.Post.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	data := h.pageData(c, "Home")
	data["Posts"] = posts
	c.HTML(http.StatusOK, "index.html", data)
}

// About handles GET /about
func (h *Handlers) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", h.pageData(c, "About"))
}

// ShowContact handles GET /contact
func (h *Handlers) ShowContact(c *gin.Context) {
	data := h.pageData(c, "Contact")
	data["Email"] = ""
	data["Message"] = ""
	c.HTML(http.StatusOK, "contact.html", data)
}

// SubmitContact handles POST /contact. The message is handed to the mail
// relay; the visitor sees the confirmation whether or not the relay
// succeeded, and a failure is only logged. See DESIGN.md for why that
// behavior is kept.
func (h *Handlers) SubmitContact(c *gin.Context) {
	email := c.PostForm("email")
	message := c.PostForm("message")

	form := validation.NewForm()
	form.Require("email", email)
	if email != "" {
		form.Email("email", email)
	}
	form.Require("message", message)

	if !form.Valid() {
		data := h.pageData(c, "Contact")
		data["Errors"] = form.Errors
		data["Email"] = email
		data["Message"] = message
		c.HTML(http.StatusOK, "contact.html", data)
		return
	}

	id, err := h.mailer.SendContact(c.Request.Context(), email, message)
	if err != nil {
		h.log.Error().Err(err).Str("to", email).Msg("Contact relay failed")
	} else {
		h.log.Info().Str("message_id", id).Msg("Contact message sent")
	}

	data := h.pageData(c, "Contact")
	data["Sent"] = true
	c.HTML(http.StatusOK, "contact.html", data)
}
