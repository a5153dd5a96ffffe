package web

import (
	"errors"
	"net/http"

	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/service"
	"github.com/blog-platform/internal/validation"
	"github.com/gin-gonic/gin"
)

// ShowRegister handles GET /register
func (h *Handlers) ShowRegister(c *gin.Context) {
	data := h.pageData(c, "Register")
	data["Name"] = ""
	data["Email"] = ""
	c.HTML(http.StatusOK, "register.html", data)
}

// Register handles POST /register: hash the password, create the account
// and log it straight in. A duplicate email flashes and redirects to the
// login page without creating anything.
func (h *Handlers) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	plaintext := c.PostForm("password")

	form := validation.NewForm()
	form.Require("name", name)
	form.Require("email", email)
	if email != "" {
		form.Email("email", email)
	}
	form.Require("password", plaintext)
	form.MinLength("password", plaintext, 6)

	if !form.Valid() {
		data := h.pageData(c, "Register")
		data["Errors"] = form.Errors
		data["Name"] = name
		data["Email"] = email
		c.HTML(http.StatusOK, "register.html", data)
		return
	}

	_, token, err := h.services.Auth.Register(c.Request.Context(), name, email, plaintext)
	if errors.Is(err, models.ErrDuplicateEmail) {
		setFlash(c, "You've already signed up with that email, log in instead.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowLogin handles GET /login
func (h *Handlers) ShowLogin(c *gin.Context) {
	data := h.pageData(c, "Log In")
	data["Email"] = ""
	c.HTML(http.StatusOK, "login.html", data)
}

// Login handles POST /login. An unknown email points at registration, a
// wrong password back at the login form; each with its own flash.
func (h *Handlers) Login(c *gin.Context) {
	email := c.PostForm("email")
	plaintext := c.PostForm("password")

	form := validation.NewForm()
	form.Require("email", email)
	form.Require("password", plaintext)

	if !form.Valid() {
		data := h.pageData(c, "Log In")
		data["Errors"] = form.Errors
		data["Email"] = email
		c.HTML(http.StatusOK, "login.html", data)
		return
	}

	_, token, err := h.services.Auth.Login(c.Request.Context(), email, plaintext)
	switch {
	case errors.Is(err, service.ErrUnknownEmail):
		setFlash(c, "User does not exist, try to register instead.")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	case errors.Is(err, service.ErrWrongPassword):
		setFlash(c, "Password is incorrect, please try again.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout: tear down the session and go home
func (h *Handlers) Logout(c *gin.Context) {
	if token, ok := h.readSessionCookie(c); ok {
		if err := h.services.Auth.Logout(c.Request.Context(), token); err != nil {
			h.log.Error().Err(err).Msg("Failed to delete session")
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}
