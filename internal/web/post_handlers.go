package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/blog-platform/internal/models"
	"github.com/blog-platform/internal/service"
	"github.com/blog-platform/internal/validation"
	"github.com/gin-gonic/gin"
)

// postID parses the :id path parameter. A non-numeric id is treated the
// same as an unknown post: back to the list view.
func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// ShowPost handles GET /post/:id: the post, its comments and the comment
// form. Unknown ids redirect to the list view rather than erroring.
func (h *Handlers) ShowPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := h.services.Post.Get(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	comments, err := h.services.Comment.ListForPost(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}

	data := h.pageData(c, post.Title)
	data["Post"] = post
	data["Comments"] = comments
	c.HTML(http.StatusOK, "post.html", data)
}

// CreateComment handles POST /post/:id. Anonymous visitors are sent to
// the login page before anything is written.
func (h *Handlers) CreateComment(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	user := currentUser(c)
	if user == nil {
		setFlash(c, "You need to login or register to comment.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	text := c.PostForm("text")
	form := validation.NewForm()
	form.Require("text", text)
	if !form.Valid() {
		setFlash(c, "Comment text is required.")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
		return
	}

	_, err := h.services.Comment.Add(c.Request.Context(), id, user, text)
	if errors.Is(err, models.ErrNotFound) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	// Redirect back so the page re-renders with the new comment and an
	// empty form.
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// NewPostForm handles GET /add (admin only)
func (h *Handlers) NewPostForm(c *gin.Context) {
	data := h.pageData(c, "New Post")
	data["Heading"] = "New Post"
	data["Action"] = "/add"
	c.HTML(http.StatusOK, "make_post.html", data)
}

// CreatePost handles POST /add (admin only)
func (h *Handlers) CreatePost(c *gin.Context) {
	in, form := bindPostInput(c)
	if !form.Valid() {
		data := h.pageData(c, "New Post")
		data["Heading"] = "New Post"
		data["Action"] = "/add"
		data["Errors"] = form.Errors
		data["Input"] = in
		c.HTML(http.StatusOK, "make_post.html", data)
		return
	}

	_, err := h.services.Post.Create(c.Request.Context(), currentUser(c), in)
	if errors.Is(err, models.ErrDuplicateTitle) {
		setFlash(c, "A post with that title already exists.")
		c.Redirect(http.StatusSeeOther, "/add")
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// EditPostForm handles GET /edit/:id (admin only); the form comes back
// prefilled with the post's current fields.
func (h *Handlers) EditPostForm(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	post, err := h.services.Post.Get(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	data := h.pageData(c, "Edit Post")
	data["Heading"] = "Edit Post"
	data["Action"] = fmt.Sprintf("/edit/%d", id)
	data["Input"] = service.PostInput{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Body:     post.Body,
		ImgURL:   post.ImgURL,
	}
	c.HTML(http.StatusOK, "make_post.html", data)
}

// UpdatePost handles POST /edit/:id (admin only)
func (h *Handlers) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	in, form := bindPostInput(c)
	if !form.Valid() {
		data := h.pageData(c, "Edit Post")
		data["Heading"] = "Edit Post"
		data["Action"] = fmt.Sprintf("/edit/%d", id)
		data["Errors"] = form.Errors
		data["Input"] = in
		c.HTML(http.StatusOK, "make_post.html", data)
		return
	}

	_, err := h.services.Post.Update(c.Request.Context(), id, in)
	if errors.Is(err, models.ErrNotFound) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if errors.Is(err, models.ErrDuplicateTitle) {
		setFlash(c, "A post with that title already exists.")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/edit/%d", id))
		return
	}
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
}

// DeletePost handles GET /delete/:id (admin only). The comments on the
// post go with it. An unknown id is not an error here either.
func (h *Handlers) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	err := h.services.Post.Delete(c.Request.Context(), id)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		h.serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func bindPostInput(c *gin.Context) (service.PostInput, *validation.Form) {
	in := service.PostInput{
		Title:    c.PostForm("title"),
		Subtitle: c.PostForm("subtitle"),
		Body:     c.PostForm("body"),
		ImgURL:   c.PostForm("img_url"),
	}

	form := validation.NewForm()
	form.Require("title", in.Title)
	form.Require("subtitle", in.Subtitle)
	form.Require("body", in.Body)
	form.Require("img_url", in.ImgURL)
	return in, form
}
