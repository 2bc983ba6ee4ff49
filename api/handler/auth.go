package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedbackhub/feedbackhub/api/auth"
	"github.com/feedbackhub/feedbackhub/api/models"
	"github.com/feedbackhub/feedbackhub/database"
)

// RegisterPage renders the registration form. Logged-in users are sent to
// their own profile instead.
func (h *Handler) RegisterPage(c *gin.Context) {
	if username, ok := auth.SessionUsername(c); ok {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}
	h.render(c, http.StatusOK, "register", gin.H{
		"Form": &models.RegistrationForm{},
	})
}

// Register handles the registration form submission.
func (h *Handler) Register(c *gin.Context) {
	if username, ok := auth.SessionUsername(c); ok {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}

	var form models.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "register", gin.H{
			"Form":   &form,
			"Errors": models.FieldErrors(err),
		})
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	user := &database.User{
		Username:  form.Username,
		Password:  hash,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	}

	// The unique constraint is the authoritative duplicate signal, there is
	// no racy pre-check.
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			addFlash(c, models.FlashError, "That username or email is already registered!")
			h.render(c, http.StatusOK, "register", gin.H{
				"Form": &form,
			})
			return
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	h.login(c, form.Username)
	addFlash(c, models.FlashSuccess, "User registered successfully")
	c.Redirect(http.StatusFound, "/users/"+form.Username)
}

// LoginPage renders the login form, with the logged-in shortcut.
func (h *Handler) LoginPage(c *gin.Context) {
	if username, ok := auth.SessionUsername(c); ok {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}
	h.render(c, http.StatusOK, "login", gin.H{
		"Form": &models.LoginForm{},
	})
}

// Login handles the login form submission. The flash never distinguishes an
// unknown user from a wrong password.
func (h *Handler) Login(c *gin.Context) {
	if username, ok := auth.SessionUsername(c); ok {
		c.Redirect(http.StatusFound, "/users/"+username)
		return
	}

	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "login", gin.H{
			"Form":   &form,
			"Errors": models.FieldErrors(err),
		})
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), form.Username)
	if err != nil || !auth.CheckPassword(user.Password, form.Password) {
		addFlash(c, models.FlashError, "Invalid username or password!")
		h.render(c, http.StatusOK, "login", gin.H{
			"Form": &form,
		})
		return
	}

	h.login(c, user.Username)
	c.Redirect(http.StatusFound, "/users/"+user.Username)
}

// Logout clears the session identity and redirects to the landing page.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(auth.SessionUserKey)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// login stores the authenticated identity in the session.
func (h *Handler) login(c *gin.Context, username string) {
	session := sessions.Default(c)
	session.Set(auth.SessionUserKey, username)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
}
