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
)

// Profile renders a user's profile page with their feedback list.
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderNotFound(c)
			return
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	feedbacks, err := h.db.ListFeedbackByUsername(c.Request.Context(), username)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	h.render(c, http.StatusOK, "profile", gin.H{
		"User": &models.User{
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
		"Feedbacks": feedbacks,
	})
}

// DeleteUser removes the account and everything it owns, then ends the
// session.
func (h *Handler) DeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.db.DeleteUser(c.Request.Context(), username); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	session := sessions.Default(c)
	session.Delete(auth.SessionUserKey)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}

	addFlash(c, models.FlashSuccess, "User deleted successfully.")
	c.Redirect(http.StatusFound, "/")
}
