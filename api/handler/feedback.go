package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/feedbackhub/feedbackhub/api/auth"
	"github.com/feedbackhub/feedbackhub/api/models"
	"github.com/feedbackhub/feedbackhub/database"
)

// NewFeedbackPage renders the form to add a feedback note.
func (h *Handler) NewFeedbackPage(c *gin.Context) {
	h.render(c, http.StatusOK, "feedback_new", gin.H{
		"Username": c.Param("username"),
		"Form":     &models.FeedbackForm{},
	})
}

// CreateFeedback handles the new-feedback form submission. The note is
// always owned by the path's username, which the auth guard already matched
// against the session.
func (h *Handler) CreateFeedback(c *gin.Context) {
	username := c.Param("username")

	var form models.FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "feedback_new", gin.H{
			"Username": username,
			"Form":     &form,
			"Errors":   models.FieldErrors(err),
		})
		return
	}

	feedback := &database.Feedback{
		Title:    form.Title,
		Content:  form.Content,
		Username: username,
	}
	if err := h.db.CreateFeedback(c.Request.Context(), feedback); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/users/"+username)
}

// EditFeedbackPage renders the edit form pre-populated with the stored note.
func (h *Handler) EditFeedbackPage(c *gin.Context) {
	feedback, ok := h.ownedFeedback(c)
	if !ok {
		return
	}

	h.render(c, http.StatusOK, "feedback_edit", gin.H{
		"Feedback": feedback,
		"Form": &models.FeedbackForm{
			Title:   feedback.Title,
			Content: feedback.Content,
		},
	})
}

// UpdateFeedback mutates title and content of an owned note in place.
func (h *Handler) UpdateFeedback(c *gin.Context) {
	feedback, ok := h.ownedFeedback(c)
	if !ok {
		return
	}

	var form models.FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "feedback_edit", gin.H{
			"Feedback": feedback,
			"Form":     &form,
			"Errors":   models.FieldErrors(err),
		})
		return
	}

	if err := h.db.UpdateFeedback(c.Request.Context(), feedback.ID, form.Title, form.Content); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/users/"+feedback.Username)
}

// DeleteFeedback removes an owned note. Deleting an id that is already gone
// redirects back to the profile without an error.
func (h *Handler) DeleteFeedback(c *gin.Context) {
	username := c.GetString(auth.ContextUserKey)

	id, err := feedbackID(c)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	feedback, err := h.db.GetFeedbackByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Redirect(http.StatusFound, "/users/"+username)
			return
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	if feedback.Username != username {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.db.DeleteFeedback(c.Request.Context(), feedback.ID); err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Redirect(http.StatusFound, "/users/"+feedback.Username)
}

// ownedFeedback loads the feedback named by the :id param and enforces that
// the session identity owns it. On failure the response is already written.
func (h *Handler) ownedFeedback(c *gin.Context) (*database.Feedback, bool) {
	id, err := feedbackID(c)
	if err != nil {
		h.renderNotFound(c)
		return nil, false
	}

	feedback, err := h.db.GetFeedbackByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderNotFound(c)
			return nil, false
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	if feedback.Username != c.GetString(auth.ContextUserKey) {
		c.Redirect(http.StatusFound, "/login")
		return nil, false
	}

	return feedback, true
}

func feedbackID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
